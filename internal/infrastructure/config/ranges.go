package config

// RangeConfig is the root config for ranges/<name>.yaml.
// Boxes are axis aligned; Min and Max are world coordinates.
type RangeConfig struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Spawn    [3]float64  `yaml:"spawn"`
	SpawnYaw float64     `yaml:"spawnYaw"`
	Boxes    []BoxConfig `yaml:"boxes"`
}

type BoxConfig struct {
	Name   string     `yaml:"name"`
	Min    [3]float64 `yaml:"min"`
	Max    [3]float64 `yaml:"max"`
	Layer  uint32     `yaml:"layer"`
	Tag    string     `yaml:"tag"`
	Health int        `yaml:"health"` // 0 means indestructible
}
