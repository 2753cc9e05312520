package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Tuning  *TuningConfig
	Weapons *WeaponsConfig
}

// Loader loads game configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadTuning loads tuning.json
func (l *Loader) LoadTuning() (*TuningConfig, error) {
	data, err := fs.ReadFile(l.fsys, "tuning.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning.json: %w", err)
	}

	var cfg TuningConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning.json: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning.json: %w", err)
	}

	return &cfg, nil
}

// LoadWeapons loads weapons.yaml
func (l *Loader) LoadWeapons() (*WeaponsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "weapons.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read weapons.yaml: %w", err)
	}

	var cfg WeaponsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse weapons.yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weapons.yaml: %w", err)
	}

	return &cfg, nil
}

// LoadRange loads a shooting range YAML file
func (l *Loader) LoadRange(name string) (*RangeConfig, error) {
	path := "ranges/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", name, err)
	}

	var cfg RangeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse range %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid range %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (tuning, weapons)
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}

	weapons, err := l.LoadWeapons()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Tuning:  tuning,
		Weapons: weapons,
	}, nil
}
