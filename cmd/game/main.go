package main

import (
	"embed"
	"flag"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/younwookim/fpscore/internal/application/game"
	"github.com/younwookim/fpscore/internal/application/replay"
	"github.com/younwookim/fpscore/internal/application/scene/playing"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
	"github.com/younwookim/fpscore/internal/infrastructure/logging"
	"github.com/younwookim/fpscore/internal/infrastructure/telemetry"
)

//go:embed configs
var configFS embed.FS

func main() {
	configDir := flag.String("config", "", "Config directory (default: configs built into the binary)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headless := flag.Bool("headless", false, "With -replay, run without a window and print a report")
	flag.Parse()

	loader, settings, err := loadConfigs(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load settings")
	}

	logger := logging.New(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat})

	cfg, err := loader.LoadAll()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	var metrics *telemetry.CombatMetrics
	if settings.TelemetryEnabled {
		if metrics, err = telemetry.NewCombatMetrics(); err != nil {
			logger.Fatal().Err(err).Msg("failed to create metrics")
		}
	}

	opts := playing.Options{
		Config:     cfg,
		Metrics:    metrics,
		Logger:     logger,
		RecordPath: settings.Record,
	}
	if *recordFlag != "" {
		opts.RecordPath = *recordFlag
	}

	rangeName := settings.Range
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *replayFlag).Msg("failed to load replay")
		}
		opts = withReplay(opts, data)
		if data.Range != "" {
			rangeName = data.Range
		}
		logger.Info().Str("path", *replayFlag).Int("frames", len(data.Frames)).Int64("seed", data.Seed).Msg("replaying")
	}

	if opts.Range, err = loader.LoadRange(rangeName); err != nil {
		logger.Fatal().Err(err).Msg("failed to load range")
	}

	dt := 1.0 / float64(settings.Framerate)
	if *headless {
		if *replayFlag == "" {
			logger.Fatal().Msg("-headless needs -replay")
		}
		report, err := runHeadless(opts, dt)
		if err != nil {
			logger.Fatal().Err(err).Msg("replay failed")
		}
		logger.Info().Msg("replay finished\n" + report)
		return
	}

	if err := runWindow(opts, settings.Framerate, logger); err != nil {
		logger.Fatal().Err(err).Msg("game exited with error")
	}
}

// loadConfigs picks the config source and reads the runtime settings
func loadConfigs(dir string) (*config.Loader, *config.Settings, error) {
	if dir != "" {
		settings, err := config.LoadSettings(dir)
		if err != nil {
			return nil, nil, err
		}
		return config.NewLoader(dir), settings, nil
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, nil, err
	}
	settings, err := config.LoadSettingsFS(fsys)
	if err != nil {
		return nil, nil, err
	}
	return config.NewFSLoader(fsys, "configs"), settings, nil
}

func runWindow(opts playing.Options, tps int, logger zerolog.Logger) error {
	p, err := playing.New(opts)
	if err != nil {
		return err
	}

	display := opts.Config.Tuning.Display
	g := game.New(p, display.ScreenWidth, display.ScreenHeight, tps, logger)
	defer g.Shutdown()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Firing Range")
	ebiten.SetTPS(tps)

	return ebiten.RunGame(g)
}
