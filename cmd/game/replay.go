package main

import (
	"errors"

	"github.com/younwookim/fpscore/internal/application/replay"
	"github.com/younwookim/fpscore/internal/application/scene"
	"github.com/younwookim/fpscore/internal/application/scene/playing"
)

// withReplay feeds opts from a recording instead of the keyboard. The
// recorded seed is reused so spread rolls repeat.
func withReplay(opts playing.Options, data *replay.ReplayData) playing.Options {
	opts.Input = replay.NewReplayer(*data)
	opts.Seed = data.Seed
	opts.RecordPath = ""
	return opts
}

// runHeadless steps the scene until its input runs out and returns the
// final report. No window is opened.
func runHeadless(opts playing.Options, dt float64) (string, error) {
	p, err := playing.New(opts)
	if err != nil {
		return "", err
	}
	defer p.OnExit()

	for {
		_, err := p.Update(dt)
		if errors.Is(err, scene.ErrDone) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return p.Report(), nil
}
