package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/drake/pkg/runner"
)

// ReplayOptions tunes a replay.
type ReplayOptions struct {
	Script string
	JSON   bool
	Delay  time.Duration
	Save   bool
}

// RunReplay replays a script against the board and prints its events.
func RunReplay(ctx context.Context, opts Options, ro ReplayOptions) error {
	logger := opts.Logger()
	f, err := os.Open(ro.Script)
	if err != nil {
		return err
	}
	defer f.Close()
	steps, err := runner.ParseScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", ro.Script, err)
	}

	be, err := openBackend(ctx, opts.Config, logger)
	if err != nil {
		return err
	}
	defer be.Close()
	b, err := loadBoard(ctx, opts.Config.Board.Path, be.Store, logger)
	if err != nil {
		return err
	}

	var handler runner.EventHandler = runner.NewTextHandler(opts.Out)
	if ro.JSON {
		handler = runner.NewJSONHandler(opts.Out)
	}
	runOpts := []runner.Option{
		runner.WithHandler(handler),
		runner.WithLogger(logger),
		runner.WithDelay(ro.Delay),
	}
	if layouts := be.layouts(logger); ro.Save && layouts != nil {
		runOpts = append(runOpts, runner.WithStore(layouts))
	}
	_, err = runner.New(runOpts...).Run(ctx, b, steps)
	return err
}
