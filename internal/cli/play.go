package cli

import (
	"context"

	"github.com/aretw0/drake/internal/presentation/tui"
)

// RunPlay opens the board in the terminal. The layout is saved on exit.
func RunPlay(ctx context.Context, opts Options) error {
	logger := opts.Logger()
	be, err := openBackend(ctx, opts.Config, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	b, err := loadBoard(ctx, opts.Config.Board.Path, be.Store, logger)
	if err != nil {
		return err
	}
	d, err := createDrake(b, logger)
	if err != nil {
		return err
	}

	if err := tui.Run(ctx, b, d); err != nil {
		return err
	}
	if layouts := be.layouts(logger); layouts != nil {
		return layouts.Save(context.WithoutCancel(ctx), b.Name, b.Snapshot())
	}
	return nil
}
