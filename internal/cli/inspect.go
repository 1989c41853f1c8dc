package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/drake/internal/presentation/tui"
	"github.com/aretw0/drake/pkg/board"
)

// RunInspect prints a markdown summary of the board, rendered for the
// terminal unless raw is set.
func RunInspect(ctx context.Context, opts Options, raw bool) error {
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

	md := tui.Summary(b)
	if !raw {
		render, err := tui.NewRenderer(80)
		if err != nil {
			return err
		}
		if md, err = render(md); err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(opts.Out, md)
	return err
}

// RunValidate checks board files and reports each result. It fails if any
// file is invalid.
func RunValidate(opts Options, paths ...string) error {
	if len(paths) == 0 {
		paths = []string{opts.Config.Board.Path}
	}
	failed := 0
	for _, path := range paths {
		b, err := board.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(opts.Out, "✗ %s: %v\n", path, err)
			continue
		}
		items := 0
		for _, c := range b.Containers() {
			items += c.ChildCount()
		}
		fmt.Fprintf(opts.Out, "✓ %s: board %q, %d containers, %d items\n", path, b.Name, len(b.Containers()), items)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d boards invalid", failed, len(paths))
	}
	return nil
}
