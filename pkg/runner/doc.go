/*
Package runner replays scripted drag interactions against a board.

A script is a list of steps, written either as JSON lines or as a YAML list.
Pointer steps (down, move, up) feed coordinates; control steps (start,
moveto, end, cancel, remove) drive the session by node id. Every event the
drake emits is handed to an EventHandler, and the final layout is returned
and optionally persisted.

# Usage

	steps, err := runner.ParseScript(f)
	if err != nil {
		log.Fatal(err)
	}
	r := runner.New(
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
		runner.WithStore(store),
	)
	layout, err := r.Run(ctx, b, steps)
*/
package runner
