/*
Package dsl provides a Go DSL for constructing drake boards programmatically.

It is the fluent counterpart of the YAML board files: useful for tests, demos
and boards generated at runtime.

Example usage:

	b := dsl.New("kanban", 72, 24).Option("revert_on_spill", true)

	b.Add("todo").At(1, 2).Size(20, 20).Spacing(1, 1).
		Item("spec", "Write spec").
		Item("tests", "Write tests")

	b.Add("done").At(25, 2).Size(20, 20).Spacing(1, 1).
		Accepts("todo")

	board, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	d, err := board.New()
*/
package dsl
