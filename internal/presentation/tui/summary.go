package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/drake/pkg/board"
)

// Summary describes a board as markdown: its settings, a table of containers
// and the items of each.
func Summary(b *board.Board) string {
	var sb strings.Builder
	spec := b.Spec()
	fmt.Fprintf(&sb, "# %s\n\n", b.Name)

	s := b.Settings
	flags := []string{fmt.Sprintf("%gx%g", spec.Width, spec.Height), s.Direction}
	add := func(on bool, name string) {
		if on {
			flags = append(flags, name)
		}
	}
	add(s.RevertOnSpill, "revert on spill")
	add(s.RemoveOnSpill, "remove on spill")
	add(s.Copy, "copy")
	add(s.CopySortSource, "copy sort source")
	add(!s.IgnoreInputTextSelection, "drags from inputs")
	fmt.Fprintf(&sb, "%s.\n\n", strings.Join(flags, ", "))

	sb.WriteString("| Container | Label | Items | Accepts | Copy |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, c := range spec.Containers {
		accepts := "any"
		if len(c.Accepts) > 0 {
			accepts = strings.Join(c.Accepts, ", ")
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %d | %s | %s |\n",
			c.ID, b.Label(c.ID), b.Container(c.ID).ChildCount(), accepts, yesNo(c.Copy || s.Copy))
	}

	for _, col := range b.Snapshot().Columns {
		fmt.Fprintf(&sb, "\n## %s\n\n", b.Label(col.ID))
		if len(col.Items) == 0 {
			sb.WriteString("_empty_\n")
			continue
		}
		for _, id := range col.Items {
			line := fmt.Sprintf("- %s (`%s`)", b.Label(id), id)
			if n := b.Node(id); n != nil && n.HasClass(board.ClassLocked) {
				line += " locked"
			}
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
