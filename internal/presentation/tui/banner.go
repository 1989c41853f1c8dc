package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the drake banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"      _            _        ", "#34d399"},
		{"   __| |_ __ __ _| | _____ ", "#2dd4bf"},
		{"  / _` | '__/ _` | |/ / _ \\", "#22d3ee"},
		{" | (_| | | | (_| |   <  __/", "#38bdf8"},
		{"  \\__,_|_|  \\__,_|_|\\_\\___|", "#60a5fa"},
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
