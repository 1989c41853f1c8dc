package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/drake/internal/dto"
	"github.com/aretw0/drake/pkg/domain"
)

// EventHandler receives what a replay produces.
type EventHandler interface {
	// Event presents one emitted event.
	Event(ctx context.Context, ev dto.Event) error

	// Done presents the final layout once the script is exhausted.
	Done(ctx context.Context, layout *domain.Layout) error
}

// TextHandler writes one aligned line per event.
type TextHandler struct {
	Writer io.Writer
}

// NewTextHandler creates a handler writing to w (Stdout when nil).
func NewTextHandler(w io.Writer) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{Writer: w}
}

func (h *TextHandler) Event(ctx context.Context, ev dto.Event) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s", ev.Type)
	field := func(key, val string) {
		if val != "" {
			fmt.Fprintf(&b, " %s=%s", key, val)
		}
	}
	field("item", ev.Item)
	field("container", ev.Container)
	field("source", ev.Source)
	field("sibling", ev.Sibling)
	field("original", ev.Original)
	field("kind", ev.Kind)
	field("outcome", ev.Outcome)
	if ev.Moved {
		field("moved", "true")
	}
	_, err := fmt.Fprintln(h.Writer, b.String())
	return err
}

func (h *TextHandler) Done(ctx context.Context, layout *domain.Layout) error {
	if _, err := fmt.Fprintln(h.Writer, "--- layout ---"); err != nil {
		return err
	}
	for _, col := range layout.Columns {
		if _, err := fmt.Fprintf(h.Writer, "%s: %s\n", col.ID, strings.Join(col.Items, ", ")); err != nil {
			return err
		}
	}
	if len(layout.Removed) > 0 {
		if _, err := fmt.Fprintf(h.Writer, "removed: %s\n", strings.Join(layout.Removed, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// JSONHandler writes events and the final layout as JSON lines.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler writing to w (Stdout when nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

func (h *JSONHandler) Event(ctx context.Context, ev dto.Event) error {
	return h.Encoder.Encode(ev)
}

func (h *JSONHandler) Done(ctx context.Context, layout *domain.Layout) error {
	return h.Encoder.Encode(map[string]any{"type": "layout", "layout": layout})
}

type discardHandler struct{}

func (discardHandler) Event(context.Context, dto.Event) error     { return nil }
func (discardHandler) Done(context.Context, *domain.Layout) error { return nil }
