package runner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/aretw0/drake/internal/dto"
	"gopkg.in/yaml.v3"
)

// DefaultMaxSteps caps the length of a script.
var DefaultMaxSteps = 10000

var (
	ErrInvalidStep   = errors.New("invalid step")
	ErrScriptTooLong = errors.New("script exceeds maximum number of steps")
)

// Ops lists the step operations a script may use.
var Ops = []string{"down", "move", "up", "start", "moveto", "end", "cancel", "remove"}

// Step is one scripted interaction.
type Step struct {
	Op string `json:"op" yaml:"op"`

	// Pointer steps.
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Button *int    `json:"button,omitempty" yaml:"button,omitempty"`
	Ctrl   bool    `json:"ctrl,omitempty" yaml:"ctrl,omitempty"`
	Meta   bool    `json:"meta,omitempty" yaml:"meta,omitempty"`

	// Control steps.
	Item    string `json:"item,omitempty" yaml:"item,omitempty"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Sibling string `json:"sibling,omitempty" yaml:"sibling,omitempty"`
	Revert  *bool  `json:"revert,omitempty" yaml:"revert,omitempty"`
}

// Pointer returns the pointer sample of a down, move or up step.
func (s Step) Pointer() dto.Pointer {
	return dto.Pointer{Type: s.Op, X: s.X, Y: s.Y, Button: s.Button, Ctrl: s.Ctrl, Meta: s.Meta}
}

// Validate checks that the step names a known operation with its required
// fields.
func (s Step) Validate() error {
	if !slices.Contains(Ops, s.Op) {
		return fmt.Errorf("%w: unknown op %q", ErrInvalidStep, s.Op)
	}
	switch {
	case s.Op == "start" && s.Item == "":
		return fmt.Errorf("%w: start needs an item", ErrInvalidStep)
	case s.Op == "moveto" && s.Target == "":
		return fmt.Errorf("%w: moveto needs a target", ErrInvalidStep)
	}
	return nil
}

// ParseScript reads steps from r. Input starting with '{' is read as JSON
// lines, anything else as a YAML list.
func ParseScript(r io.Reader) ([]Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var steps []Step
	if trimmed[0] == '{' {
		steps, err = parseJSONLines(trimmed)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		err = dec.Decode(&steps)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, err)
	}

	if len(steps) > DefaultMaxSteps {
		return nil, fmt.Errorf("%w: steps=%d limit=%d", ErrScriptTooLong, len(steps), DefaultMaxSteps)
	}
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return steps, nil
}

func parseJSONLines(data []byte) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		var s Step
		dec := json.NewDecoder(bytes.NewReader(text))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		steps = append(steps, s)
	}
	return steps, sc.Err()
}
