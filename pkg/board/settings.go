package board

import (
	"fmt"

	"github.com/aretw0/drake/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Settings is the decoded options block of a board.
type Settings struct {
	Direction                string  `mapstructure:"direction"`
	RevertOnSpill            bool    `mapstructure:"revert_on_spill"`
	RemoveOnSpill            bool    `mapstructure:"remove_on_spill"`
	Copy                     bool    `mapstructure:"copy"`
	CopySortSource           bool    `mapstructure:"copy_sort_source"`
	IgnoreInputTextSelection bool    `mapstructure:"ignore_input_text_selection"`
	SlideFactorX             float64 `mapstructure:"slide_factor_x"`
	SlideFactorY             float64 `mapstructure:"slide_factor_y"`
}

// DefaultSettings mirrors the library defaults.
func DefaultSettings() Settings {
	return Settings{
		Direction:                string(domain.Vertical),
		IgnoreInputTextSelection: true,
	}
}

// DecodeSettings overlays raw options on the defaults. Strings such as "true"
// or "2" are accepted for typed fields; unknown keys are an error.
func DecodeSettings(raw map[string]any) (Settings, error) {
	s := DefaultSettings()
	if len(raw) == 0 {
		return s, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return s, err
	}
	if err := dec.Decode(raw); err != nil {
		return s, fmt.Errorf("%w: options: %v", domain.ErrInvalidBoard, err)
	}
	switch domain.Direction(s.Direction) {
	case domain.Vertical, domain.Horizontal:
	default:
		return s, fmt.Errorf("%w: options: unknown direction %q", domain.ErrInvalidBoard, s.Direction)
	}
	return s, nil
}

// AsMap encodes settings back into an options block.
func (s Settings) AsMap() map[string]any {
	out := map[string]any{}
	_ = mapstructure.Decode(s, &out)
	return out
}
