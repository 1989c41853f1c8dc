package board

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the on-disk description of a board.
type Spec struct {
	Name       string          `yaml:"name"`
	Width      float64         `yaml:"width"`
	Height     float64         `yaml:"height"`
	Options    map[string]any  `yaml:"options,omitempty"`
	Containers []ContainerSpec `yaml:"containers"`
}

// ContainerSpec describes one drop container and its initial items.
type ContainerSpec struct {
	ID      string  `yaml:"id"`
	Label   string  `yaml:"label,omitempty"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gap     float64 `yaml:"gap,omitempty"`
	Padding float64 `yaml:"padding,omitempty"`

	// Accepts lists the containers items may come from. Empty accepts any.
	Accepts []string `yaml:"accepts,omitempty"`
	// Copy makes drags out of this container leave the original in place.
	Copy bool `yaml:"copy,omitempty"`

	Items []ItemSpec `yaml:"items,omitempty"`
}

// ItemSpec describes a draggable item.
type ItemSpec struct {
	ID     string  `yaml:"id"`
	Label  string  `yaml:"label,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Locked bool    `yaml:"locked,omitempty"`
	Tag    string  `yaml:"tag,omitempty"`
}

// Parse decodes a board spec from YAML. Unknown fields are rejected.
func Parse(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("board file is empty")
		}
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}
	return &spec, nil
}

// Load reads, validates and builds a board.
func Load(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

// LoadFile is Load for a path.
func LoadFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Marshal encodes a spec back to YAML.
func Marshal(spec *Spec) ([]byte, error) {
	return yaml.Marshal(spec)
}
