// Package definitions loads layer stacks from YAML files.
//
//	layers:
//	  - name: defaults
//	    values:
//	      greeting: hello
//	      retries: 3
//	  - name: tenant
//	    isolated: true
//	    values:
//	      greeting: hola
//
// Layers are created in file order; values keep their document order.
package definitions

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-layers/framework/layers"
)

var (
	// ErrInvalid wraps every structural problem found while parsing.
	ErrInvalid = errors.New("definitions: invalid file")
)

// File is a parsed definitions document.
type File struct {
	Layers []Layer `yaml:"layers"`
}

// Layer is one layer entry of a File.
type Layer struct {
	Name     string `yaml:"name"`
	Isolated bool   `yaml:"isolated"`
	Values   Values `yaml:"values"`
}

// Value is a single key/value pair.
type Value struct {
	Key   string
	Value any
}

// Values is an ordered list of pairs decoded from a YAML mapping.
type Values []Value

// UnmarshalYAML keeps the mapping's key order, which a Go map would lose.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: values must be a mapping", ErrInvalid, node.Line)
	}
	out := make(Values, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.Value == "" {
			return fmt.Errorf("%w: line %d: keys must be non-empty scalars", ErrInvalid, keyNode.Line)
		}
		if seen[keyNode.Value] {
			return fmt.Errorf("%w: line %d: duplicate key %q", ErrInvalid, keyNode.Line, keyNode.Value)
		}
		seen[keyNode.Value] = true

		var decoded any
		if err := valNode.Decode(&decoded); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalid, valNode.Line, err)
		}
		out = append(out, Value{Key: keyNode.Value, Value: decoded})
	}
	*v = out
	return nil
}

// Parse decodes a definitions document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		if errors.Is(err, ErrInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for i, l := range f.Layers {
		if l.Name == "" {
			f.Layers[i].Name = fmt.Sprintf("layer-%d", i)
		}
	}
	return &f, nil
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definitions: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Apply pushes one layer per definition onto s, oldest first.
func (f *File) Apply(s *layers.Stack) {
	for _, l := range f.Layers {
		deps := make([]layers.Dependency, 0, len(l.Values))
		for _, v := range l.Values {
			deps = append(deps, layers.Named(v.Key, v.Value))
		}
		if l.Isolated {
			s.CreateIsolated(deps...)
		} else {
			s.Create(deps...)
		}
	}
}

// Names returns the layer names in file order.
func (f *File) Names() []string {
	out := make([]string, len(f.Layers))
	for i, l := range f.Layers {
		out[i] = l.Name
	}
	return out
}
