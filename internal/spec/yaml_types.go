package spec

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- EnumValueSpec YAML methods ---

// UnmarshalYAML accepts:
//   - Name only: Value1
//   - Single map: {Value0: "1 << 0"}
//   - Explicit: {name: Value0, value: "1 << 0"}
//
// Values are kept as the literal source text.
func (e *EnumValueSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = EnumValueSpec{Name: node.Value}

		return nil

	case yaml.MappingNode:
		if hasKey(node, "name") {
			type plain EnumValueSpec

			var p plain

			if err := node.Decode(&p); err != nil {
				return err
			}

			*e = EnumValueSpec(p)

			return nil
		}

		if len(node.Content) != 2 {
			return errors.New("expected single key-value map like {Value0: \"1 << 0\"}")
		}

		key, value := node.Content[0], node.Content[1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("enum value %s must be a scalar", key.Value)
		}

		*e = EnumValueSpec{Name: key.Value, Value: value.Value}

		return nil

	default:
		return fmt.Errorf("expected enum value name or map, got %v", node.Kind)
	}
}

// MarshalYAML writes the shortest form.
func (e EnumValueSpec) MarshalYAML() (any, error) {
	if e.Value == "" {
		return e.Name, nil
	}

	return map[string]string{e.Name: e.Value}, nil
}

// --- BoundSpec YAML methods ---

// UnmarshalYAML accepts a bare scalar (asserted) or {value, clamp}.
func (b *BoundSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*b = BoundSpec{Value: node.Value}

		return nil

	case yaml.MappingNode:
		type plain BoundSpec

		var p plain

		if err := node.Decode(&p); err != nil {
			return err
		}

		*b = BoundSpec(p)

		return nil

	default:
		return fmt.Errorf("expected scalar or {value, clamp} bound, got %v", node.Kind)
	}
}

// MarshalYAML writes asserted bounds as bare scalars.
func (b BoundSpec) MarshalYAML() (any, error) {
	if !b.Clamp {
		return b.Value, nil
	}

	type plain BoundSpec

	return plain(b), nil
}

// --- RefMode YAML methods ---

// UnmarshalYAML accepts read, write, both, none or a boolean.
func (m *RefMode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected suppress_ref mode or boolean, got %v", node.Kind)
	}

	mode, err := parseRefMode(node.Value)
	if err != nil {
		return err
	}

	*m = mode

	return nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}

	return false
}
