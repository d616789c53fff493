package spec

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// The TOML and JSON decoders hand shorthand values over as generic trees
// (string, bool, numbers, map[string]any). These helpers turn such a tree
// into the typed form, so both formats accept exactly the YAML shorthands.

// scalarText renders a scalar as the literal text written in the source.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int:
		return strconv.Itoa(x), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// boundFromAny accepts a scalar (asserted bound) or {value, clamp}.
func boundFromAny(v any) (BoundSpec, error) {
	if s, ok := scalarText(v); ok {
		return BoundSpec{Value: s}, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return BoundSpec{}, fmt.Errorf("expected scalar or {value, clamp} bound, got %T", v)
	}

	var b BoundSpec

	for key, raw := range m {
		switch key {
		case "value":
			s, ok := scalarText(raw)
			if !ok {
				return BoundSpec{}, fmt.Errorf("bound value must be a scalar, got %T", raw)
			}

			b.Value = s
		case "clamp":
			c, ok := raw.(bool)
			if !ok {
				return BoundSpec{}, fmt.Errorf("bound clamp must be a boolean, got %T", raw)
			}

			b.Clamp = c
		default:
			return BoundSpec{}, fmt.Errorf("unknown bound key %q (expected value or clamp)", key)
		}
	}

	return b, nil
}

// enumValueFromAny accepts "Name", {Name: value} or {name, value}.
func enumValueFromAny(v any) (EnumValueSpec, error) {
	if s, ok := v.(string); ok {
		return EnumValueSpec{Name: s}, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return EnumValueSpec{}, fmt.Errorf("expected enum value name or map, got %T", v)
	}

	if _, explicit := m["name"]; explicit {
		var ev EnumValueSpec

		for key, raw := range m {
			s, ok := scalarText(raw)
			if !ok {
				return EnumValueSpec{}, fmt.Errorf("enum value %s must be a scalar, got %T", key, raw)
			}

			switch key {
			case "name":
				ev.Name = s
			case "value":
				ev.Value = s
			default:
				return EnumValueSpec{}, fmt.Errorf("unknown enum value key %q (expected name or value)", key)
			}
		}

		return ev, nil
	}

	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		return EnumValueSpec{}, fmt.Errorf("expected single key-value map like {Value0: \"1 << 0\"}, got keys %v", keys)
	}

	for name, raw := range m {
		s, ok := scalarText(raw)
		if !ok {
			return EnumValueSpec{}, fmt.Errorf("enum value %s must be a scalar, got %T", name, raw)
		}

		return EnumValueSpec{Name: name, Value: s}, nil
	}

	return EnumValueSpec{}, nil
}

// refModeFromAny accepts a mode name or a boolean (true means both).
func refModeFromAny(v any) (RefMode, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return RefBoth, nil
		}

		return RefNone, nil
	case string:
		return parseRefMode(x)
	default:
		return RefNone, fmt.Errorf("expected suppress_ref mode or boolean, got %T", v)
	}
}

func parseRefMode(s string) (RefMode, error) {
	switch s {
	case "", "none", "false":
		return RefNone, nil
	case "true":
		return RefBoth, nil
	}

	m := RefMode(s)
	if !m.Valid() {
		return RefNone, fmt.Errorf("invalid suppress_ref %q (expected read, write, both or none)", s)
	}

	return m, nil
}
