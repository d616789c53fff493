package spec

import (
	"bytes"

	"github.com/goccy/go-json"
)

// decodeRaw decodes b into a generic tree, keeping numbers as written.
func decodeRaw(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// UnmarshalJSON accepts the enum value shorthands.
func (e *EnumValueSpec) UnmarshalJSON(b []byte) error {
	raw, err := decodeRaw(b)
	if err != nil {
		return err
	}

	v, err := enumValueFromAny(raw)
	if err != nil {
		return err
	}

	*e = v

	return nil
}

// MarshalJSON writes the shortest form.
func (e EnumValueSpec) MarshalJSON() ([]byte, error) {
	if e.Value == "" {
		return json.Marshal(e.Name)
	}

	return json.Marshal(map[string]string{e.Name: e.Value})
}

// UnmarshalJSON accepts a scalar bound or {value, clamp}.
func (b *BoundSpec) UnmarshalJSON(data []byte) error {
	raw, err := decodeRaw(data)
	if err != nil {
		return err
	}

	v, err := boundFromAny(raw)
	if err != nil {
		return err
	}

	*b = v

	return nil
}

// UnmarshalJSON accepts a mode name or a boolean.
func (m *RefMode) UnmarshalJSON(data []byte) error {
	raw, err := decodeRaw(data)
	if err != nil {
		return err
	}

	v, err := refModeFromAny(raw)
	if err != nil {
		return err
	}

	*m = v

	return nil
}
