package spec

// UnmarshalTOML implements toml.Unmarshaler for the enum value shorthands.
func (e *EnumValueSpec) UnmarshalTOML(data any) error {
	v, err := enumValueFromAny(data)
	if err != nil {
		return err
	}

	*e = v

	return nil
}

// UnmarshalTOML implements toml.Unmarshaler for the bound shorthands.
func (b *BoundSpec) UnmarshalTOML(data any) error {
	v, err := boundFromAny(data)
	if err != nil {
		return err
	}

	*b = v

	return nil
}

// UnmarshalTOML implements toml.Unmarshaler for suppress_ref.
func (m *RefMode) UnmarshalTOML(data any) error {
	v, err := refModeFromAny(data)
	if err != nil {
		return err
	}

	*m = v

	return nil
}
