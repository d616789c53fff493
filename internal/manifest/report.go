package manifest

import (
	"epigen/internal/model"
)

// OutputEntry is one artifact path of a unit.
type OutputEntry struct {
	Unit string `json:"unit"`
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// DepsEntry lists the spec files a unit is generated from.
type DepsEntry struct {
	Unit   string `json:"unit"`
	Source string `json:"source"`
	// Depends are the sources of other units whose types the unit uses.
	Depends []string `json:"depends,omitempty"`
}

// InspectReport is the JSON view of a linked registry.
type InspectReport struct {
	Root    string        `json:"root"`
	Classes []ClassReport `json:"classes"`
	Enums   []EnumReport  `json:"enums,omitempty"`
}

// ClassReport describes one class.
type ClassReport struct {
	Name       string           `json:"name"`
	Parent     string           `json:"parent"`
	TypeID     string           `json:"type_id"`
	Unit       string           `json:"unit"`
	Size       int              `json:"size,omitempty"`
	Regions    []string         `json:"regions,omitempty"`
	Properties []PropertyReport `json:"properties,omitempty"`
}

// PropertyReport describes one property.
type PropertyReport struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Label      string   `json:"label,omitempty"`
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Storage    string   `json:"storage"`
	Flags      []string `json:"flags,omitempty"`
	Default    string   `json:"default,omitempty"`
	Validation string   `json:"validation,omitempty"`
	Serialized bool     `json:"serialized"`
}

// EnumReport describes one enum.
type EnumReport struct {
	Name   string   `json:"name"`
	TypeID string   `json:"type_id"`
	Base   string   `json:"base,omitempty"`
	Mask   bool     `json:"mask,omitempty"`
	Unit   string   `json:"unit"`
	Values []string `json:"values,omitempty"`
}

// Inspect summarizes reg, classes parent-first. Call after Link.
func Inspect(reg *model.Registry, padIDs bool) InspectReport {
	report := InspectReport{Root: reg.Root().Name}

	for _, c := range reg.Ordered() {
		cr := ClassReport{
			Name:    c.Qualified,
			Parent:  c.Parent,
			TypeID:  c.TypeID.Format(padIDs),
			Unit:    c.Unit,
			Size:    c.Size,
			Regions: c.Regions,
		}

		for _, p := range c.Properties {
			pr := PropertyReport{
				Index:      p.Index,
				Name:       p.Name,
				ID:         p.ID.Format(padIDs),
				Type:       p.Type.String(),
				Storage:    p.Storage.String(),
				Flags:      p.Flags().Names(),
				Default:    p.DefaultLiteral(),
				Serialized: p.Serialized(),
			}

			if p.Label() != p.Name {
				pr.Label = p.Label()
			}

			if pattern := p.Validation.Pattern(); pattern != model.PatternNone {
				pr.Validation = pattern.String()
			}

			cr.Properties = append(cr.Properties, pr)
		}

		report.Classes = append(report.Classes, cr)
	}

	for _, name := range reg.EnumNames() {
		e, _ := reg.Enum(name)

		er := EnumReport{
			Name:   name,
			TypeID: e.TypeID().Format(padIDs),
			Base:   e.Base,
			Mask:   e.Mask,
			Unit:   e.Unit,
		}

		for _, v := range e.Values {
			er.Values = append(er.Values, v.Name)
		}

		report.Enums = append(report.Enums, er)
	}

	return report
}
