package spec

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// HCL spec files use labelled blocks instead of lists:
//
//	enum "EMask" {
//	  mask = true
//	  value "Value0" { value = "1 << 0" }
//	}
//
//	class "A" {
//	  parent = "Object"
//	  property "PName" {
//	    type = "epiS32"
//	    min { value = "0" }
//	  }
//	}

type hclFile struct {
	Version string     `hcl:"version,optional"`
	Unit    string     `hcl:"unit,optional"`
	Module  string     `hcl:"module,optional"`
	Enums   []hclEnum  `hcl:"enum,block"`
	Classes []hclClass `hcl:"class,block"`
}

type hclEnum struct {
	Name   string     `hcl:"name,label"`
	Base   string     `hcl:"base,optional"`
	Mask   bool       `hcl:"mask,optional"`
	Values []hclValue `hcl:"value,block"`
}

type hclValue struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value,optional"`
}

type hclClass struct {
	Name       string        `hcl:"name,label"`
	Parent     string        `hcl:"parent,optional"`
	Size       int           `hcl:"size,optional"`
	Regions    []string      `hcl:"regions,optional"`
	Enums      []hclEnum     `hcl:"enum,block"`
	Classes    []hclClass    `hcl:"class,block"`
	Properties []hclProperty `hcl:"property,block"`
}

type hclProperty struct {
	Name        string    `hcl:"name,label"`
	Type        string    `hcl:"type"`
	Storage     string    `hcl:"storage,optional"`
	Write       string    `hcl:"write,optional"`
	Default     string    `hcl:"default,optional"`
	Min         *hclBound `hcl:"min,block"`
	Max         *hclBound `hcl:"max,block"`
	ReadOnly    bool      `hcl:"readonly,optional"`
	Transient   bool      `hcl:"transient,optional"`
	SuppressRef string    `hcl:"suppress_ref,optional"`
	DisplayName string    `hcl:"display_name,optional"`
}

type hclBound struct {
	Value string `hcl:"value"`
	Clamp bool   `hcl:"clamp,optional"`
}

// parseHCL decodes an HCL spec body into a File.
func parseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()

	hf, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var raw hclFile
	if diags := gohcl.DecodeBody(hf.Body, nil, &raw); diags.HasErrors() {
		return nil, diags
	}

	f := &File{
		Version: raw.Version,
		Unit:    raw.Unit,
		Module:  raw.Module,
		Enums:   convertHCLEnums(raw.Enums),
	}

	for _, c := range raw.Classes {
		cs, err := convertHCLClass(c)
		if err != nil {
			return nil, err
		}

		f.Classes = append(f.Classes, cs)
	}

	return f, nil
}

func convertHCLEnums(in []hclEnum) []EnumSpec {
	var out []EnumSpec

	for _, e := range in {
		es := EnumSpec{Name: e.Name, Base: e.Base, Mask: e.Mask}
		for _, v := range e.Values {
			es.Values = append(es.Values, EnumValueSpec(v))
		}

		out = append(out, es)
	}

	return out
}

func convertHCLClass(c hclClass) (ClassSpec, error) {
	cs := ClassSpec{
		Name:    c.Name,
		Parent:  c.Parent,
		Size:    c.Size,
		Regions: c.Regions,
		Enums:   convertHCLEnums(c.Enums),
	}

	for _, n := range c.Classes {
		nested, err := convertHCLClass(n)
		if err != nil {
			return ClassSpec{}, err
		}

		cs.Classes = append(cs.Classes, nested)
	}

	for _, p := range c.Properties {
		mode, err := parseRefMode(p.SuppressRef)
		if err != nil {
			return ClassSpec{}, err
		}

		cs.Properties = append(cs.Properties, PropertySpec{
			Name:        p.Name,
			Type:        p.Type,
			Storage:     p.Storage,
			Write:       p.Write,
			Default:     p.Default,
			Min:         (*BoundSpec)(p.Min),
			Max:         (*BoundSpec)(p.Max),
			ReadOnly:    p.ReadOnly,
			Transient:   p.Transient,
			SuppressRef: mode,
			DisplayName: p.DisplayName,
		})
	}

	return cs, nil
}
