package gen

import (
	"epigen/internal/common"
	"epigen/internal/model"
)

// classData holds everything the per-class templates need.
type classData struct {
	// Name is the simple class name, Qualified the C++ spelling.
	Name      string
	Qualified string
	Macro     string
	Parent    string
	TypeID    string

	Properties []propertyData
	Callbacks  []propertyData
	Fields     []propertyData
	Serialized []propertyData
}

// propertyData is one property, pre-rendered.
type propertyData struct {
	Name  string
	Label string
	ID    string
	Index int

	Getter        string
	Setter        string
	GetterDecl    string
	SetterDecl    string
	GetterFuncPtr string
	SetterFuncPtr string
	FieldDecl     string

	ReadLocator  string
	WriteLocator string
	Flags        string
	TypeTag      string
	NestedTag    string
}

// macroName is the bundle macro invoked inside the class body.
func macroName(c *model.Class) string {
	return "EPI_GENHIDDEN_" + common.Identifier(c.Qualified)
}

func (g *Generator) buildClassData(c *model.Class) classData {
	data := classData{
		Name:      c.Name,
		Qualified: c.Qualified,
		Macro:     macroName(c),
		Parent:    c.Parent,
		TypeID:    c.TypeID.Format(g.config.PadIDs),
	}

	built := make(map[*model.Property]propertyData, len(c.Properties))

	for _, p := range c.Properties {
		pd := g.buildPropertyData(c, p)
		built[p] = pd

		data.Properties = append(data.Properties, pd)
	}

	data.Callbacks = pick(built, c.Callbacks())
	data.Fields = pick(built, c.Fields())
	data.Serialized = pick(built, c.Serialized())

	return data
}

// pick returns the built data of props, keeping their order.
func pick(built map[*model.Property]propertyData, props []*model.Property) []propertyData {
	out := make([]propertyData, 0, len(props))
	for _, p := range props {
		out = append(out, built[p])
	}

	return out
}

func (g *Generator) buildPropertyData(c *model.Class, p *model.Property) propertyData {
	typeTag, nestedTag := typeTags(p.Type)

	pd := propertyData{
		Name:  p.Name,
		Label: p.Label(),
		ID:    p.ID.Format(g.config.PadIDs),
		Index: p.Index,

		Getter:     getterLine(p),
		Setter:     setterLine(p),
		GetterDecl: getterCallbackDecl(p),
		SetterDecl: setterCallbackDecl(p),

		ReadLocator:  locatorExpr(c.Qualified, p.ReadLocator()),
		WriteLocator: locatorExpr(c.Qualified, p.WriteLocator()),
		Flags:        flagsExpr(p.Flags()),
		TypeTag:      typeTag,
		NestedTag:    nestedTag,
	}

	if p.Storage == model.CallbackPair {
		pd.GetterFuncPtr = getterFuncPtr(c.Qualified, p)
		pd.SetterFuncPtr = setterFuncPtr(c.Qualified, p)
	}

	if p.OwnsField() {
		pd.FieldDecl = fieldDecl(p)
	}

	return pd
}
