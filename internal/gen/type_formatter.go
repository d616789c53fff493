package gen

import (
	"strings"

	"epigen/internal/model"
)

// typeSpelling is the C++ spelling of a property type.
func typeSpelling(p *model.Property) string {
	return p.Type.String()
}

// getterType is the return type of Get<Name>() and of its callback.
func getterType(p *model.Property) string {
	t := typeSpelling(p)

	switch {
	case p.Type.IsPointer():
		return "const " + t
	case p.Read == model.AccessCallback && p.SuppressRef.Read():
		return t
	case p.Type.ByValue():
		return t
	default:
		return "const " + t + "&"
	}
}

// setterType is the parameter type of Set<Name>() and of its callback.
func setterType(p *model.Property) string {
	t := typeSpelling(p)

	switch {
	case p.Type.IsPointer(), p.Type.ByValue():
		return t
	case p.Write == model.AccessCallback && p.SuppressRef.Write():
		return t
	default:
		return "const " + t + "&"
	}
}

func getterName(p *model.Property) string { return "Get" + p.Name }
func setterName(p *model.Property) string { return "Set" + p.Name }

// getterLine is the accessor macro line for reading p.
func getterLine(p *model.Property) string {
	var sb strings.Builder

	if p.Read != model.AccessCallback {
		sb.WriteString("inline ")
	}

	sb.WriteString(getterType(p) + " " + getterName(p) + "() const { return ")

	if p.Read == model.AccessCallback {
		sb.WriteString(getterName(p) + "_Callback()")
	} else {
		sb.WriteString(p.Member())
	}

	sb.WriteString("; }")

	return sb.String()
}

// setterLine is the accessor macro line for writing p, empty when read-only.
func setterLine(p *model.Property) string {
	if p.ReadOnly() {
		return ""
	}

	var sb strings.Builder

	if p.Write != model.AccessCallback && p.Validation.IsZero() {
		sb.WriteString("inline ")
	}

	sb.WriteString("void " + setterName(p) + "(" + setterType(p) + " value) { ")
	sb.WriteString(validationPrologue(p.Validation))

	if p.Write == model.AccessCallback {
		sb.WriteString(setterName(p) + "_Callback(value)")
	} else {
		sb.WriteString(p.Member() + " = value")
	}

	sb.WriteString("; }")

	return sb.String()
}

// validationPrologue renders the bound checks that run before the store.
// The floor always comes before the ceiling.
func validationPrologue(v model.ValidationPolicy) string {
	var sb strings.Builder

	if v.Min != nil {
		if v.Min.Clamp {
			sb.WriteString("value = std::max(value, " + v.Min.Literal + "); ")
		} else {
			sb.WriteString("epiExpected(value >= " + v.Min.Literal + "); ")
		}
	}

	if v.Max != nil {
		if v.Max.Clamp {
			sb.WriteString("value = std::min(value, " + v.Max.Literal + "); ")
		} else {
			sb.WriteString("epiExpected(value <= " + v.Max.Literal + "); ")
		}
	}

	return sb.String()
}

// getterCallbackDecl declares the user-implemented read callback.
func getterCallbackDecl(p *model.Property) string {
	if p.Read != model.AccessCallback {
		return ""
	}

	return getterType(p) + " " + getterName(p) + "_Callback() const;"
}

// setterCallbackDecl declares the user-implemented write callback.
func setterCallbackDecl(p *model.Property) string {
	if p.Write != model.AccessCallback {
		return ""
	}

	return "void " + setterName(p) + "_Callback(" + setterType(p) + " value);"
}

// getterFuncPtr binds the read slot to the forwarding getter.
func getterFuncPtr(class string, p *model.Property) string {
	if p.Read != model.AccessCallback {
		return ""
	}

	return getterType(p) + " (" + class + "::*" + getterName(p) + "_FuncPtr)() const { &" + class + "::" + getterName(p) + " };"
}

// setterFuncPtr binds the write slot to the forwarding setter.
func setterFuncPtr(class string, p *model.Property) string {
	if p.Write != model.AccessCallback {
		return ""
	}

	return "void (" + class + "::*" + setterName(p) + "_FuncPtr)(" + setterType(p) + ") { &" + class + "::" + setterName(p) + " };"
}

// fieldDecl is the member declaration of a DirectField property.
func fieldDecl(p *model.Property) string {
	decl := typeSpelling(p) + " " + p.Member()

	if lit := p.DefaultLiteral(); lit != "" {
		decl += "{" + lit + "}"
	}

	return decl + ";"
}

// locatorExpr renders a metadata locator. A nil locator is a null address.
func locatorExpr(class string, l model.Locator) string {
	switch l := l.(type) {
	case model.FieldOffset:
		return "(void*)offsetof(" + class + ", " + l.Member + ")"
	case model.AccessorAddress:
		return "(void*)offsetof(" + class + ", " + l.Slot + ")"
	default:
		return "(void*)nullptr"
	}
}

// flagsExpr renders the metadata flag set.
func flagsExpr(f model.PropertyFlags) string {
	names := f.Names()
	if len(names) == 0 {
		return "{}"
	}

	for i, n := range names {
		names[i] = "MetaProperty::Flags::Mask" + n
	}

	return "{" + strings.Join(names, " | ") + "}"
}

const (
	typeIDNone    = "MetaTypeID_None"
	typeIDPtr     = "MetaTypeID_Ptr"
	typeIDPolyPtr = "MetaTypeID_PolyPtr"
)

func compileTimeHash(name string) string {
	return "epiHashCompileTime(" + name + ")"
}

// typeTags returns the value-type and nested-type identifiers of t.
func typeTags(t model.TypeDescriptor) (typeID, nested string) {
	switch t.Kind {
	case model.TypeKindArray:
		return compileTimeHash(t.Container()), compileTimeHash(t.Leaf().String())
	case model.TypeKindPointer:
		if t.Leaf().Kind == model.TypeKindClass {
			return typeIDPolyPtr, compileTimeHash(t.Leaf().String())
		}

		return typeIDPtr, compileTimeHash(t.Leaf().String())
	default:
		return compileTimeHash(t.String()), typeIDNone
	}
}
