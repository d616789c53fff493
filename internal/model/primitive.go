package model

//go:generate go tool stringer -type=PrimitiveKind -trimprefix=Kind -output=primitive_string.go

// PrimitiveKind classifies the built-in value types a property may declare.
type PrimitiveKind int

const (
	_ PrimitiveKind = iota // zero is invalid

	KindChar
	KindWChar
	KindBool
	KindByte
	KindSize
	KindHash
	KindU8
	KindU16
	KindU32
	KindU64
	KindS8
	KindS16
	KindS32
	KindS64
	KindFloat
	KindDouble
	KindString
	KindWString
	KindVector // epiVec*, epiMat*, epiRect*

	// KindTotal is the number of kinds defined above, plus the invalid zero.
	KindTotal = int(iota)
)

var primitiveKinds = map[string]PrimitiveKind{
	"epiChar":   KindChar,
	"epiWChar":  KindWChar,
	"epiBool":   KindBool,
	"epiByte":   KindByte,
	"epiSize_t": KindSize,
	"epiHash_t": KindHash,
	"epiU8":     KindU8,
	"epiU16":    KindU16,
	"epiU32":    KindU32,
	"epiU64":    KindU64,
	"epiS8":     KindS8,
	"epiS16":    KindS16,
	"epiS32":    KindS32,
	"epiS64":    KindS64,
	"epiFloat":  KindFloat,
	"epiDouble": KindDouble,

	"epiString":  KindString,
	"epiWString": KindWString,

	"epiVec2f":   KindVector,
	"epiVec2d":   KindVector,
	"epiVec2s":   KindVector,
	"epiVec2u":   KindVector,
	"epiVec3f":   KindVector,
	"epiVec3d":   KindVector,
	"epiVec3s":   KindVector,
	"epiVec3u":   KindVector,
	"epiVec4f":   KindVector,
	"epiVec4d":   KindVector,
	"epiVec4s":   KindVector,
	"epiVec4u":   KindVector,
	"epiMat2x2f": KindVector,
	"epiMat3x3f": KindVector,
	"epiMat4x4f": KindVector,
	"epiRect2f":  KindVector,
	"epiRect2d":  KindVector,
	"epiRect2s":  KindVector,
	"epiRect2u":  KindVector,
}

// LookupPrimitive returns the kind of a built-in type name.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	k, ok := primitiveKinds[name]
	return k, ok
}

// PrimitiveNames returns every built-in type name. Order is unspecified.
func PrimitiveNames() []string {
	names := make([]string, 0, len(primitiveKinds))
	for name := range primitiveKinds {
		names = append(names, name)
	}

	return names
}

// IsFundamental reports whether values of this kind are passed by value.
func (k PrimitiveKind) IsFundamental() bool {
	switch k {
	default:
		return false
	case KindChar, KindWChar, KindBool, KindByte, KindSize, KindHash,
		KindU8, KindU16, KindU32, KindU64,
		KindS8, KindS16, KindS32, KindS64,
		KindFloat, KindDouble:
		return true
	}
}

func (k PrimitiveKind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindByte, KindSize, KindHash,
		KindU8, KindU16, KindU32, KindU64,
		KindS8, KindS16, KindS32, KindS64:
		return true
	}
}

func (k PrimitiveKind) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat, KindDouble:
		return true
	}
}

// IsNumber reports whether min/max bounds make sense for the kind.
func (k PrimitiveKind) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

// DefaultLiteral is the field initializer used when a property declares no default.
// The empty string means "no initializer".
func (k PrimitiveKind) DefaultLiteral() string {
	switch k {
	case KindBool:
		return "false"
	case KindFloat:
		return "0.0f"
	case KindDouble:
		return "0.0"
	case KindChar:
		return `'\0'`
	case KindWChar:
		return `L'\0'`
	case KindString:
		return `epiDEBUG_ONLY("Empty")`
	case KindWString:
		return `epiDEBUG_ONLY(L"Empty")`
	default:
		if k.IsInteger() {
			return "0"
		}

		return ""
	}
}
