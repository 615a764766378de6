package ir

import "strings"

// PrimitiveKind is the closed set of scalar kinds a member may carry.
type PrimitiveKind string

const (
	PrimitiveNone     PrimitiveKind = ""
	PrimitiveString   PrimitiveKind = "string"
	PrimitiveNumber   PrimitiveKind = "number"
	PrimitiveInteger  PrimitiveKind = "integer"
	PrimitiveBoolean  PrimitiveKind = "boolean"
	PrimitiveDate     PrimitiveKind = "date"
	PrimitiveDateTime PrimitiveKind = "date-time"
	PrimitiveUntyped  PrimitiveKind = "untyped"
)

var primitiveAliases = map[string]PrimitiveKind{
	"string":    PrimitiveString,
	"number":    PrimitiveNumber,
	"float":     PrimitiveNumber,
	"double":    PrimitiveNumber,
	"integer":   PrimitiveInteger,
	"int":       PrimitiveInteger,
	"long":      PrimitiveInteger,
	"boolean":   PrimitiveBoolean,
	"bool":      PrimitiveBoolean,
	"date":      PrimitiveDate,
	"date-time": PrimitiveDateTime,
	"datetime":  PrimitiveDateTime,
	"untyped":   PrimitiveUntyped,
	"any":       PrimitiveUntyped,
}

// ParsePrimitive maps a type name, including its aliases, to a primitive kind.
func ParsePrimitive(name string) (PrimitiveKind, bool) {
	k, ok := primitiveAliases[strings.ToLower(name)]
	return k, ok
}

// IsDate reports whether values of the kind are calendar dates or instants.
func (k PrimitiveKind) IsDate() bool {
	return k == PrimitiveDate || k == PrimitiveDateTime
}

// IsNumeric reports whether values of the kind are numbers.
func (k PrimitiveKind) IsNumeric() bool {
	return k == PrimitiveNumber || k == PrimitiveInteger
}

// RuleKind names a validation rule.
type RuleKind string

const (
	RuleStringEnum       RuleKind = "string-enum"
	RuleStringMaxLength  RuleKind = "string-max-length"
	RuleStringMinLength  RuleKind = "string-min-length"
	RuleStringPattern    RuleKind = "string-pattern"
	RuleNumberMultipleOf RuleKind = "number-multiple-of"
	RuleNumberGT         RuleKind = "number-gt"
	RuleNumberGTE        RuleKind = "number-gte"
	RuleNumberLT         RuleKind = "number-lt"
	RuleNumberLTE        RuleKind = "number-lte"
	RuleArrayMaxItems    RuleKind = "array-max-items"
	RuleArrayMinItems    RuleKind = "array-min-items"
	RuleArrayUniqueItems RuleKind = "array-unique-items"
)

// RuleKinds lists every known rule kind.
var RuleKinds = []RuleKind{
	RuleStringEnum,
	RuleStringMaxLength,
	RuleStringMinLength,
	RuleStringPattern,
	RuleNumberMultipleOf,
	RuleNumberGT,
	RuleNumberGTE,
	RuleNumberLT,
	RuleNumberLTE,
	RuleArrayMaxItems,
	RuleArrayMinItems,
	RuleArrayUniqueItems,
}

// IsValid reports whether k is a known rule kind.
func (k RuleKind) IsValid() bool {
	for _, x := range RuleKinds {
		if x == k {
			return true
		}
	}
	return false
}

// ValidationRule is one declarative constraint on a member.
// Value carries lengths, item counts and numeric bounds; Pattern the
// regular expression of string-pattern; Values the literals of string-enum.
type ValidationRule struct {
	Kind    RuleKind `json:"kind" yaml:"kind"`
	Value   float64  `json:"value,omitempty" yaml:"value,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// RefKind classifies what a type name resolves to.
type RefKind int

const (
	RefUnknown RefKind = iota
	RefPrimitive
	RefType
	RefEnum
	RefUnion
)

func (k RefKind) String() string {
	switch k {
	case RefPrimitive:
		return "primitive"
	case RefType:
		return "type"
	case RefEnum:
		return "enum"
	case RefUnion:
		return "union"
	default:
		return "unknown"
	}
}
