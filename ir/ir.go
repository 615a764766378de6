// Package ir describes the service model guardgen generates code from.
//
// A Service is an immutable graph of interfaces, types, enums and unions.
// It is loaded once from a JSON or YAML document and then only read.
package ir

import (
	"fmt"
	"sort"
	"sync"
)

// Position is a location inside an IR document.
type Position struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func (p Position) String() string {
	switch {
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	case p.Line == 0:
		return p.File
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool { return p.Line > 0 }

// Service is the root of the model.
type Service struct {
	Name       string       `json:"name" yaml:"name"`
	Interfaces []*Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Types      []*Type      `json:"types,omitempty" yaml:"types,omitempty"`
	Enums      []*Enum      `json:"enums,omitempty" yaml:"enums,omitempty"`
	Unions     []*Union     `json:"unions,omitempty" yaml:"unions,omitempty"`

	// File is the document the service was loaded from.
	File string `json:"-" yaml:"-"`

	once   sync.Once
	types  map[string]*Type
	enums  map[string]*Enum
	unions map[string]*Union
}

// Interface groups the methods of one service endpoint.
type Interface struct {
	Name    string    `json:"name" yaml:"name"`
	Doc     string    `json:"doc,omitempty" yaml:"doc,omitempty"`
	Methods []*Method `json:"methods,omitempty" yaml:"methods,omitempty"`
	Pos     Position  `json:"-" yaml:"-"`
}

// Method is one operation of an interface.
type Method struct {
	Name       string    `json:"name" yaml:"name"`
	Doc        string    `json:"doc,omitempty" yaml:"doc,omitempty"`
	Parameters []*Member `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Returns    *TypeRef  `json:"returns,omitempty" yaml:"returns,omitempty"`
	Pos        Position  `json:"-" yaml:"-"`
}

// Type is a named record.
type Type struct {
	Name       string    `json:"name" yaml:"name"`
	Doc        string    `json:"doc,omitempty" yaml:"doc,omitempty"`
	Properties []*Member `json:"properties,omitempty" yaml:"properties,omitempty"`
	Pos        Position  `json:"-" yaml:"-"`
}

// Property returns the property with the given name, or nil.
func (t *Type) Property(name string) *Member {
	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Enum is a named set of string literals.
type Enum struct {
	Name   string   `json:"name" yaml:"name"`
	Doc    string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Values []string `json:"values" yaml:"values"`
	Pos    Position `json:"-" yaml:"-"`
}

// Has reports whether v is one of the enum's values.
func (e *Enum) Has(v string) bool {
	for _, x := range e.Values {
		if x == v {
			return true
		}
	}
	return false
}

// Union is a named alternative over types.
// When Discriminator is set every member type carries a constant value
// for that property.
type Union struct {
	Name          string   `json:"name" yaml:"name"`
	Doc           string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Discriminator string   `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	Members       []string `json:"members" yaml:"members"`
	Pos           Position `json:"-" yaml:"-"`
}

// IsDiscriminated reports whether the union dispatches on a literal property.
func (u *Union) IsDiscriminated() bool { return u.Discriminator != "" }

// TypeRef points at a primitive or a named definition.
type TypeRef struct {
	Type  string `json:"type" yaml:"type"`
	Array bool   `json:"array,omitempty" yaml:"array,omitempty"`
}

// Primitive returns the primitive kind of the reference, or PrimitiveNone.
func (r TypeRef) Primitive() PrimitiveKind {
	k, _ := ParsePrimitive(r.Type)
	return k
}

// IsPrimitive reports whether the reference names a primitive.
func (r TypeRef) IsPrimitive() bool { return r.Primitive() != PrimitiveNone }

// IsArray reports whether the reference is a list.
func (r TypeRef) IsArray() bool { return r.Array }

// Member is a property of a type or a parameter of a method.
type Member struct {
	Name    string `json:"name" yaml:"name"`
	Doc     string `json:"doc,omitempty" yaml:"doc,omitempty"`
	TypeRef `yaml:",inline"`

	Required bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Constant *string          `json:"constant,omitempty" yaml:"constant,omitempty"`
	Rules    []ValidationRule `json:"rules,omitempty" yaml:"rules,omitempty"`
	Pos      Position         `json:"-" yaml:"-"`
}

// IsRequired reports whether the member must be present.
func (m *Member) IsRequired() bool { return m.Required }

// IsConstant reports whether the member only admits one literal value.
func (m *Member) IsConstant() bool { return m.Constant != nil }

// SortedMembers returns a copy of ms ordered by name.
func SortedMembers(ms []*Member) []*Member {
	out := make([]*Member, len(ms))
	copy(out, ms)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllOptional reports whether no member of ms is required.
func AllOptional(ms []*Member) bool {
	for _, m := range ms {
		if m.Required {
			return false
		}
	}
	return true
}
