package ir

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Check verifies the preconditions the generator relies on:
// every reference resolves, definition and interface names are unique,
// no two names map to the same generated identifier, discriminated unions have a distinct constant per
// member, and rule parameters make sense.
// It returns nil or an aggregate of field errors.
func Check(s *Service) error {
	errs := CheckList(s)
	if len(errs) == 0 {
		return nil
	}
	return errs.ToAggregate()
}

// CheckList is Check returning the individual errors.
func CheckList(s *Service) field.ErrorList {
	var errs field.ErrorList
	errs = append(errs, checkNames(s)...)

	for i, t := range s.Types {
		p := field.NewPath("types").Index(i)
		errs = append(errs, checkMembers(s, p.Child("properties"), t.Properties)...)
	}
	for i, iface := range s.Interfaces {
		ip := field.NewPath("interfaces").Index(i)
		if iface.Name == "" {
			errs = append(errs, field.Required(ip.Child("name"), ""))
		}
		methods := sets.New[string]()
		for j, m := range iface.Methods {
			mp := ip.Child("methods").Index(j)
			if m.Name == "" {
				errs = append(errs, field.Required(mp.Child("name"), ""))
			} else if methods.Has(m.Name) {
				errs = append(errs, field.Duplicate(mp.Child("name"), m.Name))
			}
			methods.Insert(m.Name)
			errs = append(errs, checkMembers(s, mp.Child("parameters"), m.Parameters)...)
			if m.Returns != nil && s.Classify(m.Returns.Type) == RefUnknown {
				errs = append(errs, field.NotFound(mp.Child("returns", "type"), m.Returns.Type))
			}
		}
	}
	for i, e := range s.Enums {
		p := field.NewPath("enums").Index(i)
		if len(e.Values) == 0 {
			errs = append(errs, field.Required(p.Child("values"), "enum needs at least one value"))
		}
		seen := sets.New[string]()
		for j, v := range e.Values {
			if seen.Has(v) {
				errs = append(errs, field.Duplicate(p.Child("values").Index(j), v))
			}
			seen.Insert(v)
		}
	}
	for i, u := range s.Unions {
		errs = append(errs, checkUnion(s, field.NewPath("unions").Index(i), u)...)
	}
	return errs
}

// nameTable tracks the names a service claims in generated code.
// Declarations share one TypeScript namespace. Function names are derived
// from PascalCase identifiers, so those must be distinct too.
type nameTable struct {
	errs     field.ErrorList
	declared map[string]string
	funcs    map[string]string
	wrappers map[string]string
}

// declare claims name among the declarations in types.ts. value is the
// document name that produced it.
func (n *nameTable) declare(p *field.Path, value, name string) bool {
	other, ok := n.declared[name]
	switch {
	case !ok:
		n.declared[name] = p.String()
		return true
	case value == name:
		n.errs = append(n.errs, field.Duplicate(p, name))
	default:
		n.errs = append(n.errs, field.Invalid(p, value,
			fmt.Sprintf("generated name %s is already declared by %s", name, other)))
	}
	return false
}

// claim reserves the PascalCase identifier of name in idents.
func (n *nameTable) claim(idents map[string]string, p *field.Path, name string) {
	id := PascalCase(name)
	other, ok := idents[id]
	switch {
	case id == "":
		n.errs = append(n.errs, field.Invalid(p, name, "must contain a letter or digit"))
	case ok:
		n.errs = append(n.errs, field.Invalid(p, name,
			fmt.Sprintf("identifier %s is already derived from %s", id, other)))
	default:
		idents[id] = p.String()
	}
}

// definition claims a type, enum or union name.
func (n *nameTable) definition(p *field.Path, name string) {
	if name == "" {
		n.errs = append(n.errs, field.Required(p, ""))
		return
	}
	if _, ok := ParsePrimitive(name); ok {
		n.errs = append(n.errs, field.Invalid(p, name, "shadows a primitive type"))
	}
	if n.declare(p, name, name) {
		n.claim(n.funcs, p, name)
	}
}

func checkNames(s *Service) field.ErrorList {
	n := &nameTable{
		declared: make(map[string]string),
		funcs:    make(map[string]string),
		wrappers: make(map[string]string),
	}
	for i, t := range s.Types {
		n.definition(field.NewPath("types").Index(i).Child("name"), t.Name)
	}
	for i, e := range s.Enums {
		n.definition(field.NewPath("enums").Index(i).Child("name"), e.Name)
	}
	for i, u := range s.Unions {
		n.definition(field.NewPath("unions").Index(i).Child("name"), u.Name)
	}
	for i, e := range s.Enums {
		if e.Name != "" {
			n.declare(field.NewPath("enums").Index(i).Child("name"), e.Name, EnumValuesName(e.Name))
		}
	}
	for i, iface := range s.Interfaces {
		ip := field.NewPath("interfaces").Index(i)
		if iface.Name == "" {
			continue
		}
		if n.declare(ip.Child("name"), iface.Name, iface.Name) {
			n.claim(n.wrappers, ip.Child("name"), iface.Name)
		}
		for j, m := range iface.Methods {
			if m.Name == "" || len(m.Parameters) == 0 {
				continue
			}
			mp := ip.Child("methods").Index(j).Child("name")
			name := ParamsTypeName(iface.Name, m.Name)
			if n.declare(mp, m.Name, name) {
				n.claim(n.funcs, mp, name)
			}
		}
	}
	return n.errs
}

func checkMembers(s *Service, p *field.Path, members []*Member) field.ErrorList {
	var errs field.ErrorList
	seen := sets.New[string]()
	for i, m := range members {
		mp := p.Index(i)
		if m.Name == "" {
			errs = append(errs, field.Required(mp.Child("name"), ""))
		} else if seen.Has(m.Name) {
			errs = append(errs, field.Duplicate(mp.Child("name"), m.Name))
		}
		seen.Insert(m.Name)
		if s.Classify(m.Type) == RefUnknown {
			errs = append(errs, field.NotFound(mp.Child("type"), m.Type))
		}
		for j, r := range m.Rules {
			errs = append(errs, checkRule(mp.Child("rules").Index(j), r)...)
		}
	}
	return errs
}

func checkRule(p *field.Path, r ValidationRule) field.ErrorList {
	if !r.Kind.IsValid() {
		return field.ErrorList{field.NotSupported(p.Child("kind"), r.Kind, ruleKindStrings())}
	}
	var errs field.ErrorList
	switch r.Kind {
	case RuleStringEnum:
		if len(r.Values) == 0 {
			errs = append(errs, field.Required(p.Child("values"), "string-enum needs values"))
		}
	case RuleStringPattern:
		if r.Pattern == "" {
			errs = append(errs, field.Required(p.Child("pattern"), ""))
		}
	case RuleStringMaxLength, RuleStringMinLength, RuleArrayMaxItems, RuleArrayMinItems:
		if r.Value < 0 || r.Value != float64(int64(r.Value)) {
			errs = append(errs, field.Invalid(p.Child("value"), r.Value, "must be a non-negative integer"))
		}
	case RuleNumberMultipleOf:
		if r.Value <= 0 {
			errs = append(errs, field.Invalid(p.Child("value"), r.Value, "must be greater than 0"))
		}
	}
	return errs
}

func ruleKindStrings() []string {
	out := make([]string, len(RuleKinds))
	for i, k := range RuleKinds {
		out[i] = string(k)
	}
	return out
}

func checkUnion(s *Service, p *field.Path, u *Union) field.ErrorList {
	var errs field.ErrorList
	if len(u.Members) == 0 {
		errs = append(errs, field.Required(p.Child("members"), "union needs at least one member"))
	}
	literals := make(map[string]string, len(u.Members))
	for i, name := range u.Members {
		mp := p.Child("members").Index(i)
		kind := s.Classify(name)
		if kind == RefUnknown {
			errs = append(errs, field.NotFound(mp, name))
			continue
		}
		if !u.IsDiscriminated() {
			continue
		}
		t := s.Type(name)
		if kind != RefType || t == nil {
			errs = append(errs, field.Invalid(mp, name, "discriminated union members must be types"))
			continue
		}
		prop := t.Property(u.Discriminator)
		if prop == nil || !prop.IsConstant() {
			errs = append(errs, field.Invalid(mp, name,
				fmt.Sprintf("type must declare a constant %q property", u.Discriminator)))
			continue
		}
		if other, ok := literals[*prop.Constant]; ok {
			errs = append(errs, field.Invalid(mp, name,
				fmt.Sprintf("discriminator value %q is already used by %s", *prop.Constant, other)))
			continue
		}
		literals[*prop.Constant] = name
	}
	return errs
}
