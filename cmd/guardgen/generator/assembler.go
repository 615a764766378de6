package generator

import (
	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

// assembler builds validator bodies and records the helpers, error codes
// and patterns they use.
type assembler struct {
	svc      *ir.Service
	names    Names
	registry *Registry
	patterns *PatternTable
	usage    Usage
	diags    *genkit.DiagnosticCollector
}

func newAssembler(p *plan, registry *Registry, diags *genkit.DiagnosticCollector) *assembler {
	return &assembler{
		svc:      p.svc,
		names:    p.names,
		registry: registry,
		patterns: NewPatternTable(),
		usage:    NewUsage(),
		diags:    diags,
	}
}

// members prints one block per member, in name order. The surrounding
// code must provide value (a record), parentPath and errors.
func (a *assembler) members(s *genkit.Snippet, owner string, members []*ir.Member) {
	for _, m := range ir.SortedMembers(members) {
		a.member(s, owner, m)
	}
}

func (a *assembler) member(s *genkit.Snippet, owner string, m *ir.Member) {
	var body genkit.Snippet
	a.shape(&body, owner, m, "member", "path")
	if body.IsEmpty() && !m.Required {
		return
	}

	s.P("{")
	s.P("const path = ", a.usage.Use(HelperJoinPath), "(parentPath, ", genkit.Quote(m.Name), ");")
	s.P("const member = value[", genkit.Quote(m.Name), "];")
	switch {
	case m.Required:
		s.P("if (member === undefined || member === null) {")
		a.push(s, CodeRequired, pathPlaceholder+" is required", "path")
		if !body.IsEmpty() {
			s.P("} else {")
			s.Append(&body)
		}
		s.P("}")
	default:
		s.P("if (member !== undefined && member !== null) {")
		s.Append(&body)
		s.P("}")
	}
	s.P("}")
}

// shape prints the checks of a present member value.
// Array rules apply to the array itself, every other rule to each element.
func (a *assembler) shape(s *genkit.Snippet, owner string, m *ir.Member, value, path string) {
	var collection, element []ir.ValidationRule
	for _, r := range m.Rules {
		rule := a.registry.Get(r.Kind)
		switch {
		case rule == nil:
			a.diags.Warningf(CodeUnknownRule, m.Pos, "%s.%s: unknown rule %q skipped", owner, m.Name, r.Kind)
		case rule.Target() == TargetArray:
			collection = append(collection, r)
		default:
			element = append(element, r)
		}
	}

	if !m.Array {
		for _, r := range collection {
			a.notApplicable(owner, m, r, "a non-array member")
		}
		a.scalar(s, owner, m, value, path, element)
		return
	}

	var each genkit.Snippet
	a.scalar(&each, owner, m, "element", "elementPath", element)

	s.P("if (", a.usage.Use(HelperCheckArray), "(", value, ", ", path, ", errors)) {")
	for _, r := range collection {
		a.guard(s, a.registry.Get(r.Kind), r, value, path)
	}
	if !each.IsEmpty() {
		s.P("for (let index = 0; index < ", value, ".length; index++) {")
		s.P("const element = ", value, "[index];")
		s.P("const elementPath = `${", path, "}[${index}]`;")
		s.Append(&each)
		s.P("}")
	}
	s.P("}")
}

// scalar prints the checks of one non-array value.
func (a *assembler) scalar(s *genkit.Snippet, owner string, m *ir.Member, value, path string, rules []ir.ValidationRule) {
	if m.IsConstant() {
		a.skipRules(owner, m, rules, "a constant member")
		s.P("if (", value, " !== ", genkit.Quote(*m.Constant), ") {")
		a.push(s, CodeStringEnum, pathPlaceholder+" must be "+genkit.Quote(*m.Constant), path)
		s.P("}")
		return
	}

	switch a.svc.Classify(m.Type) {
	case ir.RefPrimitive:
		switch m.Primitive() {
		case ir.PrimitiveString:
			a.checked(s, owner, m, HelperCheckString, TargetString, value, path, rules, nil)
		case ir.PrimitiveNumber:
			a.checked(s, owner, m, HelperCheckNumber, TargetNumber, value, path, rules, nil)
		case ir.PrimitiveInteger:
			a.checked(s, owner, m, HelperCheckInteger, TargetNumber, value, path, rules, nil)
		case ir.PrimitiveBoolean:
			a.checked(s, owner, m, HelperCheckBoolean, TargetNone, value, path, rules, nil)
		case ir.PrimitiveDate, ir.PrimitiveDateTime:
			a.checked(s, owner, m, HelperCheckDate, TargetNone, value, path, rules, nil)
		case ir.PrimitiveUntyped:
			a.skipRules(owner, m, rules, "an untyped member")
		}
	case ir.RefEnum:
		delegate := func() {
			s.P("errors.push(...", a.names.Validator(m.Type), "(", value, ", ", path, "));")
		}
		a.checked(s, owner, m, HelperCheckString, TargetString, value, path, rules, delegate)
	case ir.RefType, ir.RefUnion:
		a.skipRules(owner, m, rules, "a "+a.svc.Classify(m.Type).String()+" member")
		s.P("errors.push(...", a.names.Validator(m.Type), "(", value, ", ", path, "));")
	default:
		a.diags.Warningf(CodeUnresolvedReference, m.Pos,
			"%s.%s: type %q does not resolve, member left unchecked", owner, m.Name, m.Type)
	}
}

// checked prints a shape check through helper followed, when it passes,
// by delegate and the rules that fit target.
func (a *assembler) checked(
	s *genkit.Snippet,
	owner string,
	m *ir.Member,
	helper Helper,
	target Target,
	value, path string,
	rules []ir.ValidationRule,
	delegate func(),
) {
	var applicable []ir.ValidationRule
	var compilers []Rule
	for _, r := range rules {
		rule := a.registry.Get(r.Kind)
		if rule.Target() != target {
			a.notApplicable(owner, m, r, "a "+memberKind(a.svc, m)+" value")
			continue
		}
		applicable = append(applicable, r)
		compilers = append(compilers, rule)
	}

	check := a.usage.Use(helper) + "(" + value + ", " + path + ", errors)"
	if len(applicable) == 0 && delegate == nil {
		s.P(check, ";")
		return
	}
	s.P("if (", check, ") {")
	if delegate != nil {
		delegate()
	}
	for i, r := range applicable {
		a.guard(s, compilers[i], r, value, path)
	}
	s.P("}")
}

func (a *assembler) skipRules(owner string, m *ir.Member, rules []ir.ValidationRule, what string) {
	for _, r := range rules {
		a.notApplicable(owner, m, r, what)
	}
}

func (a *assembler) notApplicable(owner string, m *ir.Member, r ir.ValidationRule, what string) {
	a.diags.Warningf(CodeRuleNotApplicable, m.Pos,
		"%s.%s: rule %s does not apply to %s, skipped", owner, m.Name, r.Kind, what)
}

// guard prints one compiled rule.
func (a *assembler) guard(s *genkit.Snippet, rule Rule, r ir.ValidationRule, value, path string) {
	g := rule.Compile(&CompileContext{Rule: r, Value: value, Patterns: a.patterns})
	for _, h := range g.Helpers {
		a.usage.Use(h)
	}
	s.P("if (", g.Violation, ") {")
	a.push(s, g.Code, g.Title, path)
	s.P("}")
}

func (a *assembler) push(s *genkit.Snippet, code ErrorCode, title, path string) {
	pushError(s, a.usage.Report(code), title, path)
}

// memberKind names the declared kind of a member for messages.
func memberKind(svc *ir.Service, m *ir.Member) string {
	if k := m.Primitive(); k != ir.PrimitiveNone {
		return string(k)
	}
	return svc.Classify(m.Type).String()
}
