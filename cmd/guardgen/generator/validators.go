package generator

import (
	"strings"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

// rootTitle and rootPath describe the validated value itself.
const (
	rootTitle = `${parentPath || "value"}`
	rootPath  = `parentPath ?? ""`
)

// typeValidator assembles the validator and type guard of t.
func (a *assembler) typeValidator(t *ir.Type) *genkit.Snippet {
	s := new(genkit.Snippet)
	s.P("export function ", a.names.Validator(t.Name), "(value: unknown, parentPath?: string): ", a.names.ValidationError(), "[] {")
	s.P("const errors: ", a.names.ValidationError(), "[] = [];")
	a.recordCheck(s)
	a.members(s, t.Name, t.Properties)
	s.P("return errors;")
	s.P("}")
	s.P()
	s.P("export function ", a.names.Guard(t.Name), "(value: unknown): value is ", a.names.Type(t.Name), " {")
	s.P("return value !== undefined && ", a.names.Validator(t.Name), "(value).length === 0;")
	s.P("}")
	return s
}

// paramsValidator assembles the validator of a method's parameter object.
func (a *assembler) paramsValidator(ps *paramsSet) *genkit.Snippet {
	owner := ps.iface.Name + "." + ps.method.Name
	s := new(genkit.Snippet)
	s.P("export function ", a.names.ParamsValidator(ps.iface.Name, ps.method.Name),
		"(value: unknown, parentPath?: string): ", a.names.ValidationError(), "[] {")
	s.P("const errors: ", a.names.ValidationError(), "[] = [];")
	if ir.AllOptional(ps.members) {
		s.P("if (value === undefined) {")
		s.P("return errors;")
		s.P("}")
	}
	a.recordCheck(s)
	a.members(s, owner, ps.members)
	s.P("return errors;")
	s.P("}")
	return s
}

// recordCheck rejects values that are not plain objects.
func (a *assembler) recordCheck(s *genkit.Snippet) {
	s.P("if (!", a.usage.Use(HelperIsRecord), "(value)) {")
	s.P("errors.push({ code: ", genkit.Quote(string(a.usage.Report(CodeType))),
		", title: `", rootTitle, " must be an object`, path: ", rootPath, " });")
	s.P("return errors;")
	s.P("}")
}

// enumValidator flags strings outside the enum. Other shapes pass: the
// referencing member checks them.
func (a *assembler) enumValidator(e *ir.Enum) *genkit.Snippet {
	s := new(genkit.Snippet)
	s.P("export function ", a.names.Validator(e.Name), "(value: unknown, parentPath?: string): ", a.names.ValidationError(), "[] {")
	s.P("if (typeof value === \"string\" && !", literalArray(e.Values), ".includes(value)) {")
	s.P("return [{ code: ", genkit.Quote(string(a.usage.Report(CodeStringEnum))),
		", title: `", rootTitle, " must be one of: ", templateText(strings.Join(e.Values, ", ")), "`, path: ", rootPath, " }];")
	s.P("}")
	s.P("return [];")
	s.P("}")
	return s
}

// unionValidator dispatches on the discriminator when there is one and
// otherwise tries the members in declaration order.
func (a *assembler) unionValidator(u *ir.Union) *genkit.Snippet {
	members := a.unionMembers(u)
	s := new(genkit.Snippet)
	s.P("export function ", a.names.Validator(u.Name), "(value: unknown, parentPath?: string): ", a.names.ValidationError(), "[] {")
	if u.IsDiscriminated() {
		a.discriminatedBody(s, u, members)
	} else {
		s.P("const errors: ", a.names.ValidationError(), "[] = [];")
		if len(members) > 0 {
			s.P("const candidates = [")
			for _, t := range members {
				s.P(a.names.Validator(t.Name), ",")
			}
			s.P("];")
			s.P("for (const candidate of candidates) {")
			s.P("const memberErrors = candidate(value, parentPath);")
			s.P("if (memberErrors.length === 0) {")
			s.P("return [];")
			s.P("}")
			s.P("errors.push(...memberErrors);")
			s.P("}")
		}
		s.P("return errors;")
	}
	s.P("}")
	return s
}

func (a *assembler) discriminatedBody(s *genkit.Snippet, u *ir.Union, members []*ir.Type) {
	s.P("if (!", a.usage.Use(HelperIsRecord), "(value)) {")
	s.P("return [{ code: ", genkit.Quote(string(a.usage.Report(CodeType))),
		", title: `", rootTitle, " must be an object`, path: ", rootPath, " }];")
	s.P("}")
	s.P("const path = ", a.usage.Use(HelperJoinPath), "(parentPath, ", genkit.Quote(u.Discriminator), ");")
	s.P("switch (value[", genkit.Quote(u.Discriminator), "]) {")
	var literals []string
	for _, t := range members {
		literal, ok := discriminatorValue(t, u.Discriminator)
		if !ok {
			a.diags.Warningf(CodeMissingDiscriminator, u.Pos,
				"%s: member %s has no constant %q property, skipped", u.Name, t.Name, u.Discriminator)
			continue
		}
		literals = append(literals, literal)
		s.P("case ", genkit.Quote(literal), ":")
		s.P("return ", a.names.Validator(t.Name), "(value, parentPath);")
	}
	s.P("default:")
	s.P("return [{ code: ", genkit.Quote(string(a.usage.Report(CodeStringEnum))),
		", title: `${path} must be one of: ", templateText(strings.Join(literals, ", ")), "`, path }];")
	s.P("}")
}

// unionMembers resolves the member types of u, reporting members that are
// not types.
func (a *assembler) unionMembers(u *ir.Union) []*ir.Type {
	for _, name := range u.Members {
		if a.svc.Type(name) == nil {
			a.diags.Warningf(CodeUnsupportedUnionMember, u.Pos,
				"%s: member %s is a %s, only types are supported, skipped", u.Name, name, a.svc.Classify(name))
		}
	}
	return a.svc.UnionMembers(u)
}

// discriminatorValue returns the constant t declares for the discriminator.
func discriminatorValue(t *ir.Type, discriminator string) (string, bool) {
	p := t.Property(discriminator)
	if p == nil || !p.IsConstant() {
		return "", false
	}
	return *p.Constant, true
}

// templateText escapes s for use inside a template literal.
func templateText(s string) string {
	return strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${", "\n", "\\n", "\r", "\\r").Replace(s)
}
