package generator

import (
	"sort"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

const compactSource = `function compact<T extends object>(value: T): T {
for (const key of Object.keys(value) as (keyof T)[]) {
if (value[key] === undefined) {
delete value[key];
}
}
return value;
}`

// sanitizerWriter prints sanitizers. A sanitizer rebuilds its input from
// the declared members only, recursing into nested types and unions, and
// drops members left undefined.
type sanitizerWriter struct {
	svc      *ir.Service
	names    Names
	strategy genkit.UnionStrategy
}

func (w *sanitizerWriter) typeSanitizer(g genkit.Printer, t *ir.Type) {
	g.P("export function ", w.names.Sanitizer(t.Name), "(value: ", w.names.Type(t.Name), "): ", w.names.Type(t.Name), " {")
	w.object(g, t.Properties)
	g.P("}")
}

func (w *sanitizerWriter) paramsSanitizer(g genkit.Printer, ps *paramsSet) {
	typ := w.names.ParamsType(ps.iface.Name, ps.method.Name)
	g.P("export function ", w.names.ParamsSanitizer(ps.iface.Name, ps.method.Name), "(value: ", typ, "): ", typ, " {")
	w.object(g, ps.members)
	g.P("}")
}

func (w *sanitizerWriter) object(g genkit.Printer, members []*ir.Member) {
	g.P("if (value == null || typeof value !== \"object\") {")
	g.P("return value;")
	g.P("}")
	g.P("return compact({")
	for _, m := range ir.SortedMembers(members) {
		line := append([]any{propertyKey(m.Name), ": "}, w.memberValue(m, propertyAccess("value", m.Name))...)
		g.P(append(line, ",")...)
	}
	g.P("});")
}

// memberValue is the expression copying one member.
func (w *sanitizerWriter) memberValue(m *ir.Member, access string) []any {
	nested, ok := w.nestedSanitizer(m.Type)
	if !ok || m.IsConstant() {
		return []any{access}
	}
	if m.Array {
		return []any{
			"Array.isArray(", access, ") ? ", access, ".map((item) => (item == null ? item : ", nested, "(item))) : ", access,
		}
	}
	return []any{access, " == null ? ", access, " : ", nested, "(", access, ")"}
}

// nestedSanitizer returns the sanitizer of a type or union name.
func (w *sanitizerWriter) nestedSanitizer(name string) (genkit.TSIdent, bool) {
	switch w.svc.Classify(name) {
	case ir.RefType, ir.RefUnion:
		return w.names.Sanitizer(name), true
	default:
		return genkit.TSIdent{}, false
	}
}

func (w *sanitizerWriter) unionSanitizer(g genkit.Printer, u *ir.Union) {
	typ := w.names.Type(u.Name)
	members := w.svc.UnionMembers(u)

	g.P("export function ", w.names.Sanitizer(u.Name), "(value: ", typ, "): ", typ, " {")
	g.P("if (value == null || typeof value !== \"object\") {")
	g.P("return value;")
	g.P("}")
	switch {
	case u.IsDiscriminated():
		g.P("switch (", propertyAccess("value", u.Discriminator), ") {")
		for _, t := range members {
			literal, ok := discriminatorValue(t, u.Discriminator)
			if !ok {
				continue
			}
			g.P("case ", genkit.Quote(literal), ":")
			g.P("return ", w.names.Sanitizer(t.Name), "(value as ", w.names.Type(t.Name), ");")
		}
		g.P("default:")
		w.merged(g, typ, members)
		g.P("}")
	case w.strategy == genkit.UnionStrategyMerge:
		w.merged(g, typ, members)
	default:
		for _, t := range GuardOrder(members) {
			g.P("if (", w.names.Guard(t.Name), "(value)) {")
			g.P("return ", w.names.Sanitizer(t.Name), "(value);")
			g.P("}")
		}
		w.merged(g, typ, members)
	}
	g.P("}")
}

// merged keeps the members declared by any of the union's types.
func (w *sanitizerWriter) merged(g genkit.Printer, typ genkit.TSIdent, members []*ir.Type) {
	g.P("return {")
	for _, t := range members {
		g.P("...", w.names.Sanitizer(t.Name), "(value as ", w.names.Type(t.Name), "),")
	}
	g.P("} as ", typ, ";")
}

// GuardOrder orders union members for type-guard probing: most declared
// properties first, ties kept in declaration order.
func GuardOrder(members []*ir.Type) []*ir.Type {
	out := append([]*ir.Type(nil), members...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Properties) > len(out[j].Properties)
	})
	return out
}
