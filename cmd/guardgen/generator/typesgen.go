package generator

import (
	"strings"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

// typeWriter prints the declarations of types.ts.
type typeWriter struct {
	svc   *ir.Service
	names Names
}

// tsType renders the TypeScript type of a reference. Unresolved names
// become unknown.
func (w *typeWriter) tsType(ref ir.TypeRef) []any {
	var elem []any
	switch k := ref.Primitive(); k {
	case ir.PrimitiveString, ir.PrimitiveBoolean:
		elem = []any{string(k)}
	case ir.PrimitiveNumber, ir.PrimitiveInteger:
		elem = []any{"number"}
	case ir.PrimitiveDate, ir.PrimitiveDateTime:
		elem = []any{"string | Date"}
	case ir.PrimitiveUntyped:
		elem = []any{"unknown"}
	default:
		if w.svc.Classify(ref.Type) == ir.RefUnknown {
			elem = []any{"unknown"}
		} else {
			elem = []any{w.names.Type(ref.Type)}
		}
	}
	if !ref.Array {
		return elem
	}
	if s, ok := elem[0].(string); ok && strings.Contains(s, " ") {
		return []any{"(", s, ")[]"}
	}
	return append(elem, "[]")
}

func (w *typeWriter) memberType(m *ir.Member) []any {
	if m.IsConstant() {
		if m.Array {
			return []any{genkit.Quote(*m.Constant), "[]"}
		}
		return []any{genkit.Quote(*m.Constant)}
	}
	return w.tsType(m.TypeRef)
}

// returnType renders the resolved type of a method.
func (w *typeWriter) returnType(m *ir.Method) []any {
	if m.Returns == nil {
		return []any{"void"}
	}
	return w.tsType(*m.Returns)
}

func (w *typeWriter) members(g genkit.Printer, members []*ir.Member) {
	for _, m := range members {
		optional := ""
		if !m.Required {
			optional = "?"
		}
		line := append([]any{genkit.TSDoc(m.Doc), propertyKey(m.Name), optional, ": "}, w.memberType(m)...)
		g.P(append(line, ";")...)
	}
}

func (w *typeWriter) object(g genkit.Printer, t *ir.Type) {
	g.P(genkit.TSDoc(t.Doc), "export interface ", t.Name, " {")
	w.members(g, t.Properties)
	g.P("}")
}

func (w *typeWriter) enum(g genkit.Printer, e *ir.Enum) {
	if len(e.Values) == 0 {
		g.P(genkit.TSDoc(e.Doc), "export type ", e.Name, " = never;")
	} else {
		quoted := make([]string, len(e.Values))
		for i, v := range e.Values {
			quoted[i] = genkit.Quote(v)
		}
		g.P(genkit.TSDoc(e.Doc), "export type ", e.Name, " = ", strings.Join(quoted, " | "), ";")
	}
	g.P()
	g.P("export const ", w.names.EnumValues(e.Name), " = ", literalArray(e.Values), " as const;")
}

func (w *typeWriter) union(g genkit.Printer, u *ir.Union) {
	var parts []any
	for _, name := range u.Members {
		if len(parts) > 0 {
			parts = append(parts, " | ")
		}
		parts = append(parts, w.tsType(ir.TypeRef{Type: name})...)
	}
	if len(parts) == 0 {
		parts = []any{"never"}
	}
	line := append([]any{genkit.TSDoc(u.Doc), "export type ", u.Name, " = "}, parts...)
	g.P(append(line, ";")...)
}

func (w *typeWriter) params(g genkit.Printer, ps *paramsSet) {
	g.P("export interface ", w.names.ParamsType(ps.iface.Name, ps.method.Name), " {")
	w.members(g, ps.method.Parameters)
	g.P("}")
}

func (w *typeWriter) service(g genkit.Printer, iface *ir.Interface, p *plan) {
	g.P(genkit.TSDoc(iface.Doc), "export interface ", iface.Name, " {")
	for _, m := range iface.Methods {
		line := append([]any{genkit.TSDoc(m.Doc), m.Name, "("}, w.paramsDecl(p, iface, m)...)
		line = append(line, "): Promise<")
		line = append(line, w.returnType(m)...)
		g.P(append(line, ">;")...)
	}
	g.P("}")
}

// paramsDecl renders the parameter list of a method.
func (w *typeWriter) paramsDecl(p *plan, iface *ir.Interface, m *ir.Method) []any {
	ps := p.paramsFor(iface, m)
	if ps == nil {
		return nil
	}
	name := "params: "
	if ir.AllOptional(ps.members) {
		name = "params?: "
	}
	return []any{name, w.names.ParamsType(iface.Name, m.Name)}
}
