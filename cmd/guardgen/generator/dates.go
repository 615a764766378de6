package generator

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

const toDateSource = `function toDate<T>(value: T): T | Date {
if (typeof value !== "string") {
return value;
}
const parsed = new Date(value);
return Number.isNaN(parsed.getTime()) ? value : parsed;
}`

// dateWriter prints converters for the types in needs. A converter copies
// its input, parses date members in place and recurses into nested types
// that need conversion themselves.
type dateWriter struct {
	svc   *ir.Service
	names Names
	needs sets.Set[string]
}

func (w *dateWriter) converter(g genkit.Printer, t *ir.Type) {
	typ := w.names.Type(t.Name)
	g.P("export function ", w.names.DateConverter(t.Name), "(value: ", typ, "): ", typ, " {")
	g.P("if (value == null || typeof value !== \"object\") {")
	g.P("return value;")
	g.P("}")
	g.P("const result = { ...value };")
	for _, m := range ir.SortedMembers(t.Properties) {
		field := propertyAccess("result", m.Name)
		var convert []any
		switch {
		case m.Primitive().IsDate():
			convert = []any{"toDate"}
		case w.needs.Has(m.Type) && w.svc.Type(m.Type) != nil:
			convert = []any{w.names.DateConverter(m.Type)}
		default:
			continue
		}
		if m.Array {
			g.P("if (Array.isArray(", field, ")) {")
			g.P(append(append([]any{field, " = ", field, ".map((item) => (item == null ? item : "}, convert...), "(item)));")...)
		} else {
			g.P("if (", field, " != null) {")
			g.P(append(append([]any{field, " = "}, convert...), "(", field, ");")...)
		}
		g.P("}")
	}
	g.P("return result;")
	g.P("}")
}
