package generator

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

// serviceWriter prints validated wrappers. A wrapper method validates its
// parameters, answers through a response builder when they are invalid,
// and otherwise calls the delegate with sanitized parameters and returns
// its sanitized result. Errors thrown past validation go to the same
// builder, so a wrapped call always settles with a value.
type serviceWriter struct {
	plan  *plan
	types *typeWriter
}

// builderKey is the response builder a method answers through.
func builderKey(m *ir.Method) string {
	if m.Returns == nil {
		return "void"
	}
	if m.Returns.Array {
		return m.Returns.Type + "[]"
	}
	return m.Returns.Type
}

func (w *serviceWriter) builders(g genkit.Printer, iface *ir.Interface) {
	names := w.plan.names
	keys := sets.New[string]()
	returns := make(map[string]*ir.Method)
	for _, m := range iface.Methods {
		key := builderKey(m)
		if !keys.Has(key) {
			keys.Insert(key)
			returns[key] = m
		}
	}

	g.P("export interface ", names.ResponseBuilders(iface.Name), " {")
	for _, key := range sets.List(keys) {
		typ := w.types.returnType(returns[key])
		line := append([]any{genkit.Quote(key), ": (errors: ", names.ValidationError(), "[], result?: "}, typ...)
		line = append(line, ", error?: unknown) => ")
		line = append(line, typ...)
		g.P(append(line, ";")...)
	}
	g.P("}")
}

func (w *serviceWriter) wrapper(g genkit.Printer, iface *ir.Interface) {
	names := w.plan.names
	g.P("export class ", names.Wrapper(iface.Name), " implements ", names.Interface(iface.Name), " {")
	g.P("constructor(")
	g.P("private readonly delegate: ", names.Interface(iface.Name), ",")
	g.P("private readonly responseBuilders: ", names.ResponseBuilders(iface.Name), ",")
	g.P(") {}")
	for _, m := range iface.Methods {
		g.P()
		w.method(g, iface, m)
	}
	g.P("}")
}

func (w *serviceWriter) method(g genkit.Printer, iface *ir.Interface, m *ir.Method) {
	names := w.plan.names
	ps := w.plan.paramsFor(iface, m)
	builder := "this.responseBuilders[" + genkit.Quote(builderKey(m)) + "]"

	sig := append([]any{"async ", m.Name, "("}, w.types.paramsDecl(w.plan, iface, m)...)
	sig = append(sig, "): Promise<")
	sig = append(sig, w.types.returnType(m)...)
	g.P(append(sig, "> {")...)

	var args []any
	if ps == nil {
		g.P("const errors: ", names.ValidationError(), "[] = [];")
	} else {
		g.P("const errors = ", names.ParamsValidator(iface.Name, m.Name), "(params);")
		g.P("if (errors.length > 0) {")
		if m.Returns == nil {
			g.P(builder, "(errors);")
			g.P("return;")
		} else {
			g.P("const response = ", builder, "(errors);")
			g.P(append([]any{"return "}, w.sanitizedReturn(m.Returns, "response")...)...)
		}
		g.P("}")
		sanitize := names.ParamsSanitizer(iface.Name, m.Name)
		if ir.AllOptional(ps.members) {
			args = []any{"params === undefined ? params : ", sanitize, "(params)"}
		} else {
			args = []any{sanitize, "(params)"}
		}
	}

	call := append([]any{"this.delegate.", m.Name, "("}, args...)
	call = append(call, ");")
	g.P("try {")
	if m.Returns == nil {
		g.P(append([]any{"await "}, call...)...)
	} else {
		g.P(append([]any{"const result = await "}, call...)...)
		g.P(append([]any{"return "}, w.sanitizedReturn(m.Returns, "result")...)...)
	}
	g.P("} catch (error) {")
	if m.Returns == nil {
		g.P(builder, "(errors, undefined, error);")
	} else {
		g.P("return ", builder, "(errors, undefined, error);")
	}
	g.P("}")
	g.P("}")
}

// sanitizedReturn is the statement tail returning expr sanitized. Values
// of types and unions are rebuilt, everything else passes through.
func (w *serviceWriter) sanitizedReturn(ref *ir.TypeRef, expr string) []any {
	switch w.plan.svc.Classify(ref.Type) {
	case ir.RefType, ir.RefUnion:
	default:
		return []any{expr, ";"}
	}
	sanitize := w.plan.names.Sanitizer(ref.Type)
	if ref.Array {
		return []any{"Array.isArray(", expr, ") ? ", expr, ".map((item) => ", sanitize, "(item)) : ", expr, ";"}
	}
	return []any{sanitize, "(", expr, ");"}
}
