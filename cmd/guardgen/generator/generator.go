package generator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

// Generator synthesizes the TypeScript files of every loaded service.
type Generator struct {
	registry *Registry
	tracer   trace.Tracer
}

var _ genkit.ValidatableTool = (*Generator)(nil)

// New creates a Generator using DefaultRegistry.
func New() *Generator {
	return &Generator{
		registry: DefaultRegistry,
		tracer:   otel.Tracer(tracerName),
	}
}

// WithRegistry replaces the rule registry.
func (sg *Generator) WithRegistry(r *Registry) *Generator {
	sg.registry = r
	return sg
}

// WithTracer replaces the tracer the passes report spans to.
func (sg *Generator) WithTracer(t trace.Tracer) *Generator {
	sg.tracer = t
	return sg
}

// Name returns the tool name.
func (sg *Generator) Name() string {
	return ToolName
}

// Run generates the files of every service in gen.
// Diagnostics are logged and do not fail the run.
func (sg *Generator) Run(ctx context.Context, gen *genkit.Generator, log *genkit.Logger) error {
	var errs error
	for _, svc := range gen.Services {
		log.Find("Found %v type(s), %v enum(s), %v union(s), %v interface(s) in %v",
			len(svc.Types), len(svc.Enums), len(svc.Unions), len(svc.Interfaces), svc.Name)

		diags := genkit.NewDiagnosticCollector(ToolName)
		files, err := sg.ProcessService(ctx, gen, svc, diags)
		for _, d := range diags.Collect() {
			log.Diagnostic(d)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("process %s: %w", svc.Name, err))
			continue
		}
		for _, f := range files {
			log.Item("%v", f.Filename())
		}
	}
	return errs
}

// Validate returns the diagnostics generation would report, without
// creating any file.
func (sg *Generator) Validate(ctx context.Context, gen *genkit.Generator, _ *genkit.Logger) []genkit.Diagnostic {
	diags := genkit.NewDiagnosticCollector(ToolName)
	for _, svc := range gen.Services {
		p := sg.plan(ctx, svc, gen.Config())
		sg.discover(ctx, p, diags)
	}
	return diags.Collect()
}

// ProcessService runs the naming, discovery and emission passes over svc
// and returns the files it registered with gen.
func (sg *Generator) ProcessService(
	ctx context.Context,
	gen *genkit.Generator,
	svc *ir.Service,
	diags *genkit.DiagnosticCollector,
) ([]*genkit.GeneratedFile, error) {
	ctx, span := sg.tracer.Start(ctx, "guardgen.ProcessService",
		trace.WithAttributes(attribute.String("service", svc.Name)))
	defer span.End()

	cfg := gen.Config()
	if err := cfg.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	p := sg.plan(ctx, svc, cfg)
	d := sg.discover(ctx, p, diags)
	files := sg.emit(ctx, gen, p, d)
	span.SetAttributes(
		attribute.Int("files", len(files)),
		attribute.Int("diagnostics", len(diags.Collect())),
	)
	return files, nil
}

func (sg *Generator) plan(ctx context.Context, svc *ir.Service, cfg *genkit.Config) *plan {
	_, span := sg.tracer.Start(ctx, "guardgen.plan")
	defer span.End()

	p := newPlan(svc, cfg)
	span.SetAttributes(
		attribute.Int("types", len(p.types)),
		attribute.Int("params", len(p.params)),
		attribute.Int("dates", p.dates.Len()),
	)
	return p
}

// discovery holds the assembled validators and what they use.
type discovery struct {
	usage    Usage
	patterns *PatternTable
	decls    []*genkit.Snippet
}

func (sg *Generator) discover(ctx context.Context, p *plan, diags *genkit.DiagnosticCollector) *discovery {
	_, span := sg.tracer.Start(ctx, "guardgen.discover")
	defer span.End()

	a := newAssembler(p, sg.registry, diags)
	d := &discovery{usage: NewUsage(), patterns: a.patterns}
	for _, t := range p.types {
		d.decls = append(d.decls, a.typeValidator(t))
	}
	for _, e := range p.enums {
		d.decls = append(d.decls, a.enumValidator(e))
	}
	for _, u := range p.unions {
		d.decls = append(d.decls, a.unionValidator(u))
	}
	for _, ps := range p.params {
		d.decls = append(d.decls, a.paramsValidator(ps))
	}
	d.usage.Merge(a.usage)

	span.SetAttributes(
		attribute.Int("helpers", d.usage.Helpers.Len()),
		attribute.Int("codes", d.usage.Codes.Len()),
		attribute.Int("patterns", d.patterns.Len()),
	)
	return d
}

func (sg *Generator) emit(ctx context.Context, gen *genkit.Generator, p *plan, d *discovery) []*genkit.GeneratedFile {
	_, span := sg.tracer.Start(ctx, "guardgen.emit")
	defer span.End()

	files := p.cfg.Files
	newFile := func(filename string) *genkit.GeneratedFile {
		g := gen.NewGeneratedFile(p.cfg.OutputPath(p.svc.Name, filename), genkit.Module(filename))
		g.P(Header)
		return g
	}

	var out []*genkit.GeneratedFile
	if p.cfg.Emit.Types {
		g := newFile(files.Types)
		emitTypes(g, p)
		out = append(out, g)
	}

	g := newFile(files.Validators)
	emitValidators(g, d)
	out = append(out, g)

	g = newFile(files.Sanitizers)
	emitSanitizers(g, p)
	out = append(out, g)

	if p.dates.Len() > 0 {
		g = newFile(files.Dates)
		emitDates(g, p)
		out = append(out, g)
	}

	if p.cfg.Emit.Services && len(p.svc.Interfaces) > 0 {
		g = newFile(files.Services)
		emitServices(g, p)
		out = append(out, g)
	}
	return out
}

func emitTypes(g *genkit.GeneratedFile, p *plan) {
	w := &typeWriter{svc: p.svc, names: p.names}
	for _, t := range p.types {
		g.P()
		w.object(g, t)
	}
	for _, e := range p.enums {
		g.P()
		w.enum(g, e)
	}
	for _, u := range p.unions {
		g.P()
		w.union(g, u)
	}
	for _, ps := range p.params {
		g.P()
		w.params(g, ps)
	}
	for _, iface := range p.svc.Interfaces {
		g.P()
		w.service(g, iface, p)
	}
}

func emitValidators(g *genkit.GeneratedFile, d *discovery) {
	g.P()
	writeErrorTypes(g, d.usage.SortedCodes())
	writePatterns(g, d.patterns)
	writeHelpers(g, d.usage)
	for _, s := range d.decls {
		g.P()
		s.PrintTo(g)
	}
}

func emitSanitizers(g *genkit.GeneratedFile, p *plan) {
	w := &sanitizerWriter{svc: p.svc, names: p.names, strategy: p.cfg.Sanitizer.UnionStrategy}
	if len(p.types) > 0 || len(p.params) > 0 {
		g.P()
		g.P(genkit.RawString(compactSource))
	}
	for _, t := range p.types {
		g.P()
		w.typeSanitizer(g, t)
	}
	for _, u := range p.unions {
		g.P()
		w.unionSanitizer(g, u)
	}
	for _, ps := range p.params {
		g.P()
		w.paramsSanitizer(g, ps)
	}
}

func emitDates(g *genkit.GeneratedFile, p *plan) {
	w := &dateWriter{svc: p.svc, names: p.names, needs: p.dates}
	g.P()
	g.P(genkit.RawString(toDateSource))
	for _, t := range p.types {
		if p.dates.Has(t.Name) {
			g.P()
			w.converter(g, t)
		}
	}
}

func emitServices(g *genkit.GeneratedFile, p *plan) {
	w := &serviceWriter{plan: p, types: &typeWriter{svc: p.svc, names: p.names}}
	for _, iface := range p.svc.Interfaces {
		g.P()
		w.builders(g, iface)
		g.P()
		w.wrapper(g, iface)
	}
}
