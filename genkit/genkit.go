// Package genkit provides a framework for building TypeScript code generators
// driven by the guardgen service model.
//
// Key design principles:
//   - Library-first: generators are plain Go values implementing Tool
//   - GeneratedFile abstraction: P(...) printing with automatic import management
//   - Deterministic output: imports are sorted and indentation is normalised
//
// Basic usage:
//
//	gen := genkit.New()
//	if err := gen.Load("./api/petstore.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	for _, svc := range gen.Services {
//	    g := gen.NewGeneratedFile(filepath.Join("out", "validators.ts"), "./validators")
//	    g.P("export const service = ", genkit.Quote(svc.Name), ";")
//	}
//	if err := gen.Write(); err != nil {
//	    log.Fatal(err)
//	}
package genkit

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/multierr"

	"github.com/tlipoca9/guardgen/ir"
)

// Generator is the main entry point for code generation.
type Generator struct {
	// Services are the loaded services, in load order.
	Services []*ir.Service

	generatedFiles []*GeneratedFile
	opts           Options
}

// Options configures the generator.
type Options struct {
	// Config is the project configuration. Nil means DefaultConfig.
	Config *Config

	// SkipCheck disables ir.Check on load.
	SkipCheck bool
}

// New creates a new Generator.
func New(opts ...Options) *Generator {
	g := &Generator{}
	if len(opts) > 0 {
		g.opts = opts[0]
	}
	if g.opts.Config == nil {
		g.opts.Config = DefaultConfig()
	}
	return g
}

// Config returns the effective configuration.
func (g *Generator) Config() *Config { return g.opts.Config }

// Load loads IR documents.
// Arguments follow the Go toolchain's conventions:
//   - "api/petstore.yaml" - a single document
//   - "api"               - every document directly inside api
//   - "api/..."           - every document below api
func (g *Generator) Load(patterns ...string) error {
	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no IR documents match %v", patterns)
	}

	var errs error
	for _, file := range files {
		svc, err := ir.LoadFile(file)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !g.opts.SkipCheck {
			if err := ir.Check(svc); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
				continue
			}
		}
		g.Services = append(g.Services, svc)
	}
	return errs
}

// Add registers services that were built in memory.
func (g *Generator) Add(services ...*ir.Service) {
	g.Services = append(g.Services, services...)
}

func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		recursive := false
		if p == "..." || strings.HasSuffix(p, "/...") {
			recursive = true
			p = strings.TrimSuffix(strings.TrimSuffix(p, "..."), "/")
			if p == "" {
				p = "."
			}
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name != p && !recursive {
					return fs.SkipDir
				}
				return nil
			}
			if _, ok := ir.FormatOf(name); ok {
				files = append(files, name)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	return files, nil
}

// NewGeneratedFile creates a new file to be generated.
// module is the import specifier other files use to reach this one.
func (g *Generator) NewGeneratedFile(filename string, module TSModule) *GeneratedFile {
	gf := &GeneratedFile{
		filename:      filename,
		module:        module,
		buf:           new(bytes.Buffer),
		imports:       make(map[TSModule]string),
		usedAliases:   make(map[string]TSModule),
		manualImports: make(map[TSModule]string),
	}
	g.generatedFiles = append(g.generatedFiles, gf)
	return gf
}

// Write writes all generated files to disk.
// It keeps going after a failure and returns every error.
func (g *Generator) Write() error {
	var errs error
	for _, gf := range g.generatedFiles {
		if gf.skip {
			continue
		}
		content, err := gf.Content()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("generate %s: %w", gf.filename, err))
			continue
		}
		dir := filepath.Dir(gf.filename)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("create dir %s: %w", dir, err))
			continue
		}
		if err := os.WriteFile(gf.filename, content, 0o644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("write %s: %w", gf.filename, err))
		}
	}
	return errs
}

// DryRun returns generated content without writing files.
func (g *Generator) DryRun() (map[string][]byte, error) {
	result := make(map[string][]byte)
	for _, gf := range g.generatedFiles {
		if gf.skip {
			continue
		}
		content, err := gf.Content()
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", gf.filename, err)
		}
		result[gf.filename] = content
	}
	return result, nil
}

// GeneratedFile represents a file to be generated.
type GeneratedFile struct {
	filename      string
	module        TSModule
	buf           *bytes.Buffer
	imports       map[TSModule]string
	usedAliases   map[string]TSModule
	manualImports map[TSModule]string
	skip          bool
}

// TSPrintable is implemented by types that can print themselves to a GeneratedFile.
type TSPrintable interface {
	PrintTo(g *GeneratedFile)
}

// Filename returns the path the file is written to.
func (g *GeneratedFile) Filename() string { return g.filename }

// P prints a line to the generated file.
// Arguments are concatenated without spaces. Use TSIdent for automatic import handling.
func (g *GeneratedFile) P(v ...any) {
	for _, x := range v {
		g.print(x)
	}
	g.buf.WriteByte('\n')
}

func (g *GeneratedFile) print(v any) {
	switch v := v.(type) {
	case string:
		g.buf.WriteString(v)
	case TSIdent:
		g.buf.WriteString(g.QualifiedTSIdent(v))
	case *TSIdent:
		g.buf.WriteString(g.QualifiedTSIdent(*v))
	case TSPrintable:
		v.PrintTo(g)
	default:
		fmt.Fprint(g.buf, v)
	}
}

// QualifiedTSIdent returns the identifier as seen from this file,
// importing its module if needed.
func (g *GeneratedFile) QualifiedTSIdent(ident TSIdent) string {
	if ident.Module == g.module || ident.Module == "" {
		return ident.Name
	}
	return g.alias(ident.Module) + "." + ident.Name
}

// Import explicitly imports a module and returns its local alias.
func (g *GeneratedFile) Import(module TSModule) string {
	return g.alias(module)
}

// ImportAs explicitly imports a module under a custom alias.
func (g *GeneratedFile) ImportAs(module TSModule, alias string) string {
	g.manualImports[module] = alias
	return g.alias(module)
}

func (g *GeneratedFile) alias(module TSModule) string {
	if name, ok := g.imports[module]; ok {
		return name
	}
	if name, ok := g.manualImports[module]; ok {
		g.imports[module] = name
		g.usedAliases[name] = module
		return name
	}

	base := module.BaseName()
	name := base
	for i := 2; ; i++ {
		if existing, ok := g.usedAliases[name]; !ok || existing == module {
			break
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
	g.imports[module] = name
	g.usedAliases[name] = module
	return name
}

// Skip marks this file to be skipped.
func (g *GeneratedFile) Skip() { g.skip = true }

// Unskip reverses Skip.
func (g *GeneratedFile) Unskip() { g.skip = false }

// Skipped reports whether the file is skipped.
func (g *GeneratedFile) Skipped() bool { return g.skip }

// Write implements io.Writer.
func (g *GeneratedFile) Write(p []byte) (int, error) { return g.buf.Write(p) }

// Content returns the formatted content.
// The import block is inserted after the leading comment lines.
func (g *GeneratedFile) Content() ([]byte, error) {
	var importBuf bytes.Buffer
	if len(g.imports) > 0 {
		modules := make([]TSModule, 0, len(g.imports))
		for m := range g.imports {
			modules = append(modules, m)
		}
		sort.Slice(modules, func(i, j int) bool { return modules[i] < modules[j] })
		for _, m := range modules {
			fmt.Fprintf(&importBuf, "import * as %s from %s;\n", g.imports[m], Quote(string(m)))
		}
	}

	lines := strings.Split(g.buf.String(), "\n")
	var result bytes.Buffer
	inserted := importBuf.Len() == 0
	for i, line := range lines {
		if !inserted && !strings.HasPrefix(strings.TrimSpace(line), "//") {
			result.WriteByte('\n')
			result.Write(importBuf.Bytes())
			inserted = true
		}
		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteByte('\n')
		}
	}
	if !inserted {
		result.WriteString("\n\n")
		result.Write(importBuf.Bytes())
	}

	formatted, err := FormatTS(result.Bytes())
	if err != nil {
		return result.Bytes(), fmt.Errorf("format: %w\n%s", err, result.Bytes())
	}
	return formatted, nil
}

// TSModule is a module specifier such as "./types".
type TSModule string

// Ident returns a TSIdent for the given name exported by this module.
func (m TSModule) Ident(name string) TSIdent {
	return TSIdent{Module: m, Name: name}
}

// BaseName is the default import alias of the module.
func (m TSModule) BaseName() string {
	base := path.Base(string(m))
	base = strings.TrimSuffix(base, path.Ext(base))
	var b strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "module"
	}
	return b.String()
}

// TSIdent is an exported TypeScript identifier with its module.
type TSIdent struct {
	Module TSModule
	Name   string
}

func (id TSIdent) String() string {
	if id.Module == "" {
		return id.Name
	}
	return string(id.Module) + "#" + id.Name
}

// TSDoc represents a JSDoc comment.
type TSDoc string

func (d TSDoc) PrintTo(g *GeneratedFile) {
	if d == "" {
		return
	}
	g.buf.WriteString("/**\n")
	for _, line := range strings.Split(strings.TrimRight(string(d), "\n"), "\n") {
		g.buf.WriteString(" * ")
		g.buf.WriteString(strings.ReplaceAll(line, "*/", "*\\/"))
		g.buf.WriteByte('\n')
	}
	g.buf.WriteString(" */\n")
}

// RawString prints its content unchanged.
type RawString string

func (r RawString) PrintTo(g *GeneratedFile) {
	g.buf.WriteString(string(r))
}

// Quote returns s as a double-quoted TypeScript string literal.
func Quote(s string) string {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return string(b)
}

// OutputPath returns the full output path for a generated file.
func OutputPath(dir, filename string) string {
	return filepath.Join(dir, filename)
}
