package genkit

import (
	"fmt"

	"github.com/tlipoca9/guardgen/ir"
)

// DiagnosticSeverity represents the severity of a diagnostic.
type DiagnosticSeverity string

const (
	DiagnosticError   DiagnosticSeverity = "error"
	DiagnosticWarning DiagnosticSeverity = "warning"
	DiagnosticInfo    DiagnosticSeverity = "info"
)

// Diagnostic represents a single error or warning with source location.
type Diagnostic struct {
	Severity DiagnosticSeverity `json:"severity"`
	Message  string             `json:"message"`
	File     string             `json:"file,omitempty"`
	Line     int                `json:"line,omitempty"`
	Column   int                `json:"column,omitempty"`
	Tool     string             `json:"tool"`
	Code     string             `json:"code,omitempty"` // e.g., "W001"
}

// NewDiagnostic creates a new diagnostic at an IR position.
func NewDiagnostic(severity DiagnosticSeverity, tool, code, message string, pos ir.Position) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Message:  message,
		File:     pos.File,
		Line:     pos.Line,
		Column:   pos.Column,
		Tool:     tool,
		Code:     code,
	}
}

// DryRunResult contains the result of a dry-run execution.
type DryRunResult struct {
	Success     bool              `json:"success"`
	Files       map[string]string `json:"files,omitempty"` // filename -> content preview
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
	Stats       DryRunStats       `json:"stats"`
}

// DryRunStats contains statistics from a dry-run execution.
type DryRunStats struct {
	ServicesLoaded int `json:"servicesLoaded"`
	FilesGenerated int `json:"filesGenerated"`
	ErrorCount     int `json:"errorCount"`
	WarningCount   int `json:"warningCount"`
}

// AddDiagnostic adds a diagnostic to the result and updates stats.
func (r *DryRunResult) AddDiagnostic(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	switch d.Severity {
	case DiagnosticError:
		r.Stats.ErrorCount++
		r.Success = false
	case DiagnosticWarning:
		r.Stats.WarningCount++
	}
}

// AddError is a convenience method to add an error diagnostic.
func (r *DryRunResult) AddError(tool, code, message string, pos ir.Position) {
	r.AddDiagnostic(NewDiagnostic(DiagnosticError, tool, code, message, pos))
}

// AddWarning is a convenience method to add a warning diagnostic.
func (r *DryRunResult) AddWarning(tool, code, message string, pos ir.Position) {
	r.AddDiagnostic(NewDiagnostic(DiagnosticWarning, tool, code, message, pos))
}

// DiagnosticCollector provides a fluent API for collecting diagnostics.
type DiagnosticCollector struct {
	tool        string
	diagnostics []Diagnostic
}

// NewDiagnosticCollector creates a new collector for the given tool.
func NewDiagnosticCollector(tool string) *DiagnosticCollector {
	return &DiagnosticCollector{tool: tool}
}

// Error adds an error diagnostic.
func (c *DiagnosticCollector) Error(code, message string, pos ir.Position) *DiagnosticCollector {
	c.diagnostics = append(c.diagnostics, NewDiagnostic(DiagnosticError, c.tool, code, message, pos))
	return c
}

// Errorf adds an error diagnostic with formatted message.
func (c *DiagnosticCollector) Errorf(code string, pos ir.Position, format string, args ...any) *DiagnosticCollector {
	return c.Error(code, fmt.Sprintf(format, args...), pos)
}

// Warning adds a warning diagnostic.
func (c *DiagnosticCollector) Warning(code, message string, pos ir.Position) *DiagnosticCollector {
	c.diagnostics = append(c.diagnostics, NewDiagnostic(DiagnosticWarning, c.tool, code, message, pos))
	return c
}

// Warningf adds a warning diagnostic with formatted message.
func (c *DiagnosticCollector) Warningf(code string, pos ir.Position, format string, args ...any) *DiagnosticCollector {
	return c.Warning(code, fmt.Sprintf(format, args...), pos)
}

// Collect returns all collected diagnostics.
func (c *DiagnosticCollector) Collect() []Diagnostic {
	return c.diagnostics
}

// HasErrors returns true if any error diagnostics were collected.
func (c *DiagnosticCollector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == DiagnosticError {
			return true
		}
	}
	return false
}

// Merge adds diagnostics from another collector.
func (c *DiagnosticCollector) Merge(other *DiagnosticCollector) *DiagnosticCollector {
	if other != nil {
		c.diagnostics = append(c.diagnostics, other.diagnostics...)
	}
	return c
}
