package genkit

import "context"

// Tool is the interface that code generation tools must implement.
// It provides a unified way to run code generators.
type Tool interface {
	// Name returns the tool name (e.g., "guardgen").
	Name() string

	// Run processes all loaded services and generates code.
	// It should handle logging internally.
	Run(ctx context.Context, gen *Generator, log *Logger) error
}

// ValidatableTool is a Tool that can report problems without generating.
type ValidatableTool interface {
	Tool

	// Validate returns the diagnostics Run would report.
	Validate(ctx context.Context, gen *Generator, log *Logger) []Diagnostic
}
