// Package generator synthesizes TypeScript validators, type guards,
// sanitizers, date converters and validated service wrappers from a
// guardgen service model.
package generator

// ToolName is the name of this tool.
const ToolName = "guardgen"

// Header is the first line of every generated file.
const Header = "// Code generated by guardgen. DO NOT EDIT."

const tracerName = "github.com/tlipoca9/guardgen/cmd/guardgen/generator"

// Diagnostic codes reported while generating.
const (
	// CodeRuleNotApplicable: a rule does not fit the member it annotates.
	CodeRuleNotApplicable = "W001"
	// CodeUnsupportedUnionMember: a union member is not a type.
	CodeUnsupportedUnionMember = "W002"
	// CodeUnresolvedReference: a type name resolves to nothing.
	CodeUnresolvedReference = "W003"
	// CodeMissingDiscriminator: a member type lacks a constant discriminator.
	CodeMissingDiscriminator = "W004"
	// CodeUnknownRule: a rule kind has no registered compiler.
	CodeUnknownRule = "W005"
)
