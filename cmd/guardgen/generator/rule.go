package generator

import (
	"strconv"

	"github.com/tlipoca9/guardgen/ir"
)

// Target is the runtime shape a rule inspects.
type Target int

const (
	TargetNone Target = iota
	TargetString
	TargetNumber
	TargetArray
)

func (t Target) String() string {
	switch t {
	case TargetString:
		return "string"
	case TargetNumber:
		return "number"
	case TargetArray:
		return "array"
	default:
		return "untyped"
	}
}

// Rule compiles one kind of validation rule into a guard clause.
type Rule interface {
	// Kind returns the rule kind this compiler handles.
	Kind() ir.RuleKind

	// Code returns the error code reported when the rule is broken.
	Code() ErrorCode

	// Target returns the shape of value the rule inspects.
	Target() Target

	// Compile returns the guard for one rule instance.
	Compile(ctx *CompileContext) Guard
}

// CompileContext provides context for compiling a rule.
type CompileContext struct {
	// Rule is the rule instance.
	Rule ir.ValidationRule

	// Value is the expression holding the checked value, already narrowed
	// to the rule's target shape.
	Value string

	// Patterns hoists regular expressions.
	Patterns *PatternTable
}

// Guard is a compiled rule.
type Guard struct {
	// Violation is a boolean expression, true when the value breaks the rule.
	Violation string

	// Code is the reported error code.
	Code ErrorCode

	// Title is the error message. It may contain the path placeholder.
	Title string

	// Helpers are the shared routines Violation calls.
	Helpers []Helper
}

// RuleFactory creates a rule instance.
type RuleFactory func() Rule

// baseRule implements the descriptive half of Rule.
type baseRule struct {
	kind   ir.RuleKind
	code   ErrorCode
	target Target
}

func (r baseRule) Kind() ir.RuleKind { return r.kind }
func (r baseRule) Code() ErrorCode   { return r.code }
func (r baseRule) Target() Target    { return r.target }

func (r baseRule) guard(violation, title string, helpers ...Helper) Guard {
	return Guard{Violation: violation, Code: r.code, Title: title, Helpers: helpers}
}

// formatNumber renders v the way it is written in TypeScript source.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
