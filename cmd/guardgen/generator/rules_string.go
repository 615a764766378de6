package generator

import (
	"fmt"
	"strings"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

func init() {
	DefaultRegistry.Register(ir.RuleStringEnum, func() Rule {
		return &StringEnumRule{baseRule{ir.RuleStringEnum, CodeStringEnum, TargetString}}
	})
	DefaultRegistry.Register(ir.RuleStringMaxLength, func() Rule {
		return &StringMaxLengthRule{baseRule{ir.RuleStringMaxLength, CodeStringMaxLength, TargetString}}
	})
	DefaultRegistry.Register(ir.RuleStringMinLength, func() Rule {
		return &StringMinLengthRule{baseRule{ir.RuleStringMinLength, CodeStringMinLength, TargetString}}
	})
	DefaultRegistry.Register(ir.RuleStringPattern, func() Rule {
		return &StringPatternRule{baseRule{ir.RuleStringPattern, CodeStringPattern, TargetString}}
	})
}

// StringEnumRule restricts a string to a set of literals.
type StringEnumRule struct{ baseRule }

func (r *StringEnumRule) Compile(ctx *CompileContext) Guard {
	return r.guard(
		fmt.Sprintf("!%s.includes(%s)", literalArray(ctx.Rule.Values), ctx.Value),
		pathPlaceholder+" must be one of: "+strings.Join(ctx.Rule.Values, ", "),
	)
}

// StringMaxLengthRule bounds the length of a string from above.
type StringMaxLengthRule struct{ baseRule }

func (r *StringMaxLengthRule) Compile(ctx *CompileContext) Guard {
	n := formatNumber(ctx.Rule.Value)
	return r.guard(
		fmt.Sprintf("%s.length > %s", ctx.Value, n),
		fmt.Sprintf("%s must be at most %s characters long", pathPlaceholder, n),
	)
}

// StringMinLengthRule bounds the length of a string from below.
type StringMinLengthRule struct{ baseRule }

func (r *StringMinLengthRule) Compile(ctx *CompileContext) Guard {
	n := formatNumber(ctx.Rule.Value)
	return r.guard(
		fmt.Sprintf("%s.length < %s", ctx.Value, n),
		fmt.Sprintf("%s must be at least %s characters long", pathPlaceholder, n),
	)
}

// StringPatternRule requires a string to match a regular expression.
type StringPatternRule struct{ baseRule }

func (r *StringPatternRule) Compile(ctx *CompileContext) Guard {
	return r.guard(
		fmt.Sprintf("!%s.test(%s)", ctx.Patterns.Name(ctx.Rule.Pattern), ctx.Value),
		pathPlaceholder+" must match the pattern "+ctx.Rule.Pattern,
	)
}

// literalArray renders values as an array literal of strings.
func literalArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = genkit.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
