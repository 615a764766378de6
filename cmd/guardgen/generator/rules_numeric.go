package generator

import (
	"fmt"

	"github.com/tlipoca9/guardgen/ir"
)

func init() {
	DefaultRegistry.Register(ir.RuleNumberMultipleOf, func() Rule {
		return &MultipleOfRule{baseRule{ir.RuleNumberMultipleOf, CodeNumberMultipleOf, TargetNumber}}
	})
	DefaultRegistry.Register(ir.RuleNumberGT, func() Rule {
		return &boundRule{baseRule{ir.RuleNumberGT, CodeNumberGT, TargetNumber}, "<=", "greater than"}
	})
	DefaultRegistry.Register(ir.RuleNumberGTE, func() Rule {
		return &boundRule{baseRule{ir.RuleNumberGTE, CodeNumberGTE, TargetNumber}, "<", "greater than or equal to"}
	})
	DefaultRegistry.Register(ir.RuleNumberLT, func() Rule {
		return &boundRule{baseRule{ir.RuleNumberLT, CodeNumberLT, TargetNumber}, ">=", "less than"}
	})
	DefaultRegistry.Register(ir.RuleNumberLTE, func() Rule {
		return &boundRule{baseRule{ir.RuleNumberLTE, CodeNumberLTE, TargetNumber}, ">", "less than or equal to"}
	})
}

// MultipleOfRule requires a number to be a multiple of a divisor.
type MultipleOfRule struct{ baseRule }

func (r *MultipleOfRule) Compile(ctx *CompileContext) Guard {
	n := formatNumber(ctx.Rule.Value)
	return r.guard(
		fmt.Sprintf("!%s(%s, %s)", HelperIsMultipleOf.Name(), ctx.Value, n),
		fmt.Sprintf("%s must be a multiple of %s", pathPlaceholder, n),
		HelperIsMultipleOf,
	)
}

// boundRule compares a number against a bound.
// violates is the operator that holds when the rule is broken.
type boundRule struct {
	baseRule
	violates string
	phrase   string
}

func (r *boundRule) Compile(ctx *CompileContext) Guard {
	n := formatNumber(ctx.Rule.Value)
	return r.guard(
		fmt.Sprintf("%s %s %s", ctx.Value, r.violates, n),
		fmt.Sprintf("%s must be %s %s", pathPlaceholder, r.phrase, n),
	)
}
