package generator

import (
	"fmt"

	"github.com/tlipoca9/guardgen/ir"
)

func init() {
	DefaultRegistry.Register(ir.RuleArrayMaxItems, func() Rule {
		return &ArrayMaxItemsRule{baseRule{ir.RuleArrayMaxItems, CodeArrayMaxItems, TargetArray}}
	})
	DefaultRegistry.Register(ir.RuleArrayMinItems, func() Rule {
		return &ArrayMinItemsRule{baseRule{ir.RuleArrayMinItems, CodeArrayMinItems, TargetArray}}
	})
	DefaultRegistry.Register(ir.RuleArrayUniqueItems, func() Rule {
		return &ArrayUniqueItemsRule{baseRule{ir.RuleArrayUniqueItems, CodeArrayUniqueItems, TargetArray}}
	})
}

// ArrayMaxItemsRule bounds the length of an array from above.
type ArrayMaxItemsRule struct{ baseRule }

func (r *ArrayMaxItemsRule) Compile(ctx *CompileContext) Guard {
	n := formatNumber(ctx.Rule.Value)
	return r.guard(
		fmt.Sprintf("%s.length > %s", ctx.Value, n),
		fmt.Sprintf("%s must contain at most %s items", pathPlaceholder, n),
	)
}

// ArrayMinItemsRule bounds the length of an array from below.
type ArrayMinItemsRule struct{ baseRule }

func (r *ArrayMinItemsRule) Compile(ctx *CompileContext) Guard {
	n := formatNumber(ctx.Rule.Value)
	return r.guard(
		fmt.Sprintf("%s.length < %s", ctx.Value, n),
		fmt.Sprintf("%s must contain at least %s items", pathPlaceholder, n),
	)
}

// ArrayUniqueItemsRule forbids repeated elements.
type ArrayUniqueItemsRule struct{ baseRule }

func (r *ArrayUniqueItemsRule) Compile(ctx *CompileContext) Guard {
	return r.guard(
		fmt.Sprintf("%s(%s)", HelperHasDuplicateItems.Name(), ctx.Value),
		pathPlaceholder+" must not contain duplicate items",
		HelperHasDuplicateItems,
	)
}
