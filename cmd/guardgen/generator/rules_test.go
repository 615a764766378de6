package generator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tlipoca9/guardgen/cmd/guardgen/generator"
	"github.com/tlipoca9/guardgen/ir"
)

var _ = Describe("Registry", func() {
	It("registers every rule kind", func() {
		Expect(generator.DefaultRegistry.Kinds()).To(Equal(ir.RuleKinds))
	})

	It("returns nil for unknown kinds", func() {
		Expect(generator.DefaultRegistry.Get("string-color")).To(BeNil())
	})

	It("lets custom registries override a kind", func() {
		r := generator.NewRegistry()
		r.Register(ir.RuleStringMaxLength, func() generator.Rule {
			return generator.DefaultRegistry.Get(ir.RuleStringMinLength)
		})
		Expect(r.Kinds()).To(Equal([]ir.RuleKind{ir.RuleStringMaxLength}))
		Expect(r.Get(ir.RuleStringMaxLength).Code()).To(Equal(generator.CodeStringMinLength))
	})

	DescribeTable("compiled guards",
		func(rule ir.ValidationRule, target generator.Target, violation string, code generator.ErrorCode, title string) {
			r := generator.DefaultRegistry.Get(rule.Kind)
			Expect(r).NotTo(BeNil())
			Expect(r.Kind()).To(Equal(rule.Kind))
			Expect(r.Target()).To(Equal(target))
			g := r.Compile(&generator.CompileContext{Rule: rule, Value: "v", Patterns: generator.NewPatternTable()})
			Expect(g.Violation).To(Equal(violation))
			Expect(g.Code).To(Equal(code))
			Expect(g.Title).To(Equal(title))
		},
		Entry("string-enum",
			ir.ValidationRule{Kind: ir.RuleStringEnum, Values: []string{"a", "b"}}, generator.TargetString,
			`!["a", "b"].includes(v)`, generator.CodeStringEnum, "{path} must be one of: a, b"),
		Entry("string-max-length",
			ir.ValidationRule{Kind: ir.RuleStringMaxLength, Value: 3}, generator.TargetString,
			"v.length > 3", generator.CodeStringMaxLength, "{path} must be at most 3 characters long"),
		Entry("string-min-length",
			ir.ValidationRule{Kind: ir.RuleStringMinLength, Value: 1}, generator.TargetString,
			"v.length < 1", generator.CodeStringMinLength, "{path} must be at least 1 characters long"),
		Entry("string-pattern",
			ir.ValidationRule{Kind: ir.RuleStringPattern, Pattern: "^x$"}, generator.TargetString,
			"!PATTERN_1.test(v)", generator.CodeStringPattern, "{path} must match the pattern ^x$"),
		Entry("number-multiple-of",
			ir.ValidationRule{Kind: ir.RuleNumberMultipleOf, Value: 0.5}, generator.TargetNumber,
			"!isMultipleOf(v, 0.5)", generator.CodeNumberMultipleOf, "{path} must be a multiple of 0.5"),
		Entry("number-gt",
			ir.ValidationRule{Kind: ir.RuleNumberGT, Value: 1}, generator.TargetNumber,
			"v <= 1", generator.CodeNumberGT, "{path} must be greater than 1"),
		Entry("number-gte",
			ir.ValidationRule{Kind: ir.RuleNumberGTE, Value: -2.5}, generator.TargetNumber,
			"v < -2.5", generator.CodeNumberGTE, "{path} must be greater than or equal to -2.5"),
		Entry("number-lt",
			ir.ValidationRule{Kind: ir.RuleNumberLT, Value: 1e6}, generator.TargetNumber,
			"v >= 1000000", generator.CodeNumberLT, "{path} must be less than 1000000"),
		Entry("number-lte",
			ir.ValidationRule{Kind: ir.RuleNumberLTE, Value: 100}, generator.TargetNumber,
			"v > 100", generator.CodeNumberLTE, "{path} must be less than or equal to 100"),
		Entry("array-max-items",
			ir.ValidationRule{Kind: ir.RuleArrayMaxItems, Value: 5}, generator.TargetArray,
			"v.length > 5", generator.CodeArrayMaxItems, "{path} must contain at most 5 items"),
		Entry("array-min-items",
			ir.ValidationRule{Kind: ir.RuleArrayMinItems, Value: 1}, generator.TargetArray,
			"v.length < 1", generator.CodeArrayMinItems, "{path} must contain at least 1 items"),
		Entry("array-unique-items",
			ir.ValidationRule{Kind: ir.RuleArrayUniqueItems}, generator.TargetArray,
			"hasDuplicateItems(v)", generator.CodeArrayUniqueItems, "{path} must not contain duplicate items"),
	)
})

var _ = Describe("PatternTable", func() {
	It("shares constants between identical patterns", func() {
		t := generator.NewPatternTable()
		Expect(t.Name("^a$")).To(Equal("PATTERN_1"))
		Expect(t.Name("^b$")).To(Equal("PATTERN_2"))
		Expect(t.Name("^a$")).To(Equal("PATTERN_1"))
		Expect(t.Len()).To(Equal(2))
	})
})

var _ = Describe("Usage", func() {
	It("records helpers with the codes they report", func() {
		u := generator.NewUsage()
		Expect(u.Use(generator.HelperCheckString)).To(Equal("checkString"))
		Expect(u.SortedCodes()).To(Equal([]generator.ErrorCode{generator.CodeType}))

		other := generator.NewUsage()
		other.Use(generator.HelperIsRecord)
		other.Report(generator.CodeRequired)
		u.Merge(other)
		Expect(u.SortedHelpers()).To(Equal([]generator.Helper{generator.HelperIsRecord, generator.HelperCheckString}))
		Expect(u.SortedCodes()).To(Equal([]generator.ErrorCode{generator.CodeRequired, generator.CodeType}))
	})
})
