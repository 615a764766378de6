package genkit_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

var _ = Describe("Logger", func() {
	var (
		buf *bytes.Buffer
		log *genkit.Logger
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		log = genkit.NewLoggerWithWriter(buf).SetNoColor(true)
	})

	It("aligns levels", func() {
		log.Info("Loaded %v service(s)", 2)
		log.Error("broken")
		Expect(buf.String()).To(Equal(genkit.EmojiInfo + "  [INFO] Loaded 2 service(s)\n" + genkit.EmojiError + " [ERROR] broken\n"))
	})

	It("quotes paths and modules", func() {
		log.Write("Wrote %v", "out/types.ts")
		log.Item("imports %v", genkit.TSModule("./types"))
		Expect(buf.String()).To(ContainSubstring("Wrote 'out/types.ts'"))
		Expect(buf.String()).To(ContainSubstring("• imports './types'"))
	})

	It("colours identifiers unless disabled", func() {
		genkit.NewLoggerWithWriter(buf).Find("Found %v", "Pet")
		Expect(buf.String()).To(ContainSubstring("\033[36mPet\033[0m"))
	})

	It("prints diagnostics with their location", func() {
		log.Diagnostic(genkit.NewDiagnostic(genkit.DiagnosticWarning, "guardgen", "W001", "rule skipped",
			ir.Position{File: "api.yaml", Line: 3, Column: 7}))
		Expect(buf.String()).To(ContainSubstring("[WARN] guardgen[W001] api.yaml:3:7: rule skipped"))
	})
})

var _ = Describe("DiagnosticCollector", func() {
	It("collects and counts", func() {
		c := genkit.NewDiagnosticCollector("guardgen")
		c.Warningf("W001", ir.Position{}, "rule %s skipped", "string-pattern")
		Expect(c.HasErrors()).To(BeFalse())
		c.Merge(genkit.NewDiagnosticCollector("guardgen").Error("E001", "bad", ir.Position{Line: 1}))
		Expect(c.HasErrors()).To(BeTrue())
		Expect(c.Collect()).To(HaveLen(2))
		Expect(c.Collect()[0].Message).To(Equal("rule string-pattern skipped"))

		result := &genkit.DryRunResult{Success: true}
		for _, d := range c.Collect() {
			result.AddDiagnostic(d)
		}
		Expect(result.Success).To(BeFalse())
		Expect(result.Stats.ErrorCount).To(Equal(1))
		Expect(result.Stats.WarningCount).To(Equal(1))
	})
})
