package generator_test

import (
	"time"

	"github.com/onsi/gomega/gmeasure"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tlipoca9/guardgen/genkit"
)

// Run with: go test -v ./cmd/guardgen/generator/... -count=1

var _ = Describe("Benchmark", func() {
	var experiment *gmeasure.Experiment

	BeforeEach(func() {
		experiment = gmeasure.NewExperiment(CurrentSpecReport().LeafNodeText)
		AddReportEntry(experiment.Name, experiment)
	})

	It("benchmarks generating the shop service", func() {
		svc := service("shop.yaml")
		experiment.SampleDuration("generate/shop", func(_ int) {
			generate(genkit.DefaultConfig(), svc)
		}, gmeasure.SamplingConfig{N: 20}, gmeasure.Precision(time.Microsecond))

		stats := experiment.GetStats("generate/shop")
		Expect(stats.DurationFor(gmeasure.StatMean)).To(BeNumerically("<", 100*time.Millisecond))
	})
})
