package genkit_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tlipoca9/guardgen/genkit"
)

var _ = Describe("Config", func() {
	var dir string

	write := func(content string) string {
		path := filepath.Join(dir, genkit.ConfigFileName)
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("keeps defaults for missing keys", func() {
		path := write("output_dir = \"web/src/api\"\n[sanitizer]\nunion_strategy = \"merge\"\n")
		cfg, err := genkit.LoadConfigFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.OutputDir).To(Equal(filepath.Join(dir, "web/src/api")))
		Expect(cfg.Sanitizer.UnionStrategy).To(Equal(genkit.UnionStrategyMerge))
		Expect(cfg.Files).To(Equal(genkit.DefaultConfig().Files))
		Expect(cfg.Emit.Services).To(BeTrue())
		Expect(cfg.Path).To(Equal(path))
	})

	It("can switch artifacts off", func() {
		cfg, err := genkit.LoadConfigFile(write("[emit]\ntypes = false\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Emit.Types).To(BeFalse())
		Expect(cfg.Emit.Services).To(BeTrue())
	})

	DescribeTable("rejects invalid files",
		func(content, message string) {
			_, err := genkit.LoadConfigFile(write(content))
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		Entry("unknown key", "outputdir = \"x\"\n", "unknown keys outputdir"),
		Entry("bad strategy", "[sanitizer]\nunion_strategy = \"first\"\n", "union_strategy"),
		Entry("non-ts file", "[files]\ntypes = \"types.d\"\n", "files.types must name a .ts file"),
		Entry("shared file", "[files]\ntypes = \"api.ts\"\nvalidators = \"api.ts\"\n", "both name"),
		Entry("syntax", "output_dir = \n", "parse config"),
	)

	It("finds the configuration in a parent directory", func() {
		path := write("")
		nested := filepath.Join(dir, "a", "b")
		Expect(os.MkdirAll(nested, 0o755)).To(Succeed())

		found, err := genkit.FindConfig(nested)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(Equal(path))

		cfg, err := genkit.LoadConfig(nested)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.OutputDir).To(Equal(filepath.Join(dir, "generated")))
	})

	It("places outputs per service", func() {
		cfg := genkit.DefaultConfig()
		Expect(cfg.OutputPath("petstore", "types.ts")).To(Equal(filepath.Join("generated", "petstore", "types.ts")))
		Expect(genkit.Module("dateUtils.ts")).To(Equal(genkit.TSModule("./dateUtils")))
	})

	It("encodes as TOML", func() {
		var buf bytes.Buffer
		Expect(genkit.DefaultConfig().EncodeTOML(&buf)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(`output_dir = "generated"`))
		Expect(buf.String()).To(ContainSubstring(`union_strategy = "guard"`))
		Expect(buf.String()).NotTo(ContainSubstring("Path"))
	})
})
