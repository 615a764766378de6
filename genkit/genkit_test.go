package genkit_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tlipoca9/guardgen/genkit"
)

const petstoreYAML = `name: petstore
types:
  - name: Pet
    properties:
      - name: name
        type: string
        required: true
`

var _ = Describe("GeneratedFile", func() {
	var gen *genkit.Generator

	BeforeEach(func() {
		gen = genkit.New()
	})

	It("imports modules of foreign identifiers after the header", func() {
		g := gen.NewGeneratedFile("out/validators.ts", "./validators")
		g.P("// Code generated by guardgen. DO NOT EDIT.")
		g.P()
		g.P("export function isPet(value: unknown): value is ", genkit.TSModule("./types").Ident("Pet"), " {")
		g.P("return ", genkit.TSModule("./validators").Ident("validatePet"), "(value).length === 0;")
		g.P("}")

		content, err := g.Content()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal(`// Code generated by guardgen. DO NOT EDIT.

import * as types from "./types";

export function isPet(value: unknown): value is types.Pet {
  return validatePet(value).length === 0;
}
`))
	})

	It("resolves alias conflicts with a numeric suffix", func() {
		g := gen.NewGeneratedFile("out/a.ts", "./a")
		first := g.QualifiedTSIdent(genkit.TSModule("./types").Ident("A"))
		second := g.QualifiedTSIdent(genkit.TSModule("../shared/types").Ident("B"))
		again := g.QualifiedTSIdent(genkit.TSModule("./types").Ident("C"))
		Expect(first).To(Equal("types.A"))
		Expect(second).To(Equal("types2.B"))
		Expect(again).To(Equal("types.C"))

		content, err := g.Content()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal("import * as types2 from \"../shared/types\";\nimport * as types from \"./types\";\n"))
	})

	It("honours explicit aliases", func() {
		g := gen.NewGeneratedFile("out/a.ts", "./a")
		Expect(g.ImportAs("./dateUtils", "dates")).To(Equal("dates"))
		Expect(g.QualifiedTSIdent(genkit.TSModule("./dateUtils").Ident("toDate"))).To(Equal("dates.toDate"))
	})

	It("prints docs, raw strings and snippets", func() {
		var s genkit.Snippet
		s.P("const x = ", genkit.TSModule("./types").Ident("Default"), ";")
		Expect(s.Len()).To(Equal(1))

		g := gen.NewGeneratedFile("out/a.ts", "./a")
		g.P(genkit.TSDoc("Pet is a pet.\nIt ends a comment */ early."), genkit.RawString("export type Pet = string;"))
		s.PrintTo(g)

		content, err := g.Content()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal(`import * as types from "./types";
/**
 * Pet is a pet.
 * It ends a comment *\/ early.
 */
export type Pet = string;
const x = types.Default;
`))
	})

	It("reports unbalanced output", func() {
		g := gen.NewGeneratedFile("out/a.ts", "./a")
		g.P("function f() {")
		_, err := g.Content()
		Expect(err).To(MatchError(ContainSubstring("unclosed bracket")))
	})

	It("leaves skipped files out of dry runs", func() {
		gen.NewGeneratedFile("out/a.ts", "./a").P("export {};")
		gen.NewGeneratedFile("out/b.ts", "./b").Skip()
		files, err := gen.DryRun()
		Expect(err).NotTo(HaveOccurred())
		Expect(files).To(HaveKey("out/a.ts"))
		Expect(files).NotTo(HaveKey("out/b.ts"))
	})
})

var _ = Describe("FormatTS", func() {
	It("indents by bracket depth and collapses blank lines", func() {
		out, err := genkit.FormatTS([]byte("\n\nif (a) {\nfoo({\nb: [1,\n2],\n});\n\n\n} else {\nbar();\n}\n\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("if (a) {\n  foo({\n    b: [1,\n      2],\n  });\n\n} else {\n  bar();\n}\n"))
	})

	It("ignores brackets inside strings and comments", func() {
		out, err := genkit.FormatTS([]byte("const a = \"{\"; // }\nconst b = `${a}]`;\nconst c = '\\'(';\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("const a = \"{\"; // }\nconst b = `${a}]`;\nconst c = '\\'(';\n"))
	})

	It("rejects stray closing brackets", func() {
		_, err := genkit.FormatTS([]byte("}\n"))
		Expect(err).To(MatchError(ContainSubstring("line 1")))
	})
})

var _ = Describe("TSModule", func() {
	It("derives aliases from the last path element", func() {
		Expect(genkit.TSModule("./validators").BaseName()).To(Equal("validators"))
		Expect(genkit.TSModule("./date-utils.js").BaseName()).To(Equal("dateutils"))
		Expect(genkit.TSModule("@scope/9lives").BaseName()).To(Equal("lives"))
	})

	It("quotes strings as TypeScript literals", func() {
		Expect(genkit.Quote(`a"b<c>`)).To(Equal(`"a\"b<c>"`))
	})
})

var _ = Describe("Generator", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "petstore.yaml"), []byte(petstoreYAML), 0o644)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(dir, "nested"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "nested", "other.json"), []byte(`{"name": "other"}`), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "README.md"), []byte("# docs"), 0o644)).To(Succeed())
	})

	It("loads documents of a directory", func() {
		gen := genkit.New()
		Expect(gen.Load(dir)).To(Succeed())
		Expect(gen.Services).To(HaveLen(1))
		Expect(gen.Services[0].Name).To(Equal("petstore"))
	})

	It("loads documents recursively", func() {
		gen := genkit.New()
		Expect(gen.Load(dir + "/...")).To(Succeed())
		Expect(gen.Services).To(HaveLen(2))
	})

	It("rejects services that fail the IR check unless told otherwise", func() {
		broken := filepath.Join(dir, "broken.yaml")
		Expect(os.WriteFile(broken, []byte("name: broken\ntypes:\n  - name: A\n    properties:\n      - name: b\n        type: B\n"), 0o644)).To(Succeed())

		err := genkit.New().Load(broken)
		Expect(err).To(MatchError(ContainSubstring("types[0].properties[0].type")))

		gen := genkit.New(genkit.Options{SkipCheck: true})
		Expect(gen.Load(broken)).To(Succeed())
		Expect(gen.Services).To(HaveLen(1))
	})

	It("fails when nothing matches", func() {
		empty := GinkgoT().TempDir()
		Expect(genkit.New().Load(empty)).To(MatchError(ContainSubstring("no IR documents")))
	})

	It("writes every file it can and reports the rest", func() {
		blocker := filepath.Join(dir, "blocker")
		Expect(os.WriteFile(blocker, nil, 0o644)).To(Succeed())

		gen := genkit.New()
		gen.NewGeneratedFile(filepath.Join(blocker, "a.ts"), "./a").P("export {};")
		gen.NewGeneratedFile(filepath.Join(dir, "out", "b.ts"), "./b").P("export {};")

		err := gen.Write()
		Expect(err).To(MatchError(ContainSubstring("create dir")))
		Expect(filepath.Join(dir, "out", "b.ts")).To(BeAnExistingFile())
	})

	It("uses the default configuration", func() {
		Expect(genkit.New().Config()).To(Equal(genkit.DefaultConfig()))
	})
})
