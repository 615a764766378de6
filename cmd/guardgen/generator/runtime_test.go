package generator_test

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dop251/goja"
	"github.com/evanw/esbuild/pkg/api"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tlipoca9/guardgen/genkit"
)

// bundle links the generated files into one script that leaves every
// module on the global "generated" object, keyed by file base name.
func bundle(files map[string]string) string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, strings.TrimSuffix(name, ".ts"))
	}
	sort.Strings(names)
	var entry strings.Builder
	for _, name := range names {
		fmt.Fprintf(&entry, "export * as %s from \"./%s\";\n", name, name)
	}

	result := api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   entry.String(),
			Sourcefile: "entry.ts",
			Loader:     api.LoaderTS,
		},
		Bundle:     true,
		Format:     api.FormatIIFE,
		GlobalName: "generated",
		Target:     api.ES2017,
		Outfile:    "generated.js",
		LogLevel:   api.LogLevelSilent,
		Plugins: []api.Plugin{{
			Name: "generated",
			Setup: func(build api.PluginBuild) {
				build.OnResolve(api.OnResolveOptions{Filter: `^\./`}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{Path: strings.TrimPrefix(args.Path, "./") + ".ts", Namespace: "generated"}, nil
				})
				build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "generated"}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					src, ok := files[args.Path]
					if !ok {
						return api.OnLoadResult{}, fmt.Errorf("no generated file %s", args.Path)
					}
					return api.OnLoadResult{Contents: &src, Loader: api.LoaderTS}, nil
				})
			},
		}},
	})
	Expect(result.Errors).To(BeEmpty())
	Expect(result.OutputFiles).To(HaveLen(1))
	return string(result.OutputFiles[0].Contents)
}

// load generates svc and evaluates the bundle in a fresh runtime.
func load(document string) *goja.Runtime {
	files, _ := generate(genkit.DefaultConfig(), service(document))
	vm := goja.New()
	_, err := vm.RunString(bundle(files))
	Expect(err).NotTo(HaveOccurred())
	return vm
}

// eval runs script and returns its value as JSON.
func eval(vm *goja.Runtime, script string) string {
	v, err := vm.RunString("JSON.stringify(" + script + ")")
	Expect(err).NotTo(HaveOccurred())
	return v.String()
}

// settle runs an async script and returns its fulfilled value as JSON.
func settle(vm *goja.Runtime, script string) string {
	v, err := vm.RunString("(async () => JSON.stringify(await " + script + "))()")
	Expect(err).NotTo(HaveOccurred())
	p, ok := v.Export().(*goja.Promise)
	Expect(ok).To(BeTrue())
	Expect(p.State()).To(Equal(goja.PromiseStateFulfilled), "rejected with %v", p.Result())
	return p.Result().String()
}

var _ = Describe("Generated code", func() {
	var vm *goja.Runtime

	Context("validators", func() {
		BeforeEach(func() {
			vm = load("shop.yaml")
		})

		It("reports missing required members at their path", func() {
			Expect(eval(vm, `generated.validators.validatePet({})`)).To(MatchJSON(
				`[{"code": "REQUIRED", "title": "name is required", "path": "name"}]`))
			Expect(eval(vm, `generated.validators.validatePet({}, "body")`)).To(MatchJSON(
				`[{"code": "REQUIRED", "title": "body.name is required", "path": "body.name"}]`))
		})

		It("applies rules at their bounds", func() {
			Expect(eval(vm, `generated.validators.validatePet({ name: "abcdefghij" })`)).To(MatchJSON(`[]`))
			Expect(eval(vm, `generated.validators.validatePet({ name: "abcdefghijk" }).map((e) => e.code)`)).To(MatchJSON(
				`["STRING_MAX_LENGTH"]`))
		})

		It("reports array elements by index", func() {
			Expect(eval(vm, `generated.validators.validatePet({ name: "rex", tags: [{ label: "ok" }, { label: "Bad" }] }).map((e) => [e.code, e.path])`)).To(MatchJSON(
				`[["STRING_PATTERN", "tags[1].label"]]`))
		})

		It("dispatches discriminated unions to the member validator", func() {
			value := `{ kind: "cat", lives: 1.5 }`
			cat := eval(vm, `generated.validators.validateCat(`+value+`, "pet")`)
			Expect(cat).NotTo(MatchJSON(`[]`))
			Expect(eval(vm, `generated.validators.validateAnimal(`+value+`, "pet")`)).To(MatchJSON(cat))
			Expect(eval(vm, `generated.validators.validateAnimal({ kind: "cow" }).map((e) => [e.code, e.path])`)).To(MatchJSON(
				`[["STRING_ENUM", "kind"]]`))
		})

		It("accepts any member of an undiscriminated union", func() {
			Expect(eval(vm, `generated.validators.validateLoose({ kind: "dog", breed: "pug" })`)).To(MatchJSON(`[]`))
			Expect(eval(vm, `generated.validators.isPet({ name: "rex" })`)).To(Equal("true"))
			Expect(eval(vm, `generated.validators.isPet(undefined)`)).To(Equal("false"))
		})

		It("flags only strings outside an enum", func() {
			Expect(eval(vm, `generated.validators.validateStatus("lost").map((e) => e.code)`)).To(MatchJSON(`["STRING_ENUM"]`))
			Expect(eval(vm, `generated.validators.validateStatus(3)`)).To(MatchJSON(`[]`))
		})

		It("lets missing optional params through", func() {
			Expect(eval(vm, `generated.validators.validatePetServiceListPetsParams(undefined)`)).To(MatchJSON(`[]`))
			Expect(eval(vm, `generated.validators.validatePetServiceListPetsParams({ limit: 101 }).map((e) => e.code)`)).To(MatchJSON(
				`["NUMBER_LTE"]`))
		})

		It("accepts an empty object for a type without properties", func() {
			vm = load("cycle.yaml")
			Expect(eval(vm, `generated.validators.validateEmpty({})`)).To(MatchJSON(`[]`))
		})
	})

	Context("sanitizers", func() {
		BeforeEach(func() {
			vm = load("shop.yaml")
		})

		It("drops undeclared members at every depth", func() {
			Expect(eval(vm, `generated.sanitizers.sanitizePet({
				name: "rex",
				secret: 1,
				tags: [{ label: "a", extra: true }, null],
				owner: { email: "a@b", token: "x" },
				status: undefined,
			})`)).To(MatchJSON(`{"name": "rex", "tags": [{"label": "a"}, null], "owner": {"email": "a@b"}}`))
		})

		It("is idempotent", func() {
			Expect(eval(vm, `(() => {
				const once = generated.sanitizers.sanitizePet({ name: "rex", secret: 1, tags: [{ label: "a", x: 1 }] });
				const twice = generated.sanitizers.sanitizePet(once);
				return JSON.stringify(once) === JSON.stringify(twice);
			})()`)).To(Equal("true"))
		})

		It("sanitizes union members by their own declaration", func() {
			Expect(eval(vm, `generated.sanitizers.sanitizeAnimal({ kind: "dog", breed: "pug", lives: 9 })`)).To(MatchJSON(
				`{"kind": "dog", "breed": "pug"}`))
			Expect(eval(vm, `generated.sanitizers.sanitizeLoose({ kind: "cat", lives: 9, breed: "pug" })`)).To(MatchJSON(
				`{"kind": "cat", "lives": 9}`))
		})

		It("keeps only declared members when no guard matches", func() {
			Expect(eval(vm, `generated.sanitizers.sanitizeLoose({ kind: "cow", lives: 2, breed: "x", extra: 1 })`)).To(MatchJSON(
				`{"kind": "cow", "lives": 2, "breed": "x"}`))
		})
	})

	Context("date converters", func() {
		BeforeEach(func() {
			vm = load("shop.yaml")
		})

		It("converts date-shaped members at every depth", func() {
			Expect(eval(vm, `(() => {
				const pet = generated.dateUtils.convertPetDates({ name: "rex", born: "2020-01-02", owner: { since: "2020-01-02T03:04:05Z" } });
				return [pet.born instanceof Date, pet.owner.since instanceof Date, pet.owner.since.getTime()];
			})()`)).To(MatchJSON(`[true, true, 1577934245000]`))
		})

		It("passes unparseable values through", func() {
			Expect(eval(vm, `generated.dateUtils.convertPetDates({ name: "rex", born: "not-a-date" }).born`)).To(Equal(`"not-a-date"`))
		})

		It("leaves the input untouched", func() {
			Expect(eval(vm, `(() => {
				const input = { name: "rex", born: "2020-01-02" };
				generated.dateUtils.convertPetDates(input);
				return input.born;
			})()`)).To(Equal(`"2020-01-02"`))
		})
	})

	Context("validated services", func() {
		BeforeEach(func() {
			vm = load("shop.yaml")
			_, err := vm.RunString(`
				var calls = [];
				var failures = [];
				var service = new generated.validatedServices.ValidatedPetService({
					async getPet(params) {
						calls.push(params);
						return { name: "rex", secret: "s", tags: [{ label: "a", extra: 1 }] };
					},
					async listPets(params) {
						calls.push(params === undefined ? null : params);
						return [{ name: "a", secret: 1 }, { name: "b" }];
					},
					async ping() {
						throw new Error("down");
					},
				}, {
					"Pet": (errors, result, error) => ({ name: errors.length > 0 ? errors[0].code : String(error), secret: "b" }),
					"Pet[]": (errors) => [],
					"void": (errors, result, error) => { failures.push(String(error)); },
				});
			`)
			Expect(err).NotTo(HaveOccurred())
		})

		It("answers invalid params from the builder without calling the delegate", func() {
			Expect(settle(vm, `service.getPet({})`)).To(MatchJSON(`{"name": "REQUIRED"}`))
			Expect(eval(vm, `calls.length`)).To(Equal("0"))
		})

		It("calls the delegate once with sanitized params and sanitizes the result", func() {
			Expect(settle(vm, `service.getPet({ id: "1", junk: true })`)).To(MatchJSON(
				`{"name": "rex", "tags": [{"label": "a"}]}`))
			Expect(eval(vm, `calls`)).To(MatchJSON(`[{"id": "1"}]`))
		})

		It("maps array results through the element sanitizer", func() {
			Expect(settle(vm, `service.listPets()`)).To(MatchJSON(`[{"name": "a"}, {"name": "b"}]`))
			Expect(eval(vm, `calls`)).To(MatchJSON(`[null]`))
		})

		It("settles delegate failures through the builder", func() {
			Expect(settle(vm, `service.ping()`)).To(Equal("undefined"))
			Expect(eval(vm, `failures`)).To(MatchJSON(`["Error: down"]`))
		})
	})
})
