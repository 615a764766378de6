// Command guardgen generates TypeScript validators, sanitizers and
// validated service wrappers from service model documents.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tlipoca9/guardgen/cmd/guardgen/generator"
	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// options are the flags shared by all commands.
type options struct {
	configPath string
	noColor    bool
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		opts       options
		dryRun     bool
		jsonOutput bool
	)

	ver := version
	if ver == commit {
		ver = "dev"
	}
	cmd := &cobra.Command{
		Use:   "guardgen [documents]",
		Short: "Validator and sanitizer generator for TypeScript services",
		Long: `guardgen reads service model documents (YAML or JSON) and writes, per service:
  - types.ts:             declared types, enums, unions and service interfaces
  - validators.ts:        validators and type guards reporting structured errors
  - sanitizers.ts:        sanitizers keeping declared members only
  - dateUtils.ts:         converters turning date strings into Date objects
  - validatedServices.ts: wrappers validating calls around a real implementation

Settings are read from guardgen.toml, searched from the first argument upwards.`,
		Version: fmt.Sprintf("%s (%s) %s", ver, commit, date),
		Example: `  guardgen api/petstore.yaml        # one document
  guardgen api                      # documents directly inside api
  guardgen api/...                  # documents below api
  guardgen --dry-run api/...        # preview without writing files
  guardgen --dry-run --json api/... # JSON output for IDE integration`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if dryRun {
				return runDryRun(cmd.Context(), cmd.OutOrStdout(), args, opts, jsonOutput)
			}
			return run(cmd.Context(), args, opts)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("guardgen %s (%s) %s\n", ver, commit, date))

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to guardgen.toml (default: searched upwards)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without writing files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (requires --dry-run)")

	cmd.AddCommand(configCmd(&opts))
	cmd.AddCommand(checkCmd(&opts))

	return cmd
}

func configCmd(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "config [dir]",
		Short: "Print the effective configuration",
		Long: `Print the configuration guardgen would use, with defaults filled in.

CONFIGURATION FILE:
  guardgen looks for guardgen.toml in the given directory (default: the
  current one) and its parents. Example guardgen.toml:

    output_dir = "src/generated"

    [files]
    types = "types.ts"
    validators = "validators.ts"
    sanitizers = "sanitizers.ts"
    dates = "dateUtils.ts"
    services = "validatedServices.ts"

    [emit]
    types = true
    services = true

    [sanitizer]
    union_strategy = "guard"  # guard | merge`,
		Example: `  guardgen config
  guardgen config --json | jq .files`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cfg, err := loadConfig(*opts, dir)
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), cfg, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [documents]",
		Short: "Check documents without generating",
		Long: `Load and check service model documents, then report the warnings
generation would print. Exits non-zero when a document is invalid.`,
		Example: `  guardgen check api/...`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), args, *opts)
		},
	}
}

// configSearchDir returns the directory the config search starts from.
func configSearchDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	arg := strings.TrimSuffix(strings.TrimSuffix(args[0], "..."), "/")
	if arg == "" {
		return "."
	}
	info, err := os.Stat(arg)
	if err != nil {
		return "."
	}
	if info.IsDir() {
		return arg
	}
	return filepath.Dir(arg)
}

func loadConfig(opts options, dir string) (*genkit.Config, error) {
	if opts.configPath != "" {
		return genkit.LoadConfigFile(opts.configPath)
	}
	return genkit.LoadConfig(dir)
}

func printConfig(w io.Writer, cfg *genkit.Config, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	if cfg.Path != "" {
		_, _ = fmt.Fprintf(w, "# %s\n", cfg.Path)
	}
	return cfg.EncodeTOML(w)
}

// load builds a generator over the documents named by args.
func load(args []string, opts options) (*genkit.Generator, error) {
	cfg, err := loadConfig(opts, configSearchDir(args))
	if err != nil {
		return nil, err
	}
	gen := genkit.New(genkit.Options{Config: cfg})
	if err := gen.Load(args...); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return gen, nil
}

func run(ctx context.Context, args []string, opts options) error {
	log := genkit.NewLogger().SetNoColor(opts.noColor)

	gen, err := load(args, opts)
	if err != nil {
		return err
	}
	log.Load("Loaded %v service(s)", len(gen.Services))
	for _, svc := range gen.Services {
		log.Item("%v", svc.File)
	}

	tool := generator.New()
	if err := tool.Run(ctx, gen, log); err != nil {
		return fmt.Errorf("%s: %w", tool.Name(), err)
	}

	files, err := gen.DryRun()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := gen.Write(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	log.Done("Generated %v file(s) in %v", len(files), gen.Config().OutputDir)
	return nil
}

func runCheck(ctx context.Context, w io.Writer, args []string, opts options) error {
	log := genkit.NewLoggerWithWriter(w).SetNoColor(opts.noColor)

	gen, err := load(args, opts)
	if err != nil {
		log.Error("%v", err)
		return fmt.Errorf("check failed")
	}

	diags := generator.New().Validate(ctx, gen, log)
	for _, d := range diags {
		log.Diagnostic(d)
	}
	log.Done("Checked %v service(s), %v warning(s)", len(gen.Services), len(diags))
	return nil
}

func runDryRun(ctx context.Context, w io.Writer, args []string, opts options, jsonOutput bool) error {
	// a silent logger keeps JSON output parseable
	var log *genkit.Logger
	if jsonOutput {
		log = genkit.NewLoggerWithWriter(io.Discard)
	} else {
		log = genkit.NewLoggerWithWriter(w).SetNoColor(opts.noColor)
	}
	result := &genkit.DryRunResult{
		Success: true,
		Files:   make(map[string]string),
	}

	gen, err := load(args, opts)
	if err != nil {
		result.Success = false
		result.AddError(generator.ToolName, "", err.Error(), ir.Position{})
	} else {
		result.Stats.ServicesLoaded = len(gen.Services)
		tool := generator.New()
		for _, d := range tool.Validate(ctx, gen, log) {
			result.AddDiagnostic(d)
		}
		if err := tool.Run(ctx, gen, genkit.NewLoggerWithWriter(io.Discard)); err != nil {
			result.Success = false
			result.AddError(tool.Name(), "", err.Error(), ir.Position{})
		}
	}

	if result.Success {
		files, err := gen.DryRun()
		if err != nil {
			result.Success = false
			result.AddError(generator.ToolName, "", fmt.Sprintf("generate: %v", err), ir.Position{})
		} else {
			result.Stats.FilesGenerated = len(files)
			for path, content := range files {
				// first 500 bytes as preview
				preview := string(content)
				if len(preview) > 500 {
					preview = preview[:500] + "\n... (truncated)"
				}
				result.Files[path] = preview
			}
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("dry-run failed with %d error(s)", result.Stats.ErrorCount)
		}
		return nil
	}
	return printDryRunResult(result, log)
}

func printDryRunResult(result *genkit.DryRunResult, log *genkit.Logger) error {
	if result.Success {
		log.Done("Dry-run successful")
		log.Item("Services: %v", result.Stats.ServicesLoaded)
		log.Item("Files to generate: %v", result.Stats.FilesGenerated)
		paths := make([]string, 0, len(result.Files))
		for path := range result.Files {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			log.Item("  %s", path)
		}
	} else {
		log.Warn("Dry-run found issues")
	}

	if result.Stats.ErrorCount > 0 {
		log.Warn("Errors: %v", result.Stats.ErrorCount)
	}
	if result.Stats.WarningCount > 0 {
		log.Warn("Warnings: %v", result.Stats.WarningCount)
	}
	for _, d := range result.Diagnostics {
		log.Diagnostic(d)
	}

	if !result.Success {
		return fmt.Errorf("dry-run failed with %d error(s)", result.Stats.ErrorCount)
	}
	return nil
}
