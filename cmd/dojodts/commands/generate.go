package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dojodts/am"
	"github.com/teranos/dojodts/classify"
	"github.com/teranos/dojodts/logger"
	"github.com/teranos/dojodts/typegen"
)

var (
	generateInput    string
	generateOutput   string
	generatePrefixes []string
	generateStdout   bool
	generateStrict   bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate TypeScript declarations from Dojo API documentation",
	Long: `Generate TypeScript declaration files from a Dojo details.json file.

Entities are grouped by package prefix (dojo, doh, dijit and every dojox
subpackage found in the input); each group becomes one .d.ts file, wrapped
in the hand-written head and tail files from the extras directory.

Examples:
  dojodts generate                                 # Use am.toml settings
  dojodts generate -i details-1.10.json -o types/  # Explicit input and output
  dojodts generate --prefix dojo --stdout          # One group to stdout
  dojodts generate --strict                        # Fail on lossy overloads`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Details file (default: input.details_path)")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: output.dir)")
	GenerateCmd.Flags().StringSliceVarP(&generatePrefixes, "prefix", "p", nil, "Package prefixes to group by (default: output.prefixes)")
	GenerateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "Write declarations to stdout instead of files")
	GenerateCmd.Flags().BoolVar(&generateStrict, "strict", false, "Fail when a parameter list cannot be expanded exactly")
}

// applyGenerateFlags overrides cfg with the flags the user set
func applyGenerateFlags(cmd *cobra.Command, cfg *am.Config) {
	if generateInput != "" {
		cfg.Input.DetailsPath = generateInput
	}
	if generateOutput != "" {
		cfg.Output.Dir = generateOutput
	}
	if len(generatePrefixes) > 0 {
		cfg.Output.Prefixes = generatePrefixes
	}
	if cmd.Flags().Changed("strict") {
		cfg.Generate.Strict = generateStrict
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)

	p, err := NewPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	if generateStdout {
		for _, f := range result.Files {
			fmt.Fprint(cmd.OutOrStdout(), f.Content)
		}
		return nil
	}

	if err := typegen.WriteFiles(cfg.Output.Dir, result.Files); err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), verbosity(cmd), cfg.Output.Dir, result)
	return nil
}

// printSummary reports written files and, depending on verbosity, the shape
// counts, timing and warnings of a run
func printSummary(w io.Writer, v int, dir string, result *Result) {
	out := pterm.Success.WithWriter(w)
	info := pterm.Info.WithWriter(w)
	warn := pterm.Warning.WithWriter(w)

	for _, f := range result.Files {
		out.Printfln("Generated %s (%d entities, %s)",
			filepath.Join(dir, f.Name), f.Entities, humanize.Bytes(uint64(len(f.Content))))
	}

	r := result.Report
	if logger.ShouldOutput(v, logger.OutputProgress) {
		info.Printfln("%d of %d entities emitted: %d namespaces, %d callables, %d interfaces, %d classes",
			r.Emitted, r.Entities,
			r.Shapes[classify.PlainNamespace], r.Shapes[classify.CallableNamespace],
			r.Shapes[classify.Interface], r.Shapes[classify.Class])
		for _, removed := range r.Removed {
			info.Printfln("Removed by patch: %s", removed)
		}
	}
	if logger.ShouldOutput(v, logger.OutputTiming) {
		info.Printfln("Synthesized %s in %s", humanize.Bytes(uint64(r.Bytes)), result.Duration.Round(time.Millisecond))
	}

	if len(r.Warnings) == 0 {
		return
	}
	if logger.ShouldOutput(v, logger.OutputWarnings) {
		for _, warning := range r.Warnings {
			warn.Println(warning.String())
		}
		return
	}
	warn.Printfln("%d parameter lists used a fallback signature (-vv for details)", len(r.Warnings))
}
