package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/typegen"
	"github.com/teranos/dojodts/verify"
)

// CheckCmd checks if generated declarations are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated declarations are up to date",
	Long: `Check if the declaration files in the output directory match what the
current documentation, alias table and patches produce.

This command generates into a temporary directory and compares the result
with the existing files, ignoring the "// Generated" banner line.

Examples:
  dojodts check              # Compare against output.dir
  dojodts check -o types/    # Compare against another directory`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Details file (default: input.details_path)")
	CheckCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Directory holding the committed declarations (default: output.dir)")
	CheckCmd.Flags().StringSliceVarP(&generatePrefixes, "prefix", "p", nil, "Package prefixes to group by (default: output.prefixes)")
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	tempDir, err := os.MkdirTemp("", "dojodts-check-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if err := typegen.WriteFiles(tempDir, result.Files); err != nil {
		return err
	}

	check, err := verify.CompareDirectories(tempDir, cfg.Output.Dir)
	if err != nil {
		return errors.Wrap(err, "failed to compare directories")
	}

	w := cmd.OutOrStdout()
	if check.UpToDate {
		pterm.Success.WithWriter(w).Printfln("Declarations in %s are up to date", cfg.Output.Dir)
		return nil
	}

	pterm.Error.WithWriter(w).Printfln("Declarations in %s are out of date", cfg.Output.Dir)
	printList(w, "differ", check.Differences)
	printList(w, "missing", check.Missing)
	printList(w, "no longer generated", check.Stale)

	return errors.WithHint(
		errors.Newf("%d declaration files out of date",
			len(check.Differences)+len(check.Missing)+len(check.Stale)),
		"run 'dojodts generate' to update")
}

func printList(w io.Writer, label string, files []string) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", label)
	for _, f := range files {
		fmt.Fprintf(w, "  - %s\n", f)
	}
}
