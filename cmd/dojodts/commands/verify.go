package commands

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/verify"
)

var verifyCompiler bool

// VerifyCmd checks generated declaration files
var VerifyCmd = &cobra.Command{
	Use:   "verify [FILES...]",
	Short: "Verify generated declarations parse and compile",
	Long: `Verify declaration files with the built-in TypeScript parser and, when
verify.command is set or --compiler is given, an external type checker.

Without arguments every .d.ts file in output.dir is checked.

Examples:
  dojodts verify                          # Syntax check output.dir
  dojodts verify --compiler               # Also run tsc --noEmit
  dojodts verify output/dojo.d.ts         # One file`,
	RunE: runVerify,
}

func init() {
	VerifyCmd.Flags().BoolVar(&verifyCompiler, "compiler", false, "Run the external checker even if verify.command is unset")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files := args
	if len(files) == 0 {
		files, err = filepath.Glob(filepath.Join(cfg.Output.Dir, "*.d.ts"))
		if err != nil {
			return errors.Wrap(err, "failed to list declaration files")
		}
		sort.Strings(files)
	}
	if len(files) == 0 {
		return errors.WithHint(
			errors.Newk(errors.ErrInputNotFound, "no declaration files in %s", cfg.Output.Dir),
			"run 'dojodts generate' first")
	}

	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", f)
		}
		if err := verify.Syntax(ctx, f, data); err != nil {
			return err
		}
		pterm.Success.WithWriter(w).Printfln("%s parses", f)
	}

	if cfg.Verify.Command == "" && !verifyCompiler {
		return nil
	}
	compiler := &verify.Compiler{Command: cfg.Verify.Command}
	if err := compiler.Check(ctx, files...); err != nil {
		return err
	}
	pterm.Success.WithWriter(w).Printfln("%d files type-check", len(files))
	return nil
}
