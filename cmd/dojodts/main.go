package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teranos/dojodts/cmd/dojodts/commands"
	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/logger"
)

var logJSON bool

var rootCmd = &cobra.Command{
	Use:   "dojodts",
	Short: "dojodts - TypeScript declarations for the Dojo Toolkit",
	Long: `dojodts - TypeScript declarations for the Dojo Toolkit.

dojodts reads the JSON API documentation of the legacy Dojo toolkit
(details.json) and writes TypeScript declaration files, one per package
prefix.

Available commands:
  generate - Generate .d.ts files
  check    - Check committed .d.ts files are up to date
  verify   - Parse (and optionally type-check) .d.ts files
  watch    - Regenerate when inputs change
  am       - Manage configuration ("I am")
  version  - Show version information

Examples:
  dojodts generate                  # Generate into output.dir
  dojodts generate --stdout -p dojo # Print the dojo group
  dojodts check                     # Fail if output.dir is stale
  dojodts am show                   # Show current configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; a malformed one is reported
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "failed to load .env")
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(logJSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVarP(&commands.ConfigFile, "config", "c", "", "Use this config file instead of the usual cascade")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		if detail := errors.FlattenDetails(err); detail != "" {
			fmt.Fprintln(os.Stderr, detail)
		}
		os.Exit(1)
	}
}
