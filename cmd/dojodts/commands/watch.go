package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dojodts/am"
	"github.com/teranos/dojodts/logger"
	"github.com/teranos/dojodts/typegen"
)

// WatchCmd regenerates declarations whenever an input changes
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate declarations when inputs change",
	Long: `Generate once, then watch the configuration files, the details file and
the alias and patch tables, regenerating after each burst of changes.

Changes are debounced by watch.debounce_ms. Press Ctrl+C to stop.

Examples:
  dojodts watch
  DOJODTS_WATCH_DEBOUNCE_MS=100 dojodts watch -v`,
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: output.dir)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.ComponentLogger("watch")
	v := verbosity(cmd)

	regenerate := func(ctx context.Context, cfg *am.Config) error {
		p, err := NewPipeline(cfg)
		if err != nil {
			return err
		}
		result, err := p.Run(ctx)
		if err != nil {
			return err
		}
		if err := typegen.WriteFiles(cfg.Output.Dir, result.Files); err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), v, cfg.Output.Dir, result)
		return nil
	}

	// A failing first run still watches so the user can fix the input
	if err := regenerate(ctx, cfg); err != nil {
		log.Errorw("Generation failed", logger.FieldError, err)
	}

	var explicit []string
	if ConfigFile != "" {
		explicit = append(explicit, ConfigFile)
	}
	w, err := am.WatchConfig(cfg, explicit...)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(next *am.Config, changed []string) error {
		if ConfigFile != "" {
			var err error
			if next, err = loadConfig(); err != nil {
				return err
			}
		}
		copied := *next
		applyGenerateFlags(cmd, &copied)
		return regenerate(ctx, &copied)
	})
	w.Start()

	pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln("Watching %d files, press Ctrl+C to stop", len(w.Files()))
	<-ctx.Done()
	return nil
}
