package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dojodts/am"
	"github.com/teranos/dojodts/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage dojodts configuration",
	Long: `am: Manage dojodts configuration ("I am")

Display and validate the settings the generator runs with.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (DOJODTS_* prefix)
3. Project config (./am.toml, searched up directories)
4. User config (~/.dojodts/am.toml)
5. System config (/etc/dojodts/config.toml)
6. Default values

Examples:
  dojodts am show                    # Show current configuration
  dojodts am show --format json      # Show configuration in JSON format
  dojodts am get output.dir          # Get specific config value
  dojodts am validate                # Validate current configuration
  dojodts am where                   # Show where each setting comes from`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current dojodts configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., input.details_path, generate.workers)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade and the source of every setting.

Settings are listed under the file or environment variable that supplied
them; everything else comes from the built-in defaults.`,
	RunE: runAmWhere,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return writeConfig(cmd.OutOrStdout(), cfg, configFormat)
}

// writeConfig marshals cfg in the given format
func writeConfig(w io.Writer, cfg *am.Config, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(w, "# dojodts configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(w, "# dojodts configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	if !am.GetViper().IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(w, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintf(w, "  2. [SYSTEM]   %s\n", am.SystemConfigPath)
	fmt.Fprintln(w, "  3. [USER]     ~/.dojodts/am.toml")
	fmt.Fprintln(w, "  4. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Fprintf(w, "  5. [ENV]      %s_* environment variables\n", am.EnvPrefix)
	fmt.Fprintln(w)

	// Settings grouped by the file or variable that supplied them, in cascade order
	sourceOrder := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceEnvironment,
	}

	fmt.Fprintln(w, "Active configuration:")
	for _, source := range sourceOrder {
		var settings []am.SettingInfo
		for _, s := range intro.Settings {
			if s.Source == source {
				settings = append(settings, s)
			}
		}
		if len(settings) == 0 {
			continue
		}

		switch source {
		case am.SourceDefault:
			fmt.Fprintf(w, "\n%s: %d settings\n", source, len(settings))
		case am.SourceEnvironment:
			fmt.Fprintf(w, "\n%s: %d settings from environment variables\n", source, len(settings))
		default:
			fmt.Fprintf(w, "\n%s: %d settings from %s\n", source, len(settings), settings[0].SourcePath)
		}
		for _, s := range settings {
			if source == am.SourceEnvironment {
				fmt.Fprintf(w, "  %s = %v (%s)\n", s.Key, s.Value, s.SourcePath)
				continue
			}
			fmt.Fprintf(w, "  %s = %v\n", s.Key, s.Value)
		}
	}

	if len(intro.ConfigFiles) == 0 {
		fmt.Fprintln(w, "\nNo configuration files found.")
	}
	return nil
}
