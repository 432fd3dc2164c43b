package cli

import (
	"fmt"

	"github.com/levirogalla/donna-cli/internal/branding"
	"github.com/levirogalla/donna-cli/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: "Read and write settings stored in settings.yaml next to the registry.\n" +
		"Every key can also be set through the environment, e.g. " + branding.EnvVar(config.KeyUseTrash) + "=true.",
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Set a setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := settings.Set(key, value); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Print a setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKnown(args[0]) {
			return fmt.Errorf("unknown setting %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), settings.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := map[string]string{}
		var rows [][]string
		for _, k := range config.Keys() {
			values[k] = settings.Get(k)
			rows = append(rows, []string{k, values[k]})
		}
		return render(cmd.OutOrStdout(), values, []string{"KEY", "VALUE"}, rows, "No settings.")
	},
}
