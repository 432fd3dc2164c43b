package cli

import (
	"fmt"

	"github.com/levirogalla/donna-cli/internal/userdata"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config directory, data root and registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		dir, err := resolver.ConfigDir()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Initializing %s\n", dir)
		if err := userdata.Setup(w, resolver); err != nil {
			return fmt.Errorf("initializing: %w", err)
		}
		fmt.Fprintln(w, "\nInitialized successfully.")
		return nil
	},
}
