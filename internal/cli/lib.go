package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	libDefault bool
	libAdopt   bool
)

func init() {
	libCreateCmd.Flags().BoolVar(&libDefault, "default", false, "Make this the default library")
	libCreateCmd.Flags().BoolVar(&libAdopt, "adopt", false, "Track an existing directory instead of creating one")
	libCmd.AddCommand(libCreateCmd, libUntrackCmd, libDefaultCmd, libListCmd)
	rootCmd.AddCommand(libCmd)
}

var libCmd = &cobra.Command{
	Use:     "lib",
	Aliases: []string{"library"},
	Short:   "Manage libraries, the directories projects live in",
}

var libCreateCmd = &cobra.Command{
	Use:   "create <name> <path>",
	Short: "Track a new library",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		if err := m.CreateLibrary(args[0], args[1], libDefault, libAdopt); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created library %s\n", args[0])
		return nil
	},
}

var libUntrackCmd = &cobra.Command{
	Use:   "untrack <name>",
	Short: "Forget a library, leaving its directory in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		if err := m.UntrackLibrary(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Untracked library %s\n", args[0])
		return nil
	},
}

var libDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the library used when none is given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		if err := m.SetDefaultLibrary(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default library is now %s\n", args[0])
		return nil
	},
}

var libListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked libraries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		libs, err := m.ListLibraries()
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(libs))
		for _, l := range libs {
			rows = append(rows, []string{l.Name, l.Path, mark(l.Default)})
		}
		return render(cmd.OutOrStdout(), libs, []string{"NAME", "PATH", "DEFAULT"}, rows, "No libraries tracked.")
	},
}
