package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	aliasAdopt   bool
	aliasNewName string
	aliasNewPath string
)

func init() {
	aliasCreateCmd.Flags().BoolVar(&aliasAdopt, "adopt", false, "Track an existing directory instead of creating one")
	aliasUpdateCmd.Flags().StringVar(&aliasNewName, "name", "", "New name for the group")
	aliasUpdateCmd.Flags().StringVar(&aliasNewPath, "path", "", "New location for the group directory")
	aliasCmd.AddCommand(aliasCreateCmd, aliasUpdateCmd, aliasUntrackCmd, aliasDeleteCmd, aliasListCmd)
	rootCmd.AddCommand(aliasCmd)
}

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage alias groups, directories of project symlinks",
}

var aliasCreateCmd = &cobra.Command{
	Use:   "create <name> <path>",
	Short: "Track a new alias group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		if err := m.CreateAliasGroup(args[0], args[1], aliasAdopt); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created alias group %s\n", args[0])
		return nil
	},
}

var aliasUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Rename an alias group or move its directory",
	Long: `Rename an alias group, move its directory, or both. A rename is applied
to every project record and project type that refers to the group.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if aliasNewName == "" && aliasNewPath == "" {
			return fmt.Errorf("nothing to update: pass --name and/or --path")
		}
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		report, err := m.UpdateAliasGroup(args[0], aliasNewName, aliasNewPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated alias group %s\n", args[0])
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var aliasUntrackCmd = &cobra.Command{
	Use:   "untrack <name>",
	Short: "Forget an alias group, leaving its directory in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		report, err := m.UntrackAliasGroup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Untracked alias group %s\n", args[0])
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var aliasDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an alias group directory and untrack it",
	Long: `Delete an alias group's directory and untrack it. The projects it links to
are not touched. Set use_trash to move the directory to the trash instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		report, err := m.DeleteAliasGroup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted alias group %s\n", args[0])
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked alias groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		groups, err := m.ListAliasGroups()
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, []string{g.Name, g.Path})
		}
		return render(cmd.OutOrStdout(), groups, []string{"NAME", "PATH"}, rows, "No alias groups tracked.")
	},
}
