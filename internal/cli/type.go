package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	typeGroups   []string
	typeBuilder  string
	typeOpener   string
	typeRedefine bool
)

func init() {
	typeDefineCmd.Flags().StringSliceVarP(&typeGroups, "group", "g", nil, "Default alias group (repeatable)")
	typeDefineCmd.Flags().StringVar(&typeBuilder, "builder", "", "Builder script, relative to the builders directory unless absolute")
	typeDefineCmd.Flags().StringVar(&typeOpener, "opener", "", "Opener script, relative to the openers directory unless absolute")
	typeDefineCmd.Flags().BoolVar(&typeRedefine, "redefine", false, "Replace an existing project type")
	typeCmd.AddCommand(typeDefineCmd, typeUntrackCmd, typeRenameCmd, typeListCmd, typeBuildersDirCmd, typeOpenersDirCmd)
	rootCmd.AddCommand(typeCmd)
}

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Manage project types, presets applied when a project is created",
}

var typeDefineCmd = &cobra.Command{
	Use:   "define <name>",
	Short: "Define a project type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		if err := m.DefineProjectType(args[0], typeGroups, typeBuilder, typeOpener, typeRedefine); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Defined project type %s\n", args[0])
		return nil
	},
}

var typeUntrackCmd = &cobra.Command{
	Use:   "untrack <name>",
	Short: "Forget a project type and clear it from every project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		report, err := m.UntrackProjectType(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Untracked project type %s\n", args[0])
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var typeRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a project type everywhere it is used",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		report, err := m.RenameProjectType(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed project type %s to %s\n", args[0], args[1])
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var typeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		types, err := m.ListProjectTypes()
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(types))
		for _, pt := range types {
			rows = append(rows, []string{pt.Name, strings.Join(pt.DefaultAliasGroups, ", "), pt.Builder, pt.Opener})
		}
		return render(cmd.OutOrStdout(), types, []string{"NAME", "ALIAS GROUPS", "BUILDER", "OPENER"}, rows, "No project types defined.")
	},
}

var typeBuildersDirCmd = &cobra.Command{
	Use:   "builders-dir <path>",
	Short: "Set the directory builder names are resolved against",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		return m.SetBuildersDir(args[0])
	},
}

var typeOpenersDirCmd = &cobra.Command{
	Use:   "openers-dir <path>",
	Short: "Set the directory opener names are resolved against",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		return m.SetOpenersDir(args[0])
	},
}
