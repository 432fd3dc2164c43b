package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/levirogalla/donna-cli/internal/manager"
	"github.com/spf13/cobra"
)

var (
	newType    string
	newGroups  []string
	newLib     string
	newHandoff bool
	newClone   string

	projectLib string
)

func init() {
	newCmd.Flags().StringVarP(&newType, "type", "t", "", "Project type to apply")
	newCmd.Flags().StringSliceVarP(&newGroups, "group", "g", nil, "Alias group to link into (repeatable)")
	newCmd.Flags().StringVarP(&newLib, "lib", "l", "", "Library to create the project in (default library if empty)")
	newCmd.Flags().BoolVar(&newHandoff, "handoff", false, "Adopt an existing directory instead of creating one")
	newCmd.Flags().StringVar(&newClone, "clone", "", "Git remote to clone as the initial content")

	for _, c := range []*cobra.Command{openCmd, pathCmd, listCmd, linkCmd, unlinkCmd} {
		c.Flags().StringVarP(&projectLib, "lib", "l", "", "Library the project lives in (default library if empty)")
	}
	rootCmd.AddCommand(newCmd, openCmd, pathCmd, listCmd, linkCmd, unlinkCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a project",
	Long: `Create a project in a library, apply its project type and link it into
its alias groups.

With --handoff an existing directory is adopted and only the project record
is written. With --clone the directory is populated from a git remote and
the builder is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		req := manager.CreateProjectRequest{
			Name:        args[0],
			ProjectType: newType,
			AliasGroups: newGroups,
			Library:     newLib,
			Handoff:     newHandoff,
			CloneURL:    newClone,
		}

		var s *spinner.Spinner
		if newClone != "" {
			s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Cloning " + newClone + "..."
			s.Start()
		}
		res, err := m.CreateProject(cmd.Context(), req)
		if s != nil {
			if err != nil {
				s.FinalMSG = text.FgRed.Sprint("Clone failed") + "\n"
			}
			s.Stop()
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", text.FgGreen.Sprint("✓"), res.Path, res.Action)
		if len(res.Record.TrackedAliasGroups) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  linked into %s\n", strings.Join(res.Record.TrackedAliasGroups, ", "))
		}
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Run a project's opener",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		return m.OpenProject(cmd.Context(), args[0], projectLib)
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <name>",
	Short: "Print a project's directory",
	Long: `Print a project's directory. Useful with cd:

  cd "$(donna path myproject)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		p, err := m.ProjectPath(args[0], projectLib)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Long:    "List projects in one library, or in every library when --lib is not given.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		projects, err := m.ListProjects(projectLib)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, []string{
				p.Name,
				p.Library,
				p.Record.ProjectType,
				strings.Join(p.Record.TrackedAliasGroups, ", "),
				p.Path,
			})
		}
		return render(cmd.OutOrStdout(), projects, []string{"NAME", "LIBRARY", "TYPE", "ALIAS GROUPS", "PATH"}, rows, "No projects found.")
	},
}

var linkCmd = &cobra.Command{
	Use:   "link <name> <group>",
	Short: "Link a project into an alias group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		if err := m.LinkProject(args[0], projectLib, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s into %s\n", args[0], args[1])
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <name> <group>",
	Short: "Remove a project from an alias group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getManager(cmd)
		if err != nil {
			return err
		}
		if err := m.UnlinkProject(args[0], projectLib, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s from %s\n", args[0], args[1])
		return nil
	},
}
