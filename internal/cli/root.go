package cli

import (
	"github.com/levirogalla/donna-cli/internal/branding"
	"github.com/levirogalla/donna-cli/internal/config"
	"github.com/levirogalla/donna-cli/internal/hook"
	"github.com/levirogalla/donna-cli/internal/logging"
	"github.com/levirogalla/donna-cli/internal/manager"
	"github.com/levirogalla/donna-cli/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose  bool
	flagLogLevel string
	flagOutput   string
)

// resolver locates the config and data homes. Tests point it at a sandbox.
var resolver = userdata.DefaultResolver()

var (
	settings *config.Settings
	mgr      *manager.Manager
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format for listings (table, yaml)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` tracks project libraries, alias groups and project types, and creates
projects that live in a library and are symlinked into alias groups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(resolver)
		if err != nil {
			return err
		}
		settings = s

		level := logging.ParseLevel(s.LogLevel())
		if flagLogLevel != "" {
			level = logging.ParseLevel(flagLogLevel)
		}
		if flagVerbose {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
		return nil
	},
}

// getManager builds the manager on first use. Hook output goes to the
// command's writers.
func getManager(cmd *cobra.Command) (*manager.Manager, error) {
	if mgr != nil {
		return mgr, nil
	}
	runner := &hook.ExecRunner{
		Interpreter: settings.HookInterpreter(),
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	}
	m, err := manager.New(resolver, manager.WithSettings(settings), manager.WithHookRunner(runner))
	if err != nil {
		return nil, err
	}
	mgr = m
	return mgr, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
