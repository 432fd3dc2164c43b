package cli

import (
	"fmt"
	"runtime"

	"github.com/levirogalla/donna-cli/internal/branding"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var versionShort bool

// buildInfo is what `version -o yaml` prints.
type buildInfo struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	Date      string `yaml:"date"`
	GoVersion string `yaml:"go_version"`
	Platform  string `yaml:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:   buildVersion,
		Commit:    buildCommit,
		Date:      buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version information. With -o yaml the build details are printed as a document.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		info := currentBuild()
		switch {
		case versionShort:
			fmt.Fprintln(w, info.Version)
		case flagOutput == "yaml":
			out, err := yaml.Marshal(info)
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			_, err = w.Write(out)
			return err
		default:
			fmt.Fprintf(w, "%s %s (commit %s, built %s, %s %s)\n",
				branding.CLIName(), info.Version, info.Commit, info.Date, info.GoVersion, info.Platform)
		}
		return nil
	},
}
