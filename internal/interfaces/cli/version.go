package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/turtacn/JobPortal/internal/config"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("jobportal %s (commit: %s, built: %s, %s)", b.Version, b.Commit, b.BuildDate, b.GoVersion)
}

// CurrentBuildInfo returns the build metadata of the running binary.
func CurrentBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   config.Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func versionString() string {
	b := CurrentBuildInfo()
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.BuildDate)
}

func newVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return PrintResult(cmd, opts.OutputFormat, CurrentBuildInfo())
		},
	}
}

//Personal.AI order the ending
