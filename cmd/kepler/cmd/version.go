package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/keplerkv/pkg/core/version"
)

var (
	Version   = version.Application
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "KeplerKV v%s\n", Version)
		fmt.Fprintf(out, "  Git Commit:  %s\n", GitCommit)
		fmt.Fprintf(out, "  Build Date:  %s\n", BuildDate)
		fmt.Fprintf(out, "  Save Format: %s\n", version.SaveFormat)
		for _, c := range version.Components() {
			fmt.Fprintf(out, "  %-12s %s\n", c+":", version.ComponentVersion(c))
		}
		fmt.Fprintf(out, "  Go Version:  %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
