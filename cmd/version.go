package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pb33f/quiver/motor"
)

// set at build time, e.g.
// go build -ldflags "-X github.com/pb33f/quiver/cmd.Version=1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build details",
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("quiver %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if GitCommit != "unknown" {
		fmt.Printf("  commit:  %s\n", GitCommit)
	}
	if BuildDate != "unknown" {
		fmt.Printf("  built:   %s\n", BuildDate)
	}
	if path, err := motor.DefaultHistoryPath(); err == nil {
		fmt.Printf("  history: %s\n", path)
	}
}
