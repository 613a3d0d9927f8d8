package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. This is
// typically called by the main package with values injected via ldflags at
// build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the watershed3d CLI and returns an error if any command
// fails. The function sets up the root command with all subcommands,
// configures logging based on the --verbose flag, and executes the command
// tree.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "watershed3d",
		Short:        "watershed3d segments boundary volumes into supervoxels",
		Long:         `watershed3d turns a dense per-voxel boundary-probability volume into a labeled supervoxel volume using seeded watershed segmentation, the first stage of an image-segmentation pipeline.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("watershed3d %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSegmentCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newInitConfigCmd())

	return root.ExecuteContext(context.Background())
}
