package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"watershed3d/pkg/config"
	"watershed3d/pkg/volio"
)

// newInfoCmd builds the info command, which prints the header of a volume
// file without loading its payload.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the header of a boundary or label volume file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hdr, err := volio.ReadHeader(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kind:   %s\n", hdr.Kind)
			fmt.Fprintf(cmd.OutOrStdout(), "shape:  (%d, %d, %d)\n", hdr.NZ, hdr.NX, hdr.NY)
			fmt.Fprintf(cmd.OutOrStdout(), "voxels: %d\n", hdr.NZ*hdr.NX*hdr.NY)
			return nil
		},
	}
}

// newInitConfigCmd builds the init-config command, which writes a default
// configuration file for later editing.
func newInitConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateDefaultConfigFile(path); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("wrote default config", "path", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "watershed3d.yaml", "where to write the config file")
	return cmd
}
