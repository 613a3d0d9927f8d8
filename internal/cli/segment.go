package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"watershed3d/internal/session"
	"watershed3d/pkg/config"
	"watershed3d/pkg/segmentation"
	"watershed3d/pkg/volio"
)

// newSegmentCmd builds the segment command, which runs the full watershed
// pipeline: read the boundary volume, segment it, write the supervoxel
// volume.
func newSegmentCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		configPath string
		seedVal    float64
		seedSize   int
		borderSize int
		sessionDir string
	)

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Run seeded watershed over a boundary volume file",
		Long: `Segment reads a boundary-probability volume, generates watershed seeds by
thresholding and connected-component labeling, floods the volume from the
seeds, and writes the resulting supervoxel label volume.

Values from the configuration file are used for any parameter whose flag is
not set on the command line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed-val") {
				cfg.Segmentation.SeedVal = seedVal
			}
			if cmd.Flags().Changed("seed-size") {
				cfg.Segmentation.SeedSize = seedSize
			}
			if cmd.Flags().Changed("border-size") {
				cfg.Segmentation.BorderSize = borderSize
			}
			if cmd.Flags().Changed("session-dir") {
				cfg.Output.SessionDir = sessionDir
			}

			params := &segmentation.Params{
				SeedVal:    cfg.Segmentation.SeedVal,
				SeedSize:   cfg.Segmentation.SeedSize,
				BorderSize: cfg.Segmentation.BorderSize,
				Logger:     logger,
			}

			var sess *session.Session
			if cfg.Output.SessionDir != "" {
				sess, err = session.New(cfg.Output.SessionDir, "segment")
				if err != nil {
					return err
				}
				logger.Info("created session", "dir", sess.Dir)
				if err := sess.WriteOptions(cfg); err != nil {
					return err
				}
			}

			logger.Debug("reading boundary volume", "path", inputPath)
			boundary, err := volio.ReadVolume(inputPath)
			if err != nil {
				return err
			}
			logger.Info("loaded boundary volume",
				"shape", fmt.Sprintf("(%d,%d,%d)", boundary.NZ, boundary.NX, boundary.NY))

			p := newProgress(logger)
			seg := segmentation.NewSegmenter(params)
			supervoxels, err := seg.Process(boundary)
			if err != nil {
				return err
			}
			diag := seg.Diagnostics()
			p.done(fmt.Sprintf("Segmented volume into %d supervoxels", diag.SupervoxelCount))

			if err := volio.WriteLabels(outputPath, supervoxels); err != nil {
				return err
			}
			logger.Info("wrote supervoxel volume", "path", outputPath)

			if sess != nil {
				if err := sess.WriteDiagnostics(diag); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "boundary volume file to segment")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output supervoxel volume file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "watershed3d.yaml", "configuration file")
	cmd.Flags().Float64Var(&seedVal, "seed-val", 0, "boundary threshold for seed generation")
	cmd.Flags().IntVar(&seedSize, "seed-size", 0, "minimum seed component size in voxels")
	cmd.Flags().IntVar(&borderSize, "border-size", 0, "border margin left unlabeled in the output")
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "base directory for run session artifacts")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
