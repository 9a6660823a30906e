package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/stack/export"
	"github.com/yaptide/chipstack/pkg/stack/job"
)

func readInput(path string) (job.Input, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return job.Input{}, readErr
	}
	return job.Parse(data)
}

func generateBuildCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "build <input.json>",
		Short: "build layer stack and export simulation data",
		Long:  "builds layer stack and writes simulation data, layer table and, when input has a cut, cross-section data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(conf, false); err != nil {
				return err
			}
			in, inputErr := readInput(args[0])
			if inputErr != nil {
				return inputErr
			}
			out, runErr := job.Run(in)
			if runErr != nil {
				return runErr
			}
			return export.Write(conf.OutputDir, out.Files)
		},
	}
}

func generateCrossSectionCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "xsection <input.json>",
		Aliases: []string{"cross-section"},
		Short:   "export cross-section data",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(conf, false); err != nil {
				return err
			}
			in, inputErr := readInput(args[0])
			if inputErr != nil {
				return inputErr
			}
			out, runErr := job.RunCrossSection(in)
			if runErr != nil {
				return runErr
			}
			return export.Write(conf.OutputDir, out.Files)
		},
	}
}

func generateRenderCmd(conf *config.Config) *cobra.Command {
	pixel := 1.0
	cmd := &cobra.Command{
		Use:   "render <input.json>",
		Short: "draw finalized layers into png images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(conf, false); err != nil {
				return err
			}
			in, inputErr := readInput(args[0])
			if inputErr != nil {
				return inputErr
			}
			images, renderErr := job.Render(in, pixel)
			if renderErr != nil {
				return renderErr
			}
			return export.WriteBinary(conf.OutputDir, images)
		},
	}
	cmd.Flags().Float64Var(&pixel, "pixel", pixel, "pixel size in micrometers")
	return cmd
}
