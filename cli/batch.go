package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/stack/export"
	"github.com/yaptide/chipstack/pkg/stack/job"
	"github.com/yaptide/chipstack/pkg/stack/simulation"
	"github.com/yaptide/chipstack/process"
)

func generateBatchCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <input.json>...",
		Short: "build many simulations concurrently",
		Long:  "builds inputs with shared layer numbers; every simulation is exported to its own subdirectory of output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(conf, false); err != nil {
				return err
			}
			return runBatch(cmd.Context(), conf, args)
		},
	}
	cmd.Flags().IntVarP(&conf.Workers, "workers", "w", conf.Workers, "number of simulations built at the same time")
	cmd.Flags().BoolVar(&conf.SkipErrors, "skip-errors", conf.SkipErrors, "report failed inputs and continue")
	return cmd
}

func runBatch(ctx context.Context, conf *config.Config, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	tasks := make([]process.Task, 0, len(paths))
	for _, path := range paths {
		in, inputErr := readInput(path)
		if inputErr != nil {
			if !conf.SkipErrors {
				return fmt.Errorf("%s: %w", path, inputErr)
			}
			log.Warnf("skipping %s: %s", path, inputErr.Error())
			continue
		}
		tasks = append(tasks, process.Task{Name: path, Input: in})
	}

	registry := simulation.NewRegistry()
	build := func(in job.Input) (job.Output, error) {
		return job.Run(in, simulation.WithRegistry(registry))
	}
	results, runErr := process.NewRunner(conf.Workers).RunAll(ctx, build, tasks, conf.SkipErrors)
	if runErr != nil {
		return runErr
	}

	failed := []string{}
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result.Name)
			continue
		}
		if err := export.Write(filepath.Join(conf.OutputDir, result.Output.Name), result.Output.Files); err != nil {
			return err
		}
	}
	if len(failed) > 0 {
		log.Warnf("%d of %d inputs failed: %s", len(failed), len(results), strings.Join(failed, ", "))
	}
	return nil
}
