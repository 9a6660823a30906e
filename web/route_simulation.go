package web

import (
	"context"

	"github.com/yaptide/chipstack/model"
	"github.com/yaptide/chipstack/pkg/stack/job"
)

func (h *handler) createSimulationHandler(
	ctx context.Context, input *job.Input,
) (*model.Simulation, error) {
	out, runErr := h.runner.TryRun(h.build, *input)
	if runErr != nil {
		return nil, runErr
	}
	sim := model.InitialSimulation(out)
	if err := h.store.Insert(sim); err != nil {
		return nil, err
	}
	log.Infof("Stored simulation %s [%s]", sim.Name, sim.ID.Hex())
	return sim, nil
}

func (h *handler) getSimulationHandler(ctx context.Context) (*model.Simulation, error) {
	id, idErr := extractSimulationID(ctx)
	if idErr != nil {
		return nil, idErr
	}
	return h.store.Get(id)
}

func (h *handler) getSimulationsHandler(ctx context.Context) ([]model.Simulation, error) {
	return h.store.List()
}

func (h *handler) removeSimulationHandler(ctx context.Context) error {
	id, idErr := extractSimulationID(ctx)
	if idErr != nil {
		return idErr
	}
	return h.store.Remove(id)
}

// createCrossSectionHandler builds a cross-section without storing it.
func (h *handler) createCrossSectionHandler(
	ctx context.Context, input *job.Input,
) (map[string]string, error) {
	out, runErr := h.runner.TryRun(h.buildCrossSection, *input)
	if runErr != nil {
		return nil, runErr
	}
	return out.Files, nil
}

func (h *handler) build(in job.Input) (job.Output, error) {
	return job.Run(in, h.options()...)
}

func (h *handler) buildCrossSection(in job.Input) (job.Output, error) {
	return job.RunCrossSection(in, h.options()...)
}
