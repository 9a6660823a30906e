package web

import (
	"context"

	"github.com/yaptide/chipstack/pkg/stack/setup"
)

type configurationResponse struct {
	DefaultParameters      setup.Parameters `json:"defaultParameters"`
	PartitionProviders     []string         `json:"partitionRegionProviders"`
	CorrectionCutProviders []string         `json:"correctionCutProviders"`
}

func (h *handler) getConfigurationHandler(ctx context.Context) (*configurationResponse, error) {
	providers, cutProviders := h.providers.Names()
	return &configurationResponse{
		DefaultParameters:      setup.DefaultParameters(),
		PartitionProviders:     providers,
		CorrectionCutProviders: cutProviders,
	}, nil
}
