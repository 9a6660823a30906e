// Package web serves the chipstack http api.
package web

import (
	"net/http"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/model"
	"github.com/yaptide/chipstack/model/mongo"
	"github.com/yaptide/chipstack/pkg/stack/partition"
	"github.com/yaptide/chipstack/pkg/stack/simulation"
	"github.com/yaptide/chipstack/process"
)

var log = config.NamedLogger("web")

// NewRouter ...
func NewRouter(conf *config.Config) (http.Handler, error) {
	store, storeErr := newStore(conf)
	if storeErr != nil {
		log.Error(storeErr.Error())
		return nil, storeErr
	}
	return setupRoutes(newHandler(store, conf.Workers)), nil
}

func newStore(conf *config.Config) (model.SimulationStore, error) {
	if conf.DbURL == "" {
		log.Warn("No database configured, simulations are kept in memory")
		return model.NewMemoryStore(), nil
	}
	dbCreatorFunc, dbErr := mongo.SetupDB(conf.DbURL)
	if dbErr != nil {
		return nil, dbErr
	}
	return mongo.NewSimulationStore(dbCreatorFunc), nil
}

type handler struct {
	store     model.SimulationStore
	runner    *process.Runner
	registry  *simulation.Registry
	providers *partition.Registry
}

func newHandler(store model.SimulationStore, workers int) *handler {
	return &handler{
		store:     store,
		runner:    process.NewRunner(workers),
		registry:  simulation.NewRegistry(),
		providers: partition.DefaultRegistry(),
	}
}

func (h *handler) options() []simulation.Option {
	return []simulation.Option{
		simulation.WithRegistry(h.registry),
		simulation.WithProviders(h.providers),
	}
}
