package web

import (
	"net/http"

	"github.com/go-chi/chi"
)

func setupRoutes(h *handler) http.Handler {
	w := requestWrapper

	router := chi.NewRouter()

	router.Method(http.MethodGet, "/configuration", w(h.getConfigurationHandler))
	router.Route("/simulations", func(router chi.Router) {
		router.Method(http.MethodGet, "/", w(h.getSimulationsHandler))
		router.Method(http.MethodPost, "/", w(h.createSimulationHandler).withStatus(http.StatusCreated))
		router.Method(http.MethodGet, "/{simulationId}", w(h.getSimulationHandler))
		router.Method(http.MethodDelete, "/{simulationId}", w(h.removeSimulationHandler))
	})
	router.Method(http.MethodPost, "/cross-sections", w(h.createCrossSectionHandler))
	return router
}
