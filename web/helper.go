package web

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/yaptide/chipstack/errors"
	"github.com/yaptide/chipstack/model/mongo"
	"github.com/yaptide/chipstack/process"
	"gopkg.in/mgo.v2/bson"
)

func extractBsonURLParamIDContext(ctx context.Context, name string) (bson.ObjectId, error) {
	chiContext := chi.RouteContext(ctx)
	return mongo.ConvertToObjectID(chiContext.URLParam(name))
}

func extractSimulationID(ctx context.Context) (bson.ObjectId, error) {
	return extractBsonURLParamIDContext(ctx, "simulationId")
}

func writeJSONResponse(w http.ResponseWriter, httpStatus int, body interface{}) error {
	marshaled, marshalingErr := json.Marshal(body)
	if marshalingErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return marshalingErr
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_, writeErr := w.Write(marshaled)
	return writeErr
}

func errorStatus(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrMalformed):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrInternalServerError):
		return http.StatusInternalServerError
	case stderrors.Is(err, process.ErrBusy):
		return http.StatusServiceUnavailable
	default:
		// Everything else is a build rejecting its input.
		return http.StatusUnprocessableEntity
	}
}

func handleRequestErr(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error(err.Error())
	}
	_ = writeJSONResponse(w, status, map[string]string{"error": err.Error()})
}
