package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/yaptide/chipstack/errors"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// wrappedHandler calls a function of signature
// func(context.Context[, *Input]) ([Output, ]error). Input is decoded
// from the JSON body, Output is written as JSON.
type wrappedHandler struct {
	handler   reflect.Value
	inputType reflect.Type
	hasOutput bool
	status    int
}

func requestWrapper(handlerFunc interface{}) *wrappedHandler {
	h, validateErr := newWrappedHandler(handlerFunc)
	if validateErr != nil {
		log.Errorf("[ASSERT][INIT] error in web handler [%s]", validateErr.Error())
		panic(validateErr)
	}
	return h
}

func newWrappedHandler(handlerFunc interface{}) (*wrappedHandler, error) {
	value := reflect.ValueOf(handlerFunc)
	if !value.IsValid() || value.Kind() != reflect.Func {
		return nil, fmt.Errorf("handler %T is not a function", handlerFunc)
	}
	handlerType := value.Type()
	h := &wrappedHandler{handler: value, status: http.StatusOK}

	switch handlerType.NumIn() {
	case 2:
		if handlerType.In(1).Kind() != reflect.Ptr {
			return nil, fmt.Errorf("second argument of %v is not ptr", handlerType)
		}
		h.inputType = handlerType.In(1).Elem()
		fallthrough
	case 1:
		if !handlerType.In(0).Implements(contextType) {
			return nil, fmt.Errorf("first argument of %v is not of a type context.Context", handlerType)
		}
	default:
		return nil, fmt.Errorf("handler %v takes %d arguments, expected 1 or 2", handlerType, handlerType.NumIn())
	}

	numOut := handlerType.NumOut()
	if numOut < 1 || numOut > 2 {
		return nil, fmt.Errorf("handler %v returns %d values, expected 1 or 2", handlerType, numOut)
	}
	if !handlerType.Out(numOut - 1).Implements(errorType) {
		return nil, fmt.Errorf("last return value of %v doesn't implement error interface", handlerType)
	}
	h.hasOutput = numOut == 2
	return h, nil
}

// withStatus sets status of successful responses.
func (h *wrappedHandler) withStatus(status int) *wrappedHandler {
	h.status = status
	return h
}

func (h *wrappedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	args := []reflect.Value{reflect.ValueOf(r.Context())}
	if h.inputType != nil {
		input, decodeErr := h.decode(r)
		if decodeErr != nil {
			handleRequestErr(w, decodeErr)
			return
		}
		args = append(args, input)
	}
	h.respond(w, h.handler.Call(args))
}

func (h *wrappedHandler) decode(r *http.Request) (reflect.Value, error) {
	body, readErr := io.ReadAll(r.Body)
	if readErr != nil {
		return reflect.Value{}, errors.ErrInternalServerError
	}
	if len(body) == 0 {
		return reflect.Value{}, errors.ErrMalformed
	}
	input := reflect.New(h.inputType)
	if err := json.Unmarshal(body, input.Interface()); err != nil {
		log.Debugf("malformed request body: %s", err.Error())
		return reflect.Value{}, errors.ErrMalformed
	}
	return input, nil
}

func (h *wrappedHandler) respond(w http.ResponseWriter, results []reflect.Value) {
	errValue := results[len(results)-1]
	if !errValue.IsNil() {
		handleRequestErr(w, errValue.Interface().(error))
		return
	}
	if !h.hasOutput {
		_ = writeJSONResponse(w, h.status, map[string]string{"status": "ok"})
		return
	}
	_ = writeJSONResponse(w, h.status, results[0].Interface())
}
