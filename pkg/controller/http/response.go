package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
	"github.com/secmon-lab/pathfinder/pkg/utils/errutil"
	"github.com/secmon-lab/pathfinder/pkg/utils/safe"
)

var (
	errBadRequest = errors.New("bad request")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// decodeJSON reads the request body into v and validates its struct tags
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(errBadRequest, "failed to decode request body", goerr.V("cause", err.Error()))
	}
	if err := validate.Struct(v); err != nil {
		return goerr.Wrap(errBadRequest, "invalid request body", goerr.V("cause", err.Error()))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// handleError maps domain errors to HTTP status codes
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, interfaces.ErrNotFound),
		errors.Is(err, usecase.ErrAssessmentMismatch):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}
