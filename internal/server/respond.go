// JSON response and error-mapping helpers.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wickers-data/catalog/pkg/types"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON response with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

// respondError maps an error to a JSON error body. Store sentinel errors
// get their natural HTTP status; everything else is a 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrTableNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrInvalidID), errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidFilter), errors.Is(err, types.ErrInvalidProduct),
		errors.Is(err, types.ErrInvalidStatus):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	s.respondJSON(w, status, errorBody{Error: err.Error()})
}

// respondErrorStatus writes a JSON error body with an explicit status.
func (s *Server) respondErrorStatus(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, errorBody{Error: msg})
}
