package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/thenoetrevino/lanes/internal/models"
	boardservice "github.com/thenoetrevino/lanes/internal/services/board"
)

// maxBodyBytes bounds request bodies; descriptions are the largest field
const maxBodyBytes = 64 << 10

// errBadRequest marks malformed requests rejected before reaching a service
var errBadRequest = errors.New("bad request")

// errorResponse is the JSON body of every error reply
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// statusFor maps an error onto its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTarget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, boardservice.ErrExportDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError replies with the status matching err. Server errors are logged
// and their details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()),
			"error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// decodeJSON reads exactly one JSON object into v. Fields v does not declare
// are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", errBadRequest)
	}
	return nil
}

// pathID parses an integer route variable. Whether the ID resolves is up to
// the service, so zero and negative IDs pass through.
func pathID(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, name, raw)
	}
	return id, nil
}
