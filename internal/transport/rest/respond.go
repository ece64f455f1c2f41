package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, detail apiv1.ErrorDetail) {
	writeJSON(w, status, apiv1.ErrorBody{Error: detail})
}

// handleError maps a service error onto the API error envelope. Only
// unexpected errors are logged.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, status := apiv1.CodeFor(err)
	detail := apiv1.ErrorDetail{Code: code, Message: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		detail.Message = "validation failed"
		for _, fe := range verr.Errors {
			detail.Fields = append(detail.Fields, apiv1.FieldError{Field: fe.Field, Message: fe.Message})
		}
	}

	if code == apiv1.CodeInternal {
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		detail.Message = "internal server error"
	}

	writeError(w, status, detail)
}

// decodeJSON reads a bounded JSON body into dst. An empty body leaves dst
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// pathID parses the named route variable as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "invalid id")
	}
	return id, nil
}
