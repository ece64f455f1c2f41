package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

// writeError writes the API error envelope from middleware that runs before
// any handler.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiv1.ErrorBody{Error: apiv1.ErrorDetail{Code: code, Message: message}})
}
