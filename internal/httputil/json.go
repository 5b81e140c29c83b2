package httputil

import (
	"encoding/json"
	"net/http"
)

// MakeJSONResponse writes a JSON response with the given status code on a
// plain net/http ResponseWriter. Used by endpoints served outside Gin, such
// as the metrics server health check.
func MakeJSONResponse(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
