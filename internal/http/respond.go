package router

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError responds with the machine-readable error code from the admission
// taxonomy plus an optional human-readable message.
func writeError(w http.ResponseWriter, code int, errorCode, message string) {
	writeJSON(w, code, errorResponse{Error: errorCode, Message: message})
}
