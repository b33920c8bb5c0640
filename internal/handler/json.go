package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON sends the standard response envelope: a success flag, a
// human-readable message, and an optional data payload.
func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := map[string]any{
		"success": status < 400,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a failure envelope with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, message, nil)
}

// maxBodyBytes caps request bodies; no legitimate payload comes close.
const maxBodyBytes = 1_048_576

// readJSON decodes the request body into the given destination. The
// body is capped at maxBodyBytes so clients cannot stream arbitrarily
// large payloads.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
