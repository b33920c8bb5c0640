package handler

import (
	"net/http"
	"time"
)

// HandleHealth responds with a 200 OK and a JSON body indicating the
// server is healthy.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Server is running successfully", map[string]string{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
