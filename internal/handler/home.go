package handler

import "net/http"

// HandleIndex describes the API surface at the root path.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Movie Shelf API", map[string]any{
		"endpoints": map[string]any{
			"auth": map[string]string{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
			},
			"movies": map[string]string{
				"search": "GET /api/movies/search?title=<movie_title>",
				"save":   "POST /api/movies/save",
				"list":   "GET /api/movies/list",
				"remove": "DELETE /api/movies/remove/{imdbID}",
			},
		},
	})
}

// HandleNotFound is the JSON fallback for unknown routes.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
