package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/movie-shelf/internal/domain"
	"github.com/msomdec/movie-shelf/internal/service"
)

// MovieHandler handles movie search and saved-list HTTP requests. All of
// its routes sit behind RequireAuth.
type MovieHandler struct {
	movies *service.MovieService
	search *service.SearchService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movies *service.MovieService, search *service.SearchService) *MovieHandler {
	return &MovieHandler{movies: movies, search: search}
}

// HandleSearch proxies a title search to the external provider.
// GET /api/movies/search?title=...
// Response: {"data":{"movies":[...],"totalResults":N}}
func (h *MovieHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")

	results, total, err := h.search.Search(r.Context(), title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Movie title is required.")
		case errors.Is(err, domain.ErrNoResults):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrUpstreamConfig):
			slog.Error("omdb credentials rejected")
			writeError(w, http.StatusInternalServerError, "Search provider is misconfigured.")
		default:
			slog.Error("search movies", "error", err)
			writeError(w, http.StatusBadGateway, "Search provider is unavailable. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, "Movies retrieved successfully", map[string]any{
		"movies":       toSearchResultDTOs(results),
		"totalResults": total,
	})
}

// HandleSave adds a movie to the authenticated user's saved list.
// POST /api/movies/save
// Request:  {"title":"...","year":"...","poster":"...","imdbID":"..."}
// Response: {"data":{"movie":{...}}}
func (h *MovieHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string  `json:"title"`
		Year   string  `json:"year"`
		Poster *string `json:"poster"`
		ImdbID string  `json:"imdbID"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user := UserFromContext(r.Context())
	movie, err := h.movies.Save(r.Context(), user.ID, service.SaveMovieInput{
		Title:  req.Title,
		Year:   req.Year,
		Poster: req.Poster,
		ImdbID: req.ImdbID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Title, year, and imdbID are required.")
		case errors.Is(err, domain.ErrAlreadySaved):
			writeError(w, http.StatusBadRequest, "Movie already saved to your list.")
		default:
			slog.Error("save movie", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, "Movie saved successfully", map[string]any{
		"movie": toMovieDTO(movie),
	})
}

// HandleList returns the authenticated user's saved movies.
// GET /api/movies/list
// Response: {"data":{"movies":[...],"count":N}}
func (h *MovieHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	movies, err := h.movies.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list saved movies", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, "Saved movies retrieved successfully", map[string]any{
		"movies": toMovieDTOs(movies),
		"count":  len(movies),
	})
}

// HandleRemove takes a movie out of the authenticated user's saved list.
// DELETE /api/movies/remove/{imdbID}
// Response: {"data":{}}
func (h *MovieHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	imdbID := r.PathValue("imdbID")

	if err := h.movies.Remove(r.Context(), user.ID, imdbID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Movie not found.")
		case errors.Is(err, domain.ErrNotSaved):
			writeError(w, http.StatusBadRequest, "Movie not in your saved list.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "imdbID is required.")
		default:
			slog.Error("remove movie", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, "Movie removed from your saved list successfully", map[string]any{})
}
