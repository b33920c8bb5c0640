package handler

import (
	"net/http"

	"github.com/msomdec/movie-shelf/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Movie routes
// are protected; auth and health routes are not.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, movies *service.MovieService, search *service.SearchService) {
	authHandler := NewAuthHandler(auth)
	movieHandler := NewMovieHandler(movies, search)

	mux.HandleFunc("GET /health", HandleHealth)
	mux.HandleFunc("GET /{$}", HandleIndex)
	mux.HandleFunc("/", HandleNotFound)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)

	mux.Handle("GET /api/movies/search", RequireAuth(auth, http.HandlerFunc(movieHandler.HandleSearch)))
	mux.Handle("POST /api/movies/save", RequireAuth(auth, http.HandlerFunc(movieHandler.HandleSave)))
	mux.Handle("GET /api/movies/list", RequireAuth(auth, http.HandlerFunc(movieHandler.HandleList)))
	mux.Handle("DELETE /api/movies/remove/{imdbID}", RequireAuth(auth, http.HandlerFunc(movieHandler.HandleRemove)))
}
