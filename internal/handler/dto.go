package handler

import (
	"time"

	"github.com/msomdec/movie-shelf/internal/domain"
	"github.com/msomdec/movie-shelf/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// MovieDTO is the JSON representation of a saved movie.
type MovieDTO struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Year   string  `json:"year"`
	Poster *string `json:"poster"`
	ImdbID string  `json:"imdbID"`
}

func toMovieDTO(m *domain.Movie) MovieDTO {
	return MovieDTO{
		ID:     m.ID,
		Title:  m.Title,
		Year:   m.Year,
		Poster: m.Poster,
		ImdbID: m.ImdbID,
	}
}

func toMovieDTOs(movies []domain.Movie) []MovieDTO {
	dtos := make([]MovieDTO, len(movies))
	for i := range movies {
		dtos[i] = toMovieDTO(&movies[i])
	}
	return dtos
}

// SearchResultDTO is the JSON representation of an external search hit.
type SearchResultDTO struct {
	Title  string  `json:"title"`
	Year   string  `json:"year"`
	Poster *string `json:"poster"`
	ImdbID string  `json:"imdbID"`
}

func toSearchResultDTOs(results []service.MovieResult) []SearchResultDTO {
	dtos := make([]SearchResultDTO, len(results))
	for i, r := range results {
		dtos[i] = SearchResultDTO{
			Title:  r.Title,
			Year:   r.Year,
			Poster: r.Poster,
			ImdbID: r.ImdbID,
		}
	}
	return dtos
}
