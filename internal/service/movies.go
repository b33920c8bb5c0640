package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/movie-shelf/internal/domain"
)

// SaveMovieInput carries the fields needed to save a movie to a list.
type SaveMovieInput struct {
	Title  string
	Year   string
	Poster *string
	ImdbID string
}

// MovieService manages the shared movie catalog and each user's saved
// list. Catalog entries are created lazily on first save, deduplicated
// by IMDb ID, and deleted again once the last saver removes them.
type MovieService struct {
	movies domain.MovieRepository
}

// NewMovieService creates a new MovieService.
func NewMovieService(movies domain.MovieRepository) *MovieService {
	return &MovieService{movies: movies}
}

// Save adds a movie to the user's list. The catalog entry is shared: if
// another user already saved the same IMDb ID, only a membership row is
// added. Saving a movie twice returns ErrAlreadySaved without mutation.
func (s *MovieService) Save(ctx context.Context, userID int64, in SaveMovieInput) (*domain.Movie, error) {
	if in.Title == "" || in.Year == "" || in.ImdbID == "" {
		return nil, fmt.Errorf("%w: title, year, and imdbID are required", domain.ErrInvalidInput)
	}

	movie, err := s.movies.GetByImdbID(ctx, in.ImdbID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get movie: %w", err)
	}

	if movie == nil {
		created := &domain.Movie{
			Title:  in.Title,
			Year:   in.Year,
			Poster: in.Poster,
			ImdbID: in.ImdbID,
		}
		err := s.movies.Create(ctx, created, userID)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrDuplicateMovie) {
			return nil, fmt.Errorf("create movie: %w", err)
		}
		// Lost the create race: a concurrent saver inserted this IMDb ID
		// first. Retry once through the add-membership path.
		movie, err = s.movies.GetByImdbID(ctx, in.ImdbID)
		if err != nil {
			return nil, fmt.Errorf("get movie after create race: %w", err)
		}
	}

	saved, err := s.movies.IsSavedBy(ctx, movie.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if saved {
		return nil, domain.ErrAlreadySaved
	}

	if err := s.movies.AddSaver(ctx, movie.ID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The last saver removed the movie between our lookup and
			// the membership insert. Recreate it, the mirror of the
			// create-race retry above.
			created := &domain.Movie{
				Title:  in.Title,
				Year:   in.Year,
				Poster: in.Poster,
				ImdbID: in.ImdbID,
			}
			if err := s.movies.Create(ctx, created, userID); err != nil {
				return nil, fmt.Errorf("recreate movie after remove race: %w", err)
			}
			return created, nil
		}
		return nil, err
	}
	return movie, nil
}

// List returns every movie in the user's saved list, in save order.
func (s *MovieService) List(ctx context.Context, userID int64) ([]domain.Movie, error) {
	return s.movies.ListSavedBy(ctx, userID)
}

// Remove takes a movie out of the user's list. When the last saver
// leaves, the catalog entry is deleted entirely so orphaned records
// don't accumulate.
func (s *MovieService) Remove(ctx context.Context, userID int64, imdbID string) error {
	if imdbID == "" {
		return fmt.Errorf("%w: imdbID is required", domain.ErrInvalidInput)
	}

	movie, err := s.movies.GetByImdbID(ctx, imdbID)
	if err != nil {
		return err
	}

	saved, err := s.movies.IsSavedBy(ctx, movie.ID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !saved {
		return domain.ErrNotSaved
	}

	if err := s.movies.RemoveSaver(ctx, movie.ID, userID); err != nil {
		return err
	}

	count, err := s.movies.SaverCount(ctx, movie.ID)
	if err != nil {
		return fmt.Errorf("count savers: %w", err)
	}
	if count == 0 {
		if err := s.movies.Delete(ctx, movie.ID); err != nil {
			return fmt.Errorf("delete orphaned movie: %w", err)
		}
	}
	return nil
}
