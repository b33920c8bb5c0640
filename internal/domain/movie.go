package domain

import (
	"context"
	"time"
)

// Movie is a catalog entry keyed by its IMDb identifier. A single record
// is shared by every user who saves it; the saved_movies membership rows
// track who has it in their list.
type Movie struct {
	ID        int64
	Title     string
	Year      string
	Poster    *string
	ImdbID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovieRepository defines persistence operations for the shared movie
// catalog and its per-user membership.
type MovieRepository interface {
	// GetByImdbID returns the catalog entry for the given IMDb ID, or
	// ErrNotFound.
	GetByImdbID(ctx context.Context, imdbID string) (*Movie, error)

	// Create inserts a new movie together with its first membership row.
	// Returns ErrDuplicateMovie if a record with the same IMDb ID already
	// exists (e.g. a concurrent saver won the create race).
	Create(ctx context.Context, movie *Movie, firstSaverID int64) error

	// IsSavedBy reports whether the user has the movie in their list.
	IsSavedBy(ctx context.Context, movieID, userID int64) (bool, error)

	// AddSaver adds the user to the movie's membership. Returns
	// ErrAlreadySaved if the membership row already exists.
	AddSaver(ctx context.Context, movieID, userID int64) error

	// RemoveSaver removes the user from the movie's membership. Returns
	// ErrNotSaved if no such membership row exists.
	RemoveSaver(ctx context.Context, movieID, userID int64) error

	// SaverCount returns the size of the movie's membership.
	SaverCount(ctx context.Context, movieID int64) (int64, error)

	// Delete removes the movie and, via cascade, any remaining
	// membership rows.
	Delete(ctx context.Context, movieID int64) error

	// ListSavedBy returns every movie in the user's list, ordered by
	// when the user saved them.
	ListSavedBy(ctx context.Context, userID int64) ([]Movie, error)
}
