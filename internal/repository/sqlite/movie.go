package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/movie-shelf/internal/domain"
)

// MovieRepository implements domain.MovieRepository using SQLite. The
// catalog lives in the movies table (imdb_id UNIQUE); membership is a
// saved_movies join row per (movie, user), UNIQUE on the pair.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new SQLite-backed MovieRepository.
func NewMovieRepository(db *DB) *MovieRepository {
	return &MovieRepository{db: db.SqlDB}
}

func (r *MovieRepository) GetByImdbID(ctx context.Context, imdbID string) (*domain.Movie, error) {
	movie := &domain.Movie{}
	var poster sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, year, poster, imdb_id, created_at, updated_at
		 FROM movies WHERE imdb_id = ?`, imdbID,
	).Scan(&movie.ID, &movie.Title, &movie.Year, &poster, &movie.ImdbID, &movie.CreatedAt, &movie.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query movie by imdb id: %w", err)
	}
	if poster.Valid {
		movie.Poster = &poster.String
	}
	return movie, nil
}

// Create inserts the movie and its first membership row in one
// transaction, so a created movie is never observable without a saver.
func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie, firstSaverID int64) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var poster sql.NullString
	if movie.Poster != nil {
		poster = sql.NullString{String: *movie.Poster, Valid: true}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO movies (title, year, poster, imdb_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		movie.Title, movie.Year, poster, movie.ImdbID, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateMovie
		}
		return fmt.Errorf("insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO saved_movies (movie_id, user_id, created_at) VALUES (?, ?, ?)`,
		id, firstSaverID, now,
	); err != nil {
		return fmt.Errorf("insert first saver: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	movie.ID = id
	movie.CreatedAt = now
	movie.UpdatedAt = now
	return nil
}

func (r *MovieRepository) IsSavedBy(ctx context.Context, movieID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_movies WHERE movie_id = ? AND user_id = ?)`,
		movieID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query membership: %w", err)
	}
	return exists, nil
}

// AddSaver reports ErrNotFound if the movie (or user) row no longer
// exists, e.g. the movie was garbage collected under a concurrent
// remove.
func (r *MovieRepository) AddSaver(ctx context.Context, movieID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_movies (movie_id, user_id, created_at) VALUES (?, ?, ?)`,
		movieID, userID, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrAlreadySaved
		}
		if isForeignKeyError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert saver: %w", err)
	}
	return nil
}

func (r *MovieRepository) RemoveSaver(ctx context.Context, movieID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_movies WHERE movie_id = ? AND user_id = ?`,
		movieID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete saver: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotSaved
	}
	return nil
}

func (r *MovieRepository) SaverCount(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_movies WHERE movie_id = ?`, movieID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count savers: %w", err)
	}
	return count, nil
}

func (r *MovieRepository) Delete(ctx context.Context, movieID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, movieID)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

// ListSavedBy orders by the membership rowid, i.e. the order in which
// the user saved each movie.
func (r *MovieRepository) ListSavedBy(ctx context.Context, userID int64) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.year, m.poster, m.imdb_id, m.created_at, m.updated_at
		 FROM movies m
		 JOIN saved_movies sm ON sm.movie_id = m.id
		 WHERE sm.user_id = ?
		 ORDER BY sm.id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query saved movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var movie domain.Movie
		var poster sql.NullString
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Year, &poster,
			&movie.ImdbID, &movie.CreatedAt, &movie.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		if poster.Valid {
			movie.Poster = &poster.String
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}
