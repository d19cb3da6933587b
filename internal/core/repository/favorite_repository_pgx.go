package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviefave/moviefave/internal/core/domain"
)

// uniqueViolationCode is the PostgreSQL error code for unique-constraint
// violations (class 23, integrity constraint violation).
const uniqueViolationCode = "23505"

// PgxFavoriteRepository implements domain.FavoriteRepository using pgxpool.
type PgxFavoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository creates a new PgxFavoriteRepository.
func NewFavoriteRepository(pool *pgxpool.Pool) *PgxFavoriteRepository {
	return &PgxFavoriteRepository{pool: pool}
}

// Add upserts the movie and links it to the user in one statement, so a
// concurrent add of the same (user, movie) cannot observe a half-done
// state. The movie conflict updates the title only; release_date and
// poster_path keep their first-written values. The favorite conflict
// rewrites the key to itself so the statement always returns the
// relationship, existing or new.
func (r *PgxFavoriteRepository) Add(ctx context.Context, userID int64, movie domain.MovieUpsert) (*domain.FavoriteRow, error) {
	query := `
		WITH movie AS (
			INSERT INTO movies (tmdb_id, title, release_date, poster_path)
			VALUES ($2, $3, $4, $5)
			ON CONFLICT (tmdb_id) DO UPDATE SET title = EXCLUDED.title
			RETURNING id
		)
		INSERT INTO favorites (user_id, movie_id)
		SELECT $1, movie.id FROM movie
		ON CONFLICT (user_id, movie_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, movie_id
	`

	var row domain.FavoriteRow
	err := r.pool.QueryRow(ctx, query,
		userID, movie.TMDBID, movie.Title, movie.ReleaseDate, movie.PosterPath,
	).Scan(&row.UserID, &row.MovieID)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// ListByUser returns all movies the user has favorited.
func (r *PgxFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.MovieRow, error) {
	query := `
		SELECT m.id, m.tmdb_id, m.title, m.release_date, m.poster_path
		FROM favorites f
		JOIN movies m ON f.movie_id = m.id
		WHERE f.user_id = $1
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.MovieRow, 0)
	for rows.Next() {
		var m domain.MovieRow
		if err := rows.Scan(&m.ID, &m.TMDBID, &m.Title, &m.ReleaseDate, &m.PosterPath); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// Remove deletes the favorite matching the user and the movie with the
// given TMDB id. The movie row itself is kept; it is shared across users.
func (r *PgxFavoriteRepository) Remove(ctx context.Context, userID, tmdbID int64) error {
	query := `
		DELETE FROM favorites f
		USING movies m
		WHERE f.movie_id = m.id
		AND f.user_id = $1
		AND m.tmdb_id = $2
	`

	_, err := r.pool.Exec(ctx, query, userID, tmdbID)
	return err
}
