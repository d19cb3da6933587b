package domain

import "context"

// MovieRow represents a movie record from the local movie table.
// Movies are a shared catalog cache deduplicated by TMDB id; they are
// never deleted when favorites are removed.
type MovieRow struct {
	ID          int64
	TMDBID      int64
	Title       string
	ReleaseDate string
	PosterPath  string
}

// FavoriteRow represents the user↔movie favorite relationship.
type FavoriteRow struct {
	UserID  int64
	MovieID int64
}

// MovieUpsert carries the catalog fields supplied when a movie is favorited.
type MovieUpsert struct {
	TMDBID      int64
	Title       string
	ReleaseDate string
	PosterPath  string
}

// FavoriteRepository defines the data-access contract for favorites.
// Implementations live in internal/core/repository (Core layer).
type FavoriteRepository interface {
	// Add upserts the movie by TMDB id (a conflict updates the title
	// only) and links it to the user in a single atomic statement.
	// Adding an existing favorite is a no-op that returns the existing
	// relationship.
	Add(ctx context.Context, userID int64, movie MovieUpsert) (*FavoriteRow, error)

	// ListByUser returns all movies the user has favorited.
	// Order is unspecified.
	ListByUser(ctx context.Context, userID int64) ([]MovieRow, error)

	// Remove deletes the favorite matching the user and the movie with
	// the given TMDB id. Removing an absent favorite is a no-op.
	Remove(ctx context.Context, userID, tmdbID int64) error
}
