package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/moviefave/moviefave/internal/core/domain"
	"github.com/moviefave/moviefave/middleware"
)

// FavoritesService implements the favorites business rules on top of
// the favorite repository. All operations are scoped to a user id that
// the caller has already authenticated.
type FavoritesService struct {
	favorites domain.FavoriteRepository
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(favorites domain.FavoriteRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites}
}

// Add marks the movie as a favorite of the user, creating the local
// movie row on first sight. Adding a movie that is already a favorite
// is a no-op returning the existing relationship.
func (s *FavoritesService) Add(ctx context.Context, userID int64, req domain.AddFavoriteRequest) (*domain.Favorite, error) {
	ctx, span := middleware.StartSpan(ctx, "favorites.add", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", userID),
		attribute.Int64("movie.tmdb_id", req.TMDBID),
	))
	defer span.End()

	if req.TMDBID <= 0 || req.Title == "" {
		return nil, fmt.Errorf("add favorite: missing tmdb_id or title: %w", ErrInvalidInput)
	}

	row, err := s.favorites.Add(ctx, userID, domain.MovieUpsert{
		TMDBID:      req.TMDBID,
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate,
		PosterPath:  req.PosterPath,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	span.AddEvent("favorite.added")

	return &domain.Favorite{UserID: row.UserID, MovieID: row.MovieID}, nil
}

// List returns the movies the user has favorited. Order is unspecified.
func (s *FavoritesService) List(ctx context.Context, userID int64) ([]domain.Movie, error) {
	ctx, span := middleware.StartSpan(ctx, "favorites.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	rows, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	movies := make([]domain.Movie, 0, len(rows))
	for _, r := range rows {
		movies = append(movies, domain.Movie{
			ID:          r.ID,
			TMDBID:      r.TMDBID,
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			PosterPath:  r.PosterPath,
		})
	}

	span.SetAttributes(attribute.Int("favorites.count", len(movies)))

	return movies, nil
}

// Remove unmarks the movie with the given TMDB id as a favorite of the
// user. Removing an absent favorite succeeds and changes nothing; the
// movie row itself is kept as shared catalog data.
func (s *FavoritesService) Remove(ctx context.Context, userID, tmdbID int64) error {
	ctx, span := middleware.StartSpan(ctx, "favorites.remove", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", userID),
		attribute.Int64("movie.tmdb_id", tmdbID),
	))
	defer span.End()

	if err := s.favorites.Remove(ctx, userID, tmdbID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("remove favorite: %w", err)
	}

	span.AddEvent("favorite.removed")

	return nil
}
