package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/moviefave/moviefave/internal/core/domain"
	logicv1 "github.com/moviefave/moviefave/internal/logic/v1"
	"github.com/moviefave/moviefave/middleware"
)

// AddFavorite handles POST /favourite.
func (h *Handler) AddFavorite(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	userID := middleware.UserID(c)

	var req domain.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		span.RecordError(err)
		logger.Error().Err(err).Msg("Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "tmdb_id and title are required"})
		return
	}

	span.SetAttributes(attribute.Bool("request.valid", true))

	favorite, err := h.favorites.Add(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Int64("user_id", userID).Msg("Add favorite failed")

		switch {
		case errors.Is(err, logicv1.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "tmdb_id and title are required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	logger.Info().
		Int64("user_id", userID).
		Int64("tmdb_id", req.TMDBID).
		Msg("Favorite added")
	c.JSON(http.StatusCreated, favorite)
}

// ListFavorites handles GET /favourite.
func (h *Handler) ListFavorites(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	userID := middleware.UserID(c)

	movies, err := h.favorites.List(ctx, userID)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Int64("user_id", userID).Msg("List favorites failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, movies)
}

// RemoveFavorite handles DELETE /favourite/:tmdb_id.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	userID := middleware.UserID(c)

	tmdbID, err := strconv.ParseInt(c.Param("tmdb_id"), 10, 64)
	if err != nil || tmdbID <= 0 {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tmdb_id"})
		return
	}

	if err := h.favorites.Remove(ctx, userID, tmdbID); err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Int64("user_id", userID).Msg("Remove favorite failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	logger.Info().
		Int64("user_id", userID).
		Int64("tmdb_id", tmdbID).
		Msg("Favorite removed")
	c.Status(http.StatusNoContent)
}
