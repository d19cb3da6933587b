package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/moviefave/moviefave/internal/catalog"
	"github.com/moviefave/moviefave/middleware"
)

// SearchMovies handles GET /movies/search. The query is forwarded to
// the external catalog verbatim and the result list is returned as-is.
func (h *Handler) SearchMovies(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	query := c.Query("query")

	movies, err := h.catalog.Search(ctx, query)
	if err != nil {
		span.RecordError(err)

		var upstream *catalog.UpstreamError
		if errors.As(err, &upstream) {
			logger.Error().
				Err(err).
				Int("upstream_status", upstream.Status).
				Msg("Catalog search failed")
		} else {
			logger.Error().Err(err).Msg("Catalog search failed")
		}

		// Upstream detail stays in the logs.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "movie search failed"})
		return
	}

	c.JSON(http.StatusOK, movies)
}
