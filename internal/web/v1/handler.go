// Package v1 exposes the service over HTTP. Handlers parse input,
// delegate to the logic layer, and map outcomes to status codes.
// Internal error text never reaches the client.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/moviefave/moviefave/internal/catalog"
	"github.com/moviefave/moviefave/internal/core/domain"
	logicv1 "github.com/moviefave/moviefave/internal/logic/v1"
	"github.com/moviefave/moviefave/middleware"
)

// Handler groups the HTTP handlers for the API.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth      *logicv1.AuthService
	favorites *logicv1.FavoritesService
	catalog   *catalog.Client
}

// NewHandler creates a new Handler with the given services.
func NewHandler(auth *logicv1.AuthService, favorites *logicv1.FavoritesService, cat *catalog.Client) *Handler {
	return &Handler{auth: auth, favorites: favorites, catalog: cat}
}

// RegisterRoutes registers all API routes on the given router group.
// requireAuth gates the favorites routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
	rg.GET("/movies/search", h.SearchMovies)

	fav := rg.Group("/favourite", requireAuth)
	fav.POST("", h.AddFavorite)
	fav.GET("", h.ListFavorites)
	fav.DELETE("/:tmdb_id", h.RemoveFavorite)
}

// Register handles HTTP request for user registration.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		span.RecordError(err)
		logger.Error().Err(err).Msg("Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	span.SetAttributes(attribute.Bool("request.valid", true))

	user, err := h.auth.Register(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Msg("Registration failed")

		switch {
		case errors.Is(err, logicv1.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		case errors.Is(err, logicv1.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("Registration successful")
	c.JSON(http.StatusCreated, user)
}

// Login handles HTTP request for user login.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		span.RecordError(err)
		logger.Error().Err(err).Msg("Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	span.SetAttributes(attribute.Bool("request.valid", true))

	token, err := h.auth.Login(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Msg("Login failed")

		switch {
		// Don't reveal whether the user exists.
		case errors.Is(err, logicv1.ErrUserNotFound), errors.Is(err, logicv1.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	logger.Info().Msg("Login successful")
	c.JSON(http.StatusOK, domain.TokenResponse{Token: token})
}
