package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviefave/moviefave/internal/catalog"
	"github.com/moviefave/moviefave/internal/core/domain"
	logicv1 "github.com/moviefave/moviefave/internal/logic/v1"
	v1 "github.com/moviefave/moviefave/internal/web/v1"
	"github.com/moviefave/moviefave/middleware"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memUserRepo struct {
	nextID int64
	byMail map[string]*domain.UserRow
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byMail: make(map[string]*domain.UserRow)}
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.UserRow, error) {
	u, ok := r.byMail[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *memUserRepo) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	if _, ok := r.byMail[email]; ok {
		return 0, domain.ErrDuplicateEmail
	}
	u := &domain.UserRow{ID: r.nextID, Email: email, PasswordHash: passwordHash}
	r.nextID++
	r.byMail[email] = u
	return u.ID, nil
}

type memFavoriteRepo struct {
	nextID    int64
	movies    map[int64]*domain.MovieRow
	favorites map[[2]int64]bool
}

func newMemFavoriteRepo() *memFavoriteRepo {
	return &memFavoriteRepo{
		nextID:    1,
		movies:    make(map[int64]*domain.MovieRow),
		favorites: make(map[[2]int64]bool),
	}
}

func (r *memFavoriteRepo) Add(ctx context.Context, userID int64, movie domain.MovieUpsert) (*domain.FavoriteRow, error) {
	m, ok := r.movies[movie.TMDBID]
	if ok {
		m.Title = movie.Title
	} else {
		m = &domain.MovieRow{
			ID:          r.nextID,
			TMDBID:      movie.TMDBID,
			Title:       movie.Title,
			ReleaseDate: movie.ReleaseDate,
			PosterPath:  movie.PosterPath,
		}
		r.nextID++
		r.movies[movie.TMDBID] = m
	}
	r.favorites[[2]int64{userID, m.ID}] = true
	return &domain.FavoriteRow{UserID: userID, MovieID: m.ID}, nil
}

func (r *memFavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]domain.MovieRow, error) {
	out := make([]domain.MovieRow, 0)
	for _, m := range r.movies {
		if r.favorites[[2]int64{userID, m.ID}] {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memFavoriteRepo) Remove(ctx context.Context, userID, tmdbID int64) error {
	m, ok := r.movies[tmdbID]
	if !ok {
		return nil
	}
	delete(r.favorites, [2]int64{userID, m.ID})
	return nil
}

// ---------------------------------------------------------------------------
// Test server setup
// ---------------------------------------------------------------------------

func newTestRouter(t *testing.T, catalogURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := logicv1.NewTokenManager("test-secret", time.Hour)
	authSvc := logicv1.NewAuthService(newMemUserRepo(), tokens)
	favSvc := logicv1.NewFavoritesService(newMemFavoriteRepo())
	cat := catalog.New(catalogURL, "test-key", nil)

	handler := v1.NewHandler(authSvc, favSvc, cat)

	r := gin.New()
	handler.RegisterRoutes(r.Group(""), middleware.RequireAuth(tokens))
	return r
}

func doJSON(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRegisterLoginFavoritesFlow(t *testing.T) {
	r := newTestRouter(t, "http://catalog.invalid")

	// Register
	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotZero(t, user.ID)
	assert.NotContains(t, w.Body.String(), "password")

	// Login
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, w.Code)

	var tok domain.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.Token)

	// Empty favorites list
	w = doJSON(r, http.MethodGet, "/favourite", tok.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// Add a favorite
	w = doJSON(r, http.MethodPost, "/favourite", tok.Token, gin.H{
		"tmdb_id":      42,
		"title":        "Heat",
		"release_date": "1995-12-15",
		"poster_path":  "/heat.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var fav domain.Favorite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fav))
	assert.Equal(t, user.ID, fav.UserID)

	// List now contains movie 42
	w = doJSON(r, http.MethodGet, "/favourite", tok.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var movies []domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, int64(42), movies[0].TMDBID)
	assert.Equal(t, "Heat", movies[0].Title)

	// Remove it
	w = doJSON(r, http.MethodDelete, "/favourite/42", tok.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// Empty again
	w = doJSON(r, http.MethodGet, "/favourite", tok.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestRouter(t, "http://catalog.invalid")

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": "a@x.com", "password": "pw2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	r := newTestRouter(t, "http://catalog.invalid")

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	r := newTestRouter(t, "http://catalog.invalid")

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown user produce the same response.
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "a@x.com", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	wrongPW := w.Body.String()

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "nobody@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, wrongPW, w.Body.String())
}

func TestFavorites_RequireAuth(t *testing.T) {
	r := newTestRouter(t, "http://catalog.invalid")

	w := doJSON(r, http.MethodGet, "/favourite", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/favourite", "not-a-real-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	expired, err := logicv1.NewTokenManager("test-secret", -time.Minute).Generate(1)
	require.NoError(t, err)
	w = doJSON(r, http.MethodGet, "/favourite", expired, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddFavorite_InvalidBody(t *testing.T) {
	r := newTestRouter(t, "http://catalog.invalid")
	token := registerAndLogin(t, r, "a@x.com", "pw1")

	w := doJSON(r, http.MethodPost, "/favourite", token, gin.H{"title": "Heat"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveFavorite_InvalidID(t *testing.T) {
	r := newTestRouter(t, "http://catalog.invalid")
	token := registerAndLogin(t, r, "a@x.com", "pw1")

	w := doJSON(r, http.MethodDelete, "/favourite/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchMovies(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "heat", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results": [{"id": 949, "title": "Heat", "release_date": "1995-12-15"}]}`))
	}))
	defer upstream.Close()

	r := newTestRouter(t, upstream.URL)

	w := doJSON(r, http.MethodGet, "/movies/search?query=heat", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var movies []catalog.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, int64(949), movies[0].ID)
}

func TestSearchMovies_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_message": "kaboom"}`))
	}))
	defer upstream.Close()

	r := newTestRouter(t, upstream.URL)

	w := doJSON(r, http.MethodGet, "/movies/search?query=heat", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Upstream detail must not leak to the client.
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func registerAndLogin(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code)

	var tok domain.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.Token)
	return tok.Token
}
