package domain

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddFavoriteRequest is the body of POST /favourite. The fields mirror
// what the catalog search returned for the movie being favorited.
type AddFavoriteRequest struct {
	TMDBID      int64  `json:"tmdb_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

// User is the public representation of a user. The password hash never
// leaves the Core layer.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// Movie is the public representation of a locally stored movie.
type Movie struct {
	ID          int64  `json:"id"`
	TMDBID      int64  `json:"tmdb_id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

// Favorite is the public representation of a favorite relationship.
type Favorite struct {
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
}
