package pgsql

import (
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the persistent storage variant.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	genreRepo := newPgxGenreRepository(dbPool)
	ratingRepo := newPgxRatingRepository(dbPool)
	filmRepo := newPgxFilmRepository(dbPool, genreRepo)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		FilmRepo:   filmRepo,
		UserRepo:   userRepo,
		GenreRepo:  genreRepo,
		RatingRepo: ratingRepo,
	}
}
