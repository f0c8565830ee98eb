package repositories

import (
	"context"

	"github.com/filmorate/filmorate_app/internal/core/domain"
)

// GenreRepository defines operations for the genre reference table and the
// film-genre association.
type GenreRepository interface {
	// FindAll retrieves every genre ordered by ascending id.
	FindAll(ctx context.Context) ([]domain.Genre, error)

	// FindByID retrieves a genre by id. Returns nil (no error) when the id
	// does not exist.
	FindByID(ctx context.Context, id int) (*domain.Genre, error)

	// GetGenresByFilmID returns the film's genres ordered by ascending id.
	GetGenresByFilmID(ctx context.Context, filmID int) ([]domain.Genre, error)

	// GetGenresForFilms loads genres for a whole batch of films in one pass
	// and buckets them by film id.
	GetGenresForFilms(ctx context.Context, filmIDs []int) (map[int][]domain.Genre, error)

	// ReplaceFilmGenres removes every current association for the film and
	// inserts the given set. An empty set clears all associations. The two
	// steps are not wrapped in a transaction; a concurrent replacement of
	// the same film's genres can interleave.
	ReplaceFilmGenres(ctx context.Context, filmID int, genres []domain.Genre) error
}

// RatingRepository defines read operations for the MPA rating reference table.
type RatingRepository interface {
	// FindAll retrieves every rating ordered by ascending id.
	FindAll(ctx context.Context) ([]domain.Rating, error)

	// FindByID retrieves a rating by id. Returns nil (no error) when the id
	// does not exist.
	FindByID(ctx context.Context, id int) (*domain.Rating, error)
}
