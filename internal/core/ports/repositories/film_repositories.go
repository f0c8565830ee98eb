package repositories

import (
	"context"

	"github.com/filmorate/filmorate_app/internal/core/domain"
)

// FilmReader defines read operations for film data
type FilmReader interface {
	// GetFilm retrieves a specific film by id, genres included.
	// Returns nil (no error) when the id does not exist.
	GetFilm(ctx context.Context, id int) (*domain.Film, error)

	// GetAllFilms retrieves every film, genres loaded in one batch pass.
	GetAllFilms(ctx context.Context) ([]domain.Film, error)

	// GetMostPopularFilms returns at most count films ordered by descending
	// distinct like count, ties broken by ascending film id.
	GetMostPopularFilms(ctx context.Context, count int) ([]domain.Film, error)
}

// FilmWriter defines write operations for film data
type FilmWriter interface {
	// CreateFilm persists a new film together with its genre associations
	// and returns the film with its generated id set.
	CreateFilm(ctx context.Context, film domain.Film) (domain.Film, error)

	// UpdateFilm updates an existing film in place and fully replaces its
	// genre associations. Returns true if a row existed.
	UpdateFilm(ctx context.Context, film domain.Film) (bool, error)

	// DeleteFilm removes a film by id. Returns true if a row was removed.
	DeleteFilm(ctx context.Context, id int) (bool, error)

	// DeleteFilms removes every film and, by cascade, all like and genre
	// association rows.
	DeleteFilms(ctx context.Context) error
}

// FilmLikeManager defines operations over the likes relation
type FilmLikeManager interface {
	// AddLike records a like edge. Adding an existing pair is a no-op.
	AddLike(ctx context.Context, filmID, userID int) error

	// RemoveLike deletes a like edge. Returns true if the edge existed.
	RemoveLike(ctx context.Context, filmID, userID int) (bool, error)

	// GetLikesCount returns the number of distinct users with an active
	// like on the film.
	GetLikesCount(ctx context.Context, filmID int) (int, error)

	// GetLikesCounts counts likes for a whole batch of films in one pass,
	// keyed by film id. Films without likes are absent from the map.
	GetLikesCounts(ctx context.Context, filmIDs []int) (map[int]int, error)
}

// FilmRepositoryFacade combines all film-related repository interfaces
type FilmRepositoryFacade interface {
	FilmReader
	FilmWriter
	FilmLikeManager
}
