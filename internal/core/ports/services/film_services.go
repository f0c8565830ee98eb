package services

import (
	"context"

	"github.com/filmorate/filmorate_app/internal/dto"
)

// FilmReaderSvc defines read operations for films
type FilmReaderSvc interface {
	// GetFilm retrieves a film by id, like count included.
	GetFilm(ctx context.Context, id int) (*dto.FilmResponse, error)

	// ListFilms retrieves every film.
	ListFilms(ctx context.Context) ([]dto.FilmResponse, error)

	// GetTopFilms retrieves at most count films by descending like count.
	GetTopFilms(ctx context.Context, count int) ([]dto.FilmResponse, error)
}

// FilmWriterSvc defines write operations for films
type FilmWriterSvc interface {
	// CreateFilm validates and persists a new film.
	CreateFilm(ctx context.Context, req dto.NewFilmRequest) (*dto.FilmResponse, error)

	// UpdateFilm validates and updates an existing film, replacing its
	// genre set.
	UpdateFilm(ctx context.Context, req dto.UpdateFilmRequest) (*dto.FilmResponse, error)

	// DeleteFilm removes a film by id.
	DeleteFilm(ctx context.Context, id int) error

	// DeleteFilms removes every film.
	DeleteFilms(ctx context.Context) error
}

// FilmLikeSvc defines like management operations
type FilmLikeSvc interface {
	// AddLike records userID's like on filmID.
	AddLike(ctx context.Context, filmID, userID int) error

	// RemoveLike removes userID's like from filmID.
	RemoveLike(ctx context.Context, filmID, userID int) error
}

// FilmSvcFacade combines all film-related service interfaces
type FilmSvcFacade interface {
	FilmReaderSvc
	FilmWriterSvc
	FilmLikeSvc
}
