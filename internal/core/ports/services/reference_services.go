package services

import (
	"context"

	"github.com/filmorate/filmorate_app/internal/core/domain"
)

// GenreSvcFacade exposes the genre reference data.
type GenreSvcFacade interface {
	// ListGenres retrieves every genre ordered by ascending id.
	ListGenres(ctx context.Context) ([]domain.Genre, error)

	// GetGenre retrieves a genre by id or fails with apperrors.ErrNotFound.
	GetGenre(ctx context.Context, id int) (*domain.Genre, error)
}

// RatingSvcFacade exposes the MPA rating reference data.
type RatingSvcFacade interface {
	// ListRatings retrieves every rating ordered by ascending id.
	ListRatings(ctx context.Context) ([]domain.Rating, error)

	// GetRating retrieves a rating by id or fails with apperrors.ErrNotFound.
	GetRating(ctx context.Context, id int) (*domain.Rating, error)
}
