package services

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
)

type GenreService struct {
	genreRepo portsrepo.GenreRepository
}

func NewGenreService(genreRepo portsrepo.GenreRepository) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

func (s *GenreService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := s.genreRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	if genres == nil {
		return []domain.Genre{}, nil
	}
	return genres, nil
}

func (s *GenreService) GetGenre(ctx context.Context, id int) (*domain.Genre, error) {
	genre, err := s.genreRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	if genre == nil {
		return nil, fmt.Errorf("genre with id %d: %w", id, apperrors.ErrNotFound)
	}
	return genre, nil
}
