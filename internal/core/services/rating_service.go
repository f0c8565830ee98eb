package services

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
)

type RatingService struct {
	ratingRepo portsrepo.RatingRepository
}

func NewRatingService(ratingRepo portsrepo.RatingRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo}
}

func (s *RatingService) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	ratings, err := s.ratingRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	if ratings == nil {
		return []domain.Rating{}, nil
	}
	return ratings, nil
}

func (s *RatingService) GetRating(ctx context.Context, id int) (*domain.Rating, error) {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get mpa rating: %w", err)
	}
	if rating == nil {
		return nil, fmt.Errorf("mpa rating with id %d: %w", id, apperrors.ErrNotFound)
	}
	return rating, nil
}
