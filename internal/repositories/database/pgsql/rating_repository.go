package pgsql

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	findAllRatingsQuery = `SELECT id, name FROM mpa_rating ORDER BY id`
	findRatingByIDQuery = `SELECT id, name FROM mpa_rating WHERE id = $1`
)

type PgxRatingRepository struct {
	BaseRepository[domain.Rating]
}

func newPgxRatingRepository(db *pgxpool.Pool) *PgxRatingRepository {
	return &PgxRatingRepository{
		BaseRepository: NewBaseRepository(db, ratingRowMapper),
	}
}

// Ensure PgxRatingRepository implements portsrepo.RatingRepository
var _ portsrepo.RatingRepository = (*PgxRatingRepository)(nil)

func ratingRowMapper(row pgx.CollectableRow) (domain.Rating, error) {
	var m domain.Rating
	err := row.Scan(&m.ID, &m.Name)
	return m, err
}

func (r *PgxRatingRepository) FindAll(ctx context.Context) ([]domain.Rating, error) {
	ratings, err := r.BaseRepository.FindAll(ctx, findAllRatingsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query mpa ratings: %w", err)
	}
	return ratings, nil
}

func (r *PgxRatingRepository) FindByID(ctx context.Context, id int) (*domain.Rating, error) {
	rating, err := r.FindOne(ctx, findRatingByIDQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find mpa rating by id %d: %w", id, err)
	}
	return rating, nil
}
