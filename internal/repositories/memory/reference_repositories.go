package memory

import (
	"context"

	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
)

type MemGenreRepository struct {
	store *Store
}

// Ensure MemGenreRepository implements portsrepo.GenreRepository
var _ portsrepo.GenreRepository = (*MemGenreRepository)(nil)

func (r *MemGenreRepository) FindAll(ctx context.Context) ([]domain.Genre, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	genres := make([]domain.Genre, len(s.genres))
	copy(genres, s.genres)
	return genres, nil
}

func (r *MemGenreRepository) FindByID(ctx context.Context, id int) (*domain.Genre, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	genre, ok := s.genreByID(id)
	if !ok {
		return nil, nil
	}
	return &genre, nil
}

func (r *MemGenreRepository) GetGenresByFilmID(ctx context.Context, filmID int) ([]domain.Genre, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filmWithGenres(filmID).Genres, nil
}

func (r *MemGenreRepository) GetGenresForFilms(ctx context.Context, filmIDs []int) (map[int][]domain.Genre, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	byFilm := make(map[int][]domain.Genre, len(filmIDs))
	for _, id := range filmIDs {
		if genres := s.filmWithGenres(id).Genres; len(genres) > 0 {
			byFilm[id] = genres
		}
	}
	return byFilm, nil
}

func (r *MemGenreRepository) ReplaceFilmGenres(ctx context.Context, filmID int, genres []domain.Genre) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.resolveGenreIDs(genres)
	if err != nil {
		return err
	}
	s.filmGenres[filmID] = ids
	return nil
}

type MemRatingRepository struct {
	store *Store
}

// Ensure MemRatingRepository implements portsrepo.RatingRepository
var _ portsrepo.RatingRepository = (*MemRatingRepository)(nil)

func (r *MemRatingRepository) FindAll(ctx context.Context) ([]domain.Rating, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := make([]domain.Rating, len(s.ratings))
	copy(ratings, s.ratings)
	return ratings, nil
}

func (r *MemRatingRepository) FindByID(ctx context.Context, id int) (*domain.Rating, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rating, ok := s.ratingByID(id)
	if !ok {
		return nil, nil
	}
	return &rating, nil
}
