package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
)

type MemFilmRepository struct {
	store *Store
}

// Ensure MemFilmRepository implements portsrepo.FilmRepositoryFacade
var _ portsrepo.FilmRepositoryFacade = (*MemFilmRepository)(nil)

func (r *MemFilmRepository) CreateFilm(ctx context.Context, film domain.Film) (domain.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ratingByID(film.Rating.ID); !ok {
		return domain.Film{}, fmt.Errorf("rating %d referenced by film: %w", film.Rating.ID, apperrors.ErrDuplicate)
	}
	genreIDs, err := s.resolveGenreIDs(film.Genres)
	if err != nil {
		return domain.Film{}, err
	}

	s.nextFilmID++
	film.ID = s.nextFilmID
	s.storeFilm(film, genreIDs)
	return s.filmWithGenres(film.ID), nil
}

func (r *MemFilmRepository) GetFilm(ctx context.Context, id int) (*domain.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.films[id]; !ok {
		return nil, nil
	}
	film := s.filmWithGenres(id)
	return &film, nil
}

func (r *MemFilmRepository) GetAllFilms(ctx context.Context) ([]domain.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	films := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, s.filmWithGenres(id))
	}
	return films, nil
}

func (r *MemFilmRepository) UpdateFilm(ctx context.Context, film domain.Film) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return false, nil
	}
	if _, ok := s.ratingByID(film.Rating.ID); !ok {
		return false, fmt.Errorf("rating %d referenced by film: %w", film.Rating.ID, apperrors.ErrDuplicate)
	}
	genreIDs, err := s.resolveGenreIDs(film.Genres)
	if err != nil {
		return false, err
	}
	s.storeFilm(film, genreIDs)
	return true, nil
}

func (r *MemFilmRepository) DeleteFilm(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return false, nil
	}
	delete(s.films, id)
	s.cascadeFilmDelete(id)
	return true, nil
}

func (r *MemFilmRepository) DeleteFilms(ctx context.Context) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.films {
		s.cascadeFilmDelete(id)
	}
	s.films = make(map[int]domain.Film)
	return nil
}

func (r *MemFilmRepository) AddLike(ctx context.Context, filmID, userID int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Both endpoints must exist, mirroring the foreign keys on the likes
	// table of the persistent variant.
	if _, ok := s.films[filmID]; !ok {
		return fmt.Errorf("film %d referenced by like: %w", filmID, apperrors.ErrDuplicate)
	}
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("user %d referenced by like: %w", userID, apperrors.ErrDuplicate)
	}

	// Set insert: re-adding an existing pair is a no-op, mirroring the
	// composite-key constraint of the persistent variant.
	s.likes[likeKey{filmID: filmID, userID: userID}] = struct{}{}
	return nil
}

func (r *MemFilmRepository) RemoveLike(ctx context.Context, filmID, userID int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{filmID: filmID, userID: userID}
	if _, ok := s.likes[key]; !ok {
		return false, nil
	}
	delete(s.likes, key)
	return true, nil
}

func (r *MemFilmRepository) GetLikesCount(ctx context.Context, filmID int) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.likesCountLocked(filmID), nil
}

func (r *MemFilmRepository) GetLikesCounts(ctx context.Context, filmIDs []int) (map[int]int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int, len(filmIDs))
	for _, id := range filmIDs {
		if c := s.likesCountLocked(id); c > 0 {
			counts[id] = c
		}
	}
	return counts, nil
}

func (r *MemFilmRepository) GetMostPopularFilms(ctx context.Context, count int) ([]domain.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	// Descending like count, ties broken by ascending film id; same rule as
	// the persistent variant's ranking query.
	sort.Slice(ids, func(i, j int) bool {
		li, lj := s.likesCountLocked(ids[i]), s.likesCountLocked(ids[j])
		if li != lj {
			return li > lj
		}
		return ids[i] < ids[j]
	})

	if count < len(ids) {
		ids = ids[:count]
	}
	films := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, s.filmWithGenres(id))
	}
	return films, nil
}

// Helpers below require the store mutex to be held.

func (s *Store) storeFilm(film domain.Film, genreIDs []int) {
	film.Genres = nil // genres live in the association arena
	s.films[film.ID] = film
	s.filmGenres[film.ID] = genreIDs
}

// resolveGenreIDs validates the referenced genre ids and returns them in
// ascending order. A genre listed twice fails the same way the composite
// primary key on the association table does; callers are expected to hand
// in a normalized set.
func (s *Store) resolveGenreIDs(genres []domain.Genre) ([]int, error) {
	seen := make(map[int]struct{}, len(genres))
	ids := make([]int, 0, len(genres))
	for _, g := range genres {
		if _, ok := s.genreByID(g.ID); !ok {
			return nil, fmt.Errorf("genre %d referenced by film: %w", g.ID, apperrors.ErrDuplicate)
		}
		if _, dup := seen[g.ID]; dup {
			return nil, fmt.Errorf("genre %d listed twice for film: %w", g.ID, apperrors.ErrDuplicate)
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *Store) filmWithGenres(id int) domain.Film {
	film := s.films[id]
	genreIDs := s.filmGenres[id]
	genres := make([]domain.Genre, 0, len(genreIDs))
	for _, gid := range genreIDs {
		if g, ok := s.genreByID(gid); ok {
			genres = append(genres, g)
		}
	}
	film.Genres = genres
	return film
}

func (s *Store) likesCountLocked(filmID int) int {
	count := 0
	for key := range s.likes {
		if key.filmID == filmID {
			count++
		}
	}
	return count
}

func (s *Store) cascadeFilmDelete(filmID int) {
	delete(s.filmGenres, filmID)
	for key := range s.likes {
		if key.filmID == filmID {
			delete(s.likes, key)
		}
	}
}
