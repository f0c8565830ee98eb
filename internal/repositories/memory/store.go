// Package memory implements the transient storage variant. It behaves
// identically to the pgsql variant: relations are kept as separate
// pair-keyed sets rather than fields on the entities, ids are assigned
// sequentially, and constraint violations surface as the same error kinds.
package memory

import (
	"sync"

	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
)

type likeKey struct {
	filmID int
	userID int
}

type friendKey struct {
	userID   int
	friendID int
}

// Store is the single shared mutable resource of the transient variant.
// All repositories operate on it under one RWMutex; each public operation
// runs synchronously to completion.
type Store struct {
	mu sync.RWMutex

	films      map[int]domain.Film
	users      map[int]domain.User
	genres     []domain.Genre
	ratings    []domain.Rating
	filmGenres map[int][]int // film id -> genre ids, ascending
	likes      map[likeKey]struct{}
	friends    map[friendKey]struct{} // directed edges

	nextFilmID int
	nextUserID int
}

// NewStore builds an empty store seeded with the reference data the
// migrations install for the persistent variant.
func NewStore() *Store {
	return &Store{
		films: make(map[int]domain.Film),
		users: make(map[int]domain.User),
		genres: []domain.Genre{
			{ID: 1, Name: "Comedy"},
			{ID: 2, Name: "Drama"},
			{ID: 3, Name: "Cartoon"},
			{ID: 4, Name: "Thriller"},
			{ID: 5, Name: "Documentary"},
			{ID: 6, Name: "Action"},
		},
		ratings: []domain.Rating{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		},
		filmGenres: make(map[int][]int),
		likes:      make(map[likeKey]struct{}),
		friends:    make(map[friendKey]struct{}),
	}
}

func (s *Store) genreByID(id int) (domain.Genre, bool) {
	for _, g := range s.genres {
		if g.ID == id {
			return g, true
		}
	}
	return domain.Genre{}, false
}

func (s *Store) ratingByID(id int) (domain.Rating, bool) {
	for _, m := range s.ratings {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Rating{}, false
}

// NewRepositoryProvider wires the transient storage variant around one
// shared store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	store := NewStore()
	return portsrepo.RepositoryProvider{
		FilmRepo:   &MemFilmRepository{store: store},
		UserRepo:   &MemUserRepository{store: store},
		GenreRepo:  &MemGenreRepository{store: store},
		RatingRepo: &MemRatingRepository{store: store},
	}
}
