package domain

import (
	"sort"
	"time"
)

// MinReleaseDate is the earliest admissible film release date, the day of the
// first public film screening.
var MinReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film represents a film in the domain. Identity is the id alone; Genres is
// kept deduplicated and ordered by ascending genre id at all times.
type Film struct {
	ID          int       `json:"id"` // Primary Key, assigned by the store on creation
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	Duration    int       `json:"duration"` // minutes
	Rating      Rating    `json:"mpa"`      // exactly one MPA rating, required
	Genres      []Genre   `json:"genres"`
}

// NormalizeGenres collapses duplicate genre ids and orders the set by
// ascending id. Call before handing the film to a repository.
func (f *Film) NormalizeGenres() {
	if len(f.Genres) == 0 {
		f.Genres = []Genre{}
		return
	}
	seen := make(map[int]struct{}, len(f.Genres))
	out := f.Genres[:0]
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	f.Genres = out
}
