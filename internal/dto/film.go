package dto

import (
	"github.com/filmorate/filmorate_app/internal/core/domain"
)

// RatingRef references an MPA rating by id in film requests.
type RatingRef struct {
	ID int `json:"id" binding:"required"`
}

// GenreRef references a genre by id in film requests.
type GenreRef struct {
	ID int `json:"id" binding:"required"`
}

// NewFilmRequest defines the data required to create a film. The service
// layer is the authoritative validator; binding tags only reject requests
// that are structurally unusable.
type NewFilmRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"releaseDate" binding:"required"`
	Duration    int        `json:"duration" binding:"required"`
	Mpa         RatingRef  `json:"mpa" binding:"required"`
	Genres      []GenreRef `json:"genres"`
}

// UpdateFilmRequest defines the data for updating a film. The id travels in
// the body, matching the public API.
type UpdateFilmRequest struct {
	ID          int        `json:"id" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"releaseDate" binding:"required"`
	Duration    int        `json:"duration" binding:"required"`
	Mpa         RatingRef  `json:"mpa" binding:"required"`
	Genres      []GenreRef `json:"genres"`
}

// FilmResponse is the external film representation, like count included.
type FilmResponse struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReleaseDate Date           `json:"releaseDate"`
	Duration    int            `json:"duration"`
	LikesCount  int            `json:"likesCount"`
	Mpa         domain.Rating  `json:"mpa"`
	Genres      []domain.Genre `json:"genres"`
}

// ToDomain maps the request to a domain film with the rating and genres
// carried as bare id references; the service resolves them to full records.
func (r NewFilmRequest) ToDomain() domain.Film {
	return filmFromParts(0, r.Name, r.Description, r.ReleaseDate, r.Duration, r.Mpa, r.Genres)
}

// ToDomain maps the update request to a domain film, keeping its id.
func (r UpdateFilmRequest) ToDomain() domain.Film {
	return filmFromParts(r.ID, r.Name, r.Description, r.ReleaseDate, r.Duration, r.Mpa, r.Genres)
}

func filmFromParts(id int, name, description string, release Date, duration int, mpa RatingRef, genres []GenreRef) domain.Film {
	gs := make([]domain.Genre, len(genres))
	for i, g := range genres {
		gs[i] = domain.Genre{ID: g.ID}
	}
	return domain.Film{
		ID:          id,
		Name:        name,
		Description: description,
		ReleaseDate: release.Time,
		Duration:    duration,
		Rating:      domain.Rating{ID: mpa.ID},
		Genres:      gs,
	}
}

// ToFilmResponse converts a domain film and its like count to the response
// shape.
func ToFilmResponse(f *domain.Film, likesCount int) FilmResponse {
	genres := f.Genres
	if genres == nil {
		genres = []domain.Genre{}
	}
	return FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: NewDate(f.ReleaseDate),
		Duration:    f.Duration,
		LikesCount:  likesCount,
		Mpa:         f.Rating,
		Genres:      genres,
	}
}
