package domain_test

import (
	"testing"
	"time"

	"github.com/filmorate/filmorate_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeGenres(t *testing.T) {
	film := domain.Film{
		Genres: []domain.Genre{{ID: 4}, {ID: 2}, {ID: 4}, {ID: 1}},
	}

	film.NormalizeGenres()

	assert.Equal(t, []domain.Genre{{ID: 1}, {ID: 2}, {ID: 4}}, film.Genres)
}

func TestNormalizeGenres_NilStaysNil(t *testing.T) {
	film := domain.Film{}

	film.NormalizeGenres()

	assert.Empty(t, film.Genres)
}

func TestMinReleaseDate(t *testing.T) {
	assert.Equal(t, time.Date(1895, 12, 28, 0, 0, 0, 0, time.UTC), domain.MinReleaseDate)
}
