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
	findAllGenresQuery  = `SELECT id, name FROM genre ORDER BY id`
	findGenreByIDQuery  = `SELECT id, name FROM genre WHERE id = $1`
	genresByFilmIDQuery = `
	SELECT g.id, g.name
	FROM genre AS g
	JOIN film_genre AS fg ON g.id = fg.genre_id
	WHERE fg.film_id = $1
	ORDER BY g.id`
	genresForFilmsQuery = `
	SELECT g.id, g.name, fg.film_id
	FROM genre AS g
	JOIN film_genre AS fg ON g.id = fg.genre_id
	WHERE fg.film_id = ANY($1)
	ORDER BY fg.film_id, g.id`
	clearFilmGenresQuery = `DELETE FROM film_genre WHERE film_id = $1`
	addFilmGenreQuery    = `INSERT INTO film_genre (film_id, genre_id) VALUES ($1, $2)`
)

type PgxGenreRepository struct {
	BaseRepository[domain.Genre]
}

func newPgxGenreRepository(db *pgxpool.Pool) *PgxGenreRepository {
	return &PgxGenreRepository{
		BaseRepository: NewBaseRepository(db, genreRowMapper),
	}
}

// Ensure PgxGenreRepository implements portsrepo.GenreRepository
var _ portsrepo.GenreRepository = (*PgxGenreRepository)(nil)

func genreRowMapper(row pgx.CollectableRow) (domain.Genre, error) {
	var g domain.Genre
	err := row.Scan(&g.ID, &g.Name)
	return g, err
}

func (r *PgxGenreRepository) FindAll(ctx context.Context) ([]domain.Genre, error) {
	genres, err := r.BaseRepository.FindAll(ctx, findAllGenresQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	return genres, nil
}

func (r *PgxGenreRepository) FindByID(ctx context.Context, id int) (*domain.Genre, error) {
	genre, err := r.FindOne(ctx, findGenreByIDQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find genre by id %d: %w", id, err)
	}
	return genre, nil
}

func (r *PgxGenreRepository) GetGenresByFilmID(ctx context.Context, filmID int) ([]domain.Genre, error) {
	genres, err := r.BaseRepository.FindAll(ctx, genresByFilmIDQuery, filmID)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres for film %d: %w", filmID, err)
	}
	return genres, nil
}

func (r *PgxGenreRepository) GetGenresForFilms(ctx context.Context, filmIDs []int) (map[int][]domain.Genre, error) {
	rows, err := r.db.Query(ctx, genresForFilmsQuery, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres for films: %w", translateError(err))
	}
	defer rows.Close()

	byFilm := make(map[int][]domain.Genre)
	for rows.Next() {
		var g domain.Genre
		var filmID int
		if err := rows.Scan(&g.ID, &g.Name, &filmID); err != nil {
			return nil, fmt.Errorf("failed to scan genre row: %w", err)
		}
		byFilm[filmID] = append(byFilm[filmID], g)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating genre rows: %w", rows.Err())
	}
	return byFilm, nil
}

// ReplaceFilmGenres clears every association for the film and bulk-inserts
// the new set. The two statements are not wrapped in a transaction;
// concurrent replacements of the same film's genres can interleave.
func (r *PgxGenreRepository) ReplaceFilmGenres(ctx context.Context, filmID int, genres []domain.Genre) error {
	if _, err := r.Mutate(ctx, clearFilmGenresQuery, filmID); err != nil {
		return fmt.Errorf("failed to clear genres for film %d: %w", filmID, err)
	}
	if len(genres) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, g := range genres {
		batch.Queue(addFilmGenreQuery, filmID, g.ID)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range genres {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert genres for film %d: %w", filmID, translateError(err))
		}
	}
	return nil
}
