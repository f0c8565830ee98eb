package pgsql

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectFilmWithMpa = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration,
	       f.rating_id, mr.name AS mpa_name
	FROM films AS f
	JOIN mpa_rating AS mr ON f.rating_id = mr.id`

const (
	findAllFilmsQuery   = selectFilmWithMpa + ` ORDER BY f.id`
	findFilmByIDQuery   = selectFilmWithMpa + ` WHERE f.id = $1`
	insertFilmQuery     = `INSERT INTO films (name, description, release_date, duration, rating_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	updateFilmQuery     = `UPDATE films SET name = $1, description = $2, release_date = $3, duration = $4, rating_id = $5 WHERE id = $6`
	deleteFilmByIDQuery = `DELETE FROM films WHERE id = $1`
	deleteAllFilmsQuery = `DELETE FROM films`

	addLikeQuery        = `INSERT INTO likes (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	removeLikeQuery     = `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`
	getLikesCountQuery  = `SELECT COUNT(user_id) FROM likes WHERE film_id = $1`
	getLikesCountsQuery = `SELECT film_id, COUNT(user_id) FROM likes WHERE film_id = ANY($1) GROUP BY film_id`

	// Ties on like count are broken by ascending film id so the ranking is
	// deterministic across backends.
	mostPopularFilmsQuery = selectFilmWithMpa + `
	LEFT JOIN likes AS l ON f.id = l.film_id
	GROUP BY f.id, mr.name
	ORDER BY COUNT(DISTINCT l.user_id) DESC, f.id
	LIMIT $1`
)

type PgxFilmRepository struct {
	BaseRepository[domain.Film]
	genreRepo portsrepo.GenreRepository
}

func newPgxFilmRepository(db *pgxpool.Pool, genreRepo portsrepo.GenreRepository) *PgxFilmRepository {
	return &PgxFilmRepository{
		BaseRepository: NewBaseRepository(db, filmRowMapper),
		genreRepo:      genreRepo,
	}
}

// Ensure PgxFilmRepository implements portsrepo.FilmRepositoryFacade
var _ portsrepo.FilmRepositoryFacade = (*PgxFilmRepository)(nil)

func filmRowMapper(row pgx.CollectableRow) (domain.Film, error) {
	var f domain.Film
	err := row.Scan(&f.ID, &f.Name, &f.Description, &f.ReleaseDate, &f.Duration,
		&f.Rating.ID, &f.Rating.Name)
	return f, err
}

func (r *PgxFilmRepository) CreateFilm(ctx context.Context, film domain.Film) (domain.Film, error) {
	id, err := r.Insert(ctx, insertFilmQuery,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Rating.ID)
	if err != nil {
		return domain.Film{}, fmt.Errorf("failed to insert film: %w", err)
	}
	film.ID = id

	if err := r.genreRepo.ReplaceFilmGenres(ctx, film.ID, film.Genres); err != nil {
		return domain.Film{}, fmt.Errorf("failed to store genres for film %d: %w", film.ID, err)
	}
	return film, nil
}

func (r *PgxFilmRepository) GetFilm(ctx context.Context, id int) (*domain.Film, error) {
	film, err := r.FindOne(ctx, findFilmByIDQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find film by id %d: %w", id, err)
	}
	if film == nil {
		return nil, nil
	}
	genres, err := r.genreRepo.GetGenresByFilmID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres for film %d: %w", id, err)
	}
	film.Genres = genres
	return film, nil
}

func (r *PgxFilmRepository) GetAllFilms(ctx context.Context) ([]domain.Film, error) {
	films, err := r.FindAll(ctx, findAllFilmsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	if err := r.loadGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *PgxFilmRepository) UpdateFilm(ctx context.Context, film domain.Film) (bool, error) {
	affected, err := r.Mutate(ctx, updateFilmQuery,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Rating.ID, film.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update film %d: %w", film.ID, err)
	}
	if affected == 0 {
		return false, nil
	}
	if err := r.genreRepo.ReplaceFilmGenres(ctx, film.ID, film.Genres); err != nil {
		return false, fmt.Errorf("failed to replace genres for film %d: %w", film.ID, err)
	}
	return true, nil
}

func (r *PgxFilmRepository) DeleteFilm(ctx context.Context, id int) (bool, error) {
	affected, err := r.Mutate(ctx, deleteFilmByIDQuery, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete film %d: %w", id, err)
	}
	return affected > 0, nil
}

func (r *PgxFilmRepository) DeleteFilms(ctx context.Context) error {
	if _, err := r.Mutate(ctx, deleteAllFilmsQuery); err != nil {
		return fmt.Errorf("failed to delete films: %w", err)
	}
	return nil
}

func (r *PgxFilmRepository) AddLike(ctx context.Context, filmID, userID int) error {
	// The composite primary key on likes makes concurrent adds of the same
	// pair collapse into one row.
	if _, err := r.Mutate(ctx, addLikeQuery, filmID, userID); err != nil {
		return fmt.Errorf("failed to add like (%d, %d): %w", filmID, userID, err)
	}
	return nil
}

func (r *PgxFilmRepository) RemoveLike(ctx context.Context, filmID, userID int) (bool, error) {
	affected, err := r.Mutate(ctx, removeLikeQuery, filmID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove like (%d, %d): %w", filmID, userID, err)
	}
	return affected > 0, nil
}

func (r *PgxFilmRepository) GetLikesCount(ctx context.Context, filmID int) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, getLikesCountQuery, filmID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes for film %d: %w", filmID, err)
	}
	return count, nil
}

// GetLikesCounts counts likes for the whole batch in one query instead of
// one round trip per film, the same shape as the batch genre load.
func (r *PgxFilmRepository) GetLikesCounts(ctx context.Context, filmIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(filmIDs))
	if len(filmIDs) == 0 {
		return counts, nil
	}
	rows, err := r.db.Query(ctx, getLikesCountsQuery, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes for films: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var filmID, count int
		if err := rows.Scan(&filmID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan like count row: %w", err)
		}
		counts[filmID] = count
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating like count rows: %w", rows.Err())
	}
	return counts, nil
}

func (r *PgxFilmRepository) GetMostPopularFilms(ctx context.Context, count int) ([]domain.Film, error) {
	films, err := r.FindAll(ctx, mostPopularFilmsQuery, count)
	if err != nil {
		return nil, fmt.Errorf("failed to query most popular films: %w", err)
	}
	if err := r.loadGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// loadGenres fetches genres for the whole batch in one query and buckets
// them by film id, instead of one round trip per film.
func (r *PgxFilmRepository) loadGenres(ctx context.Context, films []domain.Film) error {
	if len(films) == 0 {
		return nil
	}
	filmIDs := make([]int, len(films))
	for i, f := range films {
		filmIDs[i] = f.ID
	}
	byFilm, err := r.genreRepo.GetGenresForFilms(ctx, filmIDs)
	if err != nil {
		return fmt.Errorf("failed to load genres for films: %w", err)
	}
	for i := range films {
		if genres, ok := byFilm[films[i].ID]; ok {
			films[i].Genres = genres
		} else {
			films[i].Genres = []domain.Genre{}
		}
	}
	return nil
}
