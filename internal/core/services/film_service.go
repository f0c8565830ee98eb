package services

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/filmorate/filmorate_app/internal/dto"
	"github.com/filmorate/filmorate_app/internal/middleware"
)

const maxDescriptionLength = 200

// FilmService implements the film operations: each one is a linear pipeline
// of structural validation, existence checks for referenced entities,
// repository delegation and response mapping.
type FilmService struct {
	filmRepo   portsrepo.FilmRepositoryFacade
	userRepo   portsrepo.UserReader
	genreRepo  portsrepo.GenreRepository
	ratingRepo portsrepo.RatingRepository
}

func NewFilmService(
	filmRepo portsrepo.FilmRepositoryFacade,
	userRepo portsrepo.UserReader,
	genreRepo portsrepo.GenreRepository,
	ratingRepo portsrepo.RatingRepository,
) *FilmService {
	return &FilmService{
		filmRepo:   filmRepo,
		userRepo:   userRepo,
		genreRepo:  genreRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *FilmService) CreateFilm(ctx context.Context, req dto.NewFilmRequest) (*dto.FilmResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	film := req.ToDomain()
	if err := validateFilm(film); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, &film); err != nil {
		return nil, err
	}

	created, err := s.filmRepo.CreateFilm(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("failed to create film: %w", err)
	}
	logger.Info("Film created", slog.Int("film_id", created.ID), slog.String("name", created.Name))

	resp := dto.ToFilmResponse(&created, 0)
	return &resp, nil
}

func (s *FilmService) UpdateFilm(ctx context.Context, req dto.UpdateFilmRequest) (*dto.FilmResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	film := req.ToDomain()
	if err := validateFilm(film); err != nil {
		return nil, err
	}
	if err := s.checkFilmExists(ctx, film.ID); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, &film); err != nil {
		return nil, err
	}

	updated, err := s.filmRepo.UpdateFilm(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("failed to update film %d: %w", film.ID, err)
	}
	if !updated {
		return nil, fmt.Errorf("film with id %d: %w", film.ID, apperrors.ErrNotFound)
	}
	logger.Info("Film updated", slog.Int("film_id", film.ID))

	likes, err := s.filmRepo.GetLikesCount(ctx, film.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes for film %d: %w", film.ID, err)
	}
	resp := dto.ToFilmResponse(&film, likes)
	return &resp, nil
}

func (s *FilmService) GetFilm(ctx context.Context, id int) (*dto.FilmResponse, error) {
	film, err := s.filmRepo.GetFilm(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get film %d: %w", id, err)
	}
	if film == nil {
		return nil, fmt.Errorf("film with id %d: %w", id, apperrors.ErrNotFound)
	}
	likes, err := s.filmRepo.GetLikesCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes for film %d: %w", id, err)
	}
	resp := dto.ToFilmResponse(film, likes)
	return &resp, nil
}

func (s *FilmService) ListFilms(ctx context.Context) ([]dto.FilmResponse, error) {
	films, err := s.filmRepo.GetAllFilms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	return s.toResponses(ctx, films)
}

func (s *FilmService) GetTopFilms(ctx context.Context, count int) ([]dto.FilmResponse, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be a positive integer: %w", apperrors.ErrValidation)
	}
	films, err := s.filmRepo.GetMostPopularFilms(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to get top films: %w", err)
	}
	return s.toResponses(ctx, films)
}

func (s *FilmService) DeleteFilm(ctx context.Context, id int) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.filmRepo.DeleteFilm(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete film %d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("film with id %d: %w", id, apperrors.ErrNotFound)
	}
	logger.Info("Film deleted", slog.Int("film_id", id))
	return nil
}

func (s *FilmService) DeleteFilms(ctx context.Context) error {
	if err := s.filmRepo.DeleteFilms(ctx); err != nil {
		return fmt.Errorf("failed to delete films: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("All films deleted")
	return nil
}

func (s *FilmService) AddLike(ctx context.Context, filmID, userID int) error {
	if err := s.checkFilmExists(ctx, filmID); err != nil {
		return err
	}
	if err := s.checkUserExists(ctx, userID); err != nil {
		return err
	}
	if err := s.filmRepo.AddLike(ctx, filmID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int) error {
	if err := s.checkFilmExists(ctx, filmID); err != nil {
		return err
	}
	if err := s.checkUserExists(ctx, userID); err != nil {
		return err
	}
	removed, err := s.filmRepo.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	if !removed {
		return fmt.Errorf("like of user %d on film %d: %w", userID, filmID, apperrors.ErrNotFound)
	}
	return nil
}

// validateFilm enforces the structural film rules. The first violated rule
// aborts the operation, naming the offending field.
func validateFilm(film domain.Film) error {
	if isBlank(film.Name) {
		return fmt.Errorf("film name must not be blank: %w", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(film.Description) > maxDescriptionLength {
		return fmt.Errorf("film description must not exceed %d characters: %w",
			maxDescriptionLength, apperrors.ErrValidation)
	}
	if film.ReleaseDate.Before(domain.MinReleaseDate) {
		return fmt.Errorf("film release date must not be before 1895-12-28: %w", apperrors.ErrValidation)
	}
	if film.Duration <= 0 {
		return fmt.Errorf("film duration must be a positive integer: %w", apperrors.ErrValidation)
	}
	return nil
}

// resolveReferences replaces the bare rating and genre id references from
// the request with full reference records, failing with NotFound for any id
// that does not exist.
func (s *FilmService) resolveReferences(ctx context.Context, film *domain.Film) error {
	rating, err := s.ratingRepo.FindByID(ctx, film.Rating.ID)
	if err != nil {
		return fmt.Errorf("failed to check mpa rating %d: %w", film.Rating.ID, err)
	}
	if rating == nil {
		return fmt.Errorf("mpa rating with id %d: %w", film.Rating.ID, apperrors.ErrNotFound)
	}
	film.Rating = *rating

	film.NormalizeGenres()
	for i, g := range film.Genres {
		genre, err := s.genreRepo.FindByID(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("failed to check genre %d: %w", g.ID, err)
		}
		if genre == nil {
			return fmt.Errorf("genre with id %d: %w", g.ID, apperrors.ErrNotFound)
		}
		film.Genres[i] = *genre
	}
	return nil
}

func (s *FilmService) checkFilmExists(ctx context.Context, id int) error {
	film, err := s.filmRepo.GetFilm(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check film %d: %w", id, err)
	}
	if film == nil {
		return fmt.Errorf("film with id %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *FilmService) checkUserExists(ctx context.Context, id int) error {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", id, err)
	}
	if user == nil {
		return fmt.Errorf("user with id %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// toResponses maps films to responses, counting likes for the whole batch
// in one repository call.
func (s *FilmService) toResponses(ctx context.Context, films []domain.Film) ([]dto.FilmResponse, error) {
	ids := make([]int, len(films))
	for i := range films {
		ids[i] = films[i].ID
	}
	counts, err := s.filmRepo.GetLikesCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes for films: %w", err)
	}
	responses := make([]dto.FilmResponse, 0, len(films))
	for i := range films {
		responses = append(responses, dto.ToFilmResponse(&films[i], counts[films[i].ID]))
	}
	return responses, nil
}
