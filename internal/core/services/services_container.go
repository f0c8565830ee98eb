package services

import (
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	portssvc "github.com/filmorate/filmorate_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The repository provider decides which storage
// variant backs the services; the container is agnostic to it.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Genre = NewGenreService(repos.GenreRepo)
	container.Rating = NewRatingService(repos.RatingRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Film = NewFilmService(repos.FilmRepo, repos.UserRepo, repos.GenreRepo, repos.RatingRepo)

	return container
}

// Compile-time interface implementation checks
var (
	_ portssvc.FilmSvcFacade   = (*FilmService)(nil)
	_ portssvc.UserSvcFacade   = (*UserService)(nil)
	_ portssvc.GenreSvcFacade  = (*GenreService)(nil)
	_ portssvc.RatingSvcFacade = (*RatingService)(nil)
)
