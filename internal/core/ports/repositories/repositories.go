package repositories

// RepositoryProvider bundles one storage variant's repositories. Both the
// pgsql and the memory packages produce one; everything above the ports
// layer is agnostic to which.
type RepositoryProvider struct {
	FilmRepo   FilmRepositoryFacade
	UserRepo   UserRepositoryFacade
	GenreRepo  GenreRepository
	RatingRepo RatingRepository
}
