// Package contract holds the storage behaviour suite shared by every
// repository variant. Both the memory and the pgsql packages run the same
// suite against their own RepositoryProvider, so any behavioural drift
// between the variants fails a test instead of surfacing in production.
package contract

import (
	"context"
	"time"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/suite"
)

// RepositorySuite exercises a storage variant through the repository
// interfaces the services use. NewProvider must return a provider backed by
// an empty or wipeable store; SetupTest clears films and users before every
// test.
type RepositorySuite struct {
	suite.Suite

	// NewProvider builds the variant under test. Required.
	NewProvider func() portsrepo.RepositoryProvider

	repos portsrepo.RepositoryProvider
	ctx   context.Context
}

func (suite *RepositorySuite) SetupTest() {
	suite.repos = suite.NewProvider()
	suite.ctx = context.Background()

	suite.Require().NoError(suite.repos.FilmRepo.DeleteFilms(suite.ctx))
	suite.Require().NoError(suite.repos.UserRepo.DeleteUsers(suite.ctx))
}

func (suite *RepositorySuite) mustCreateFilm(name string) domain.Film {
	film, err := suite.repos.FilmRepo.CreateFilm(suite.ctx, domain.Film{
		Name:        name,
		Description: "adipisicing",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 1, Name: "G"},
	})
	suite.Require().NoError(err)
	return film
}

func (suite *RepositorySuite) mustCreateUser(email, login string) domain.User {
	user, err := suite.repos.UserRepo.AddUser(suite.ctx, domain.User{
		Email:    email,
		Login:    login,
		Name:     login,
		Birthday: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	return user
}

func (suite *RepositorySuite) TestCreateFilm_AssignsIncreasingIDs() {
	first := suite.mustCreateFilm("first")
	second := suite.mustCreateFilm("second")

	suite.NotZero(first.ID)
	suite.Greater(second.ID, first.ID)
}

func (suite *RepositorySuite) TestCreateFilm_GenresOrderedOnRead() {
	created, err := suite.repos.FilmRepo.CreateFilm(suite.ctx, domain.Film{
		Name:        "nisi eiusmod",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 1, Name: "G"},
		Genres:      []domain.Genre{{ID: 2, Name: "Drama"}, {ID: 1, Name: "Comedy"}},
	})
	suite.Require().NoError(err)

	// Whatever order the genres arrived in, reads return them by ascending id.
	film, err := suite.repos.FilmRepo.GetFilm(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(film)
	suite.Equal("G", film.Rating.Name)
	suite.Require().Len(film.Genres, 2)
	suite.Equal("Comedy", film.Genres[0].Name)
	suite.Equal("Drama", film.Genres[1].Name)
}

func (suite *RepositorySuite) TestCreateFilm_DuplicateGenreRejected() {
	_, err := suite.repos.FilmRepo.CreateFilm(suite.ctx, domain.Film{
		Name:        "nisi eiusmod",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 1, Name: "G"},
		Genres:      []domain.Genre{{ID: 2, Name: "Drama"}, {ID: 2, Name: "Drama"}},
	})

	// The association table's composite key admits each genre once; a caller
	// bypassing the service's normalization gets the constraint error.
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *RepositorySuite) TestCreateFilm_UnknownReferencesRejected() {
	_, err := suite.repos.FilmRepo.CreateFilm(suite.ctx, domain.Film{
		Name:        "bad rating",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 99},
	})
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.repos.FilmRepo.CreateFilm(suite.ctx, domain.Film{
		Name:        "bad genre",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 1, Name: "G"},
		Genres:      []domain.Genre{{ID: 77}},
	})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *RepositorySuite) TestGetFilm_AbsentReturnsNil() {
	film, err := suite.repos.FilmRepo.GetFilm(suite.ctx, 424242)

	suite.Require().NoError(err)
	suite.Nil(film)
}

func (suite *RepositorySuite) TestGetAllFilms_AscendingByID() {
	first := suite.mustCreateFilm("first")
	second := suite.mustCreateFilm("second")

	films, err := suite.repos.FilmRepo.GetAllFilms(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(films, 2)
	suite.Equal(first.ID, films[0].ID)
	suite.Equal(second.ID, films[1].ID)
}

func (suite *RepositorySuite) TestUpdateFilm_ReplacesGenres() {
	created, err := suite.repos.FilmRepo.CreateFilm(suite.ctx, domain.Film{
		Name:        "nisi eiusmod",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 1, Name: "G"},
		Genres:      []domain.Genre{{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Drama"}},
	})
	suite.Require().NoError(err)

	created.Genres = []domain.Genre{{ID: 6, Name: "Action"}}
	updated, err := suite.repos.FilmRepo.UpdateFilm(suite.ctx, created)
	suite.Require().NoError(err)
	suite.True(updated)

	film, err := suite.repos.FilmRepo.GetFilm(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Require().Len(film.Genres, 1)
	suite.Equal("Action", film.Genres[0].Name)

	// An empty set clears every association.
	created.Genres = nil
	updated, err = suite.repos.FilmRepo.UpdateFilm(suite.ctx, created)
	suite.Require().NoError(err)
	suite.True(updated)

	film, err = suite.repos.FilmRepo.GetFilm(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Empty(film.Genres)
}

func (suite *RepositorySuite) TestUpdateFilm_AbsentReturnsFalse() {
	updated, err := suite.repos.FilmRepo.UpdateFilm(suite.ctx, domain.Film{
		ID:          424242,
		Name:        "ghost",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 1, Name: "G"},
	})

	suite.Require().NoError(err)
	suite.False(updated)
}

func (suite *RepositorySuite) TestAddLike_Idempotent() {
	film := suite.mustCreateFilm("liked")
	user := suite.mustCreateUser("mail@example.com", "dolore")

	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, film.ID, user.ID))
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, film.ID, user.ID))

	count, err := suite.repos.FilmRepo.GetLikesCount(suite.ctx, film.ID)
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *RepositorySuite) TestAddLike_UnknownReferencesRejected() {
	// Neither endpoint exists yet; the like must not be recorded.
	err := suite.repos.FilmRepo.AddLike(suite.ctx, 424242, 434343)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	// An existing film does not excuse an unknown user.
	film := suite.mustCreateFilm("liked")
	err = suite.repos.FilmRepo.AddLike(suite.ctx, film.ID, 434343)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	count, err := suite.repos.FilmRepo.GetLikesCount(suite.ctx, film.ID)
	suite.Require().NoError(err)
	suite.Equal(0, count)
}

func (suite *RepositorySuite) TestRemoveLike_RoundTrip() {
	film := suite.mustCreateFilm("liked")
	user := suite.mustCreateUser("mail@example.com", "dolore")

	removed, err := suite.repos.FilmRepo.RemoveLike(suite.ctx, film.ID, user.ID)
	suite.Require().NoError(err)
	suite.False(removed)

	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, film.ID, user.ID))

	removed, err = suite.repos.FilmRepo.RemoveLike(suite.ctx, film.ID, user.ID)
	suite.Require().NoError(err)
	suite.True(removed)

	count, err := suite.repos.FilmRepo.GetLikesCount(suite.ctx, film.ID)
	suite.Require().NoError(err)
	suite.Equal(0, count)
}

func (suite *RepositorySuite) TestGetLikesCounts_BatchesByFilm() {
	filmA := suite.mustCreateFilm("a")
	filmB := suite.mustCreateFilm("b")
	filmC := suite.mustCreateFilm("c")
	u1 := suite.mustCreateUser("u1@example.com", "u1")
	u2 := suite.mustCreateUser("u2@example.com", "u2")

	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, filmA.ID, u1.ID))
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, filmA.ID, u2.ID))
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, filmB.ID, u1.ID))

	counts, err := suite.repos.FilmRepo.GetLikesCounts(suite.ctx,
		[]int{filmA.ID, filmB.ID, filmC.ID})
	suite.Require().NoError(err)
	suite.Equal(2, counts[filmA.ID])
	suite.Equal(1, counts[filmB.ID])
	// Films without likes carry no entry.
	suite.NotContains(counts, filmC.ID)

	counts, err = suite.repos.FilmRepo.GetLikesCounts(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(counts)
}

func (suite *RepositorySuite) TestGetMostPopularFilms_OrderAndLimit() {
	filmA := suite.mustCreateFilm("a")
	filmB := suite.mustCreateFilm("b")
	filmC := suite.mustCreateFilm("c")
	u1 := suite.mustCreateUser("u1@example.com", "u1")
	u2 := suite.mustCreateUser("u2@example.com", "u2")

	// b: 2 likes, c: 1 like, a: none
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, filmB.ID, u1.ID))
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, filmB.ID, u2.ID))
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, filmC.ID, u1.ID))

	popular, err := suite.repos.FilmRepo.GetMostPopularFilms(suite.ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(popular, 2)
	suite.Equal(filmB.ID, popular[0].ID)
	suite.Equal(filmC.ID, popular[1].ID)

	// A count beyond the catalog returns everything; ties break by
	// ascending film id.
	popular, err = suite.repos.FilmRepo.GetMostPopularFilms(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(popular, 3)
	suite.Equal(filmA.ID, popular[2].ID)
}

func (suite *RepositorySuite) TestDeleteFilm_CascadesLikes() {
	film := suite.mustCreateFilm("doomed")
	user := suite.mustCreateUser("mail@example.com", "dolore")
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, film.ID, user.ID))

	deleted, err := suite.repos.FilmRepo.DeleteFilm(suite.ctx, film.ID)
	suite.Require().NoError(err)
	suite.True(deleted)

	count, err := suite.repos.FilmRepo.GetLikesCount(suite.ctx, film.ID)
	suite.Require().NoError(err)
	suite.Equal(0, count)

	deleted, err = suite.repos.FilmRepo.DeleteFilm(suite.ctx, film.ID)
	suite.Require().NoError(err)
	suite.False(deleted)
}

func (suite *RepositorySuite) TestDeleteFilms_WipesCatalog() {
	suite.mustCreateFilm("first")
	suite.mustCreateFilm("second")

	suite.Require().NoError(suite.repos.FilmRepo.DeleteFilms(suite.ctx))

	films, err := suite.repos.FilmRepo.GetAllFilms(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(films)
}

func (suite *RepositorySuite) TestAddUser_DuplicateEmail() {
	suite.mustCreateUser("mail@example.com", "dolore")

	_, err := suite.repos.UserRepo.AddUser(suite.ctx, domain.User{
		Email:    "mail@example.com",
		Login:    "other",
		Name:     "other",
		Birthday: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *RepositorySuite) TestGetUsers_AscendingByID() {
	first := suite.mustCreateUser("u1@example.com", "u1")
	second := suite.mustCreateUser("u2@example.com", "u2")

	users, err := suite.repos.UserRepo.GetUsers(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(users, 2)
	suite.Equal(first.ID, users[0].ID)
	suite.Equal(second.ID, users[1].ID)
}

func (suite *RepositorySuite) TestUpdateUser_EmailConflictRules() {
	first := suite.mustCreateUser("first@example.com", "first")
	suite.mustCreateUser("second@example.com", "second")

	// Keeping your own email is fine.
	first.Name = "renamed"
	updated, err := suite.repos.UserRepo.UpdateUser(suite.ctx, first)
	suite.Require().NoError(err)
	suite.True(updated)

	// Taking another user's email is not.
	first.Email = "second@example.com"
	_, err = suite.repos.UserRepo.UpdateUser(suite.ctx, first)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *RepositorySuite) TestAddFriend_UnknownReferencesRejected() {
	// Neither endpoint exists yet; no edge may appear.
	err := suite.repos.UserRepo.AddFriend(suite.ctx, 424242, 434343)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	u1 := suite.mustCreateUser("u1@example.com", "u1")
	err = suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, 434343)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	friends, err := suite.repos.UserRepo.GetFriends(suite.ctx, u1.ID)
	suite.Require().NoError(err)
	suite.Empty(friends)
}

func (suite *RepositorySuite) TestAddFriend_Idempotent() {
	u1 := suite.mustCreateUser("u1@example.com", "u1")
	u2 := suite.mustCreateUser("u2@example.com", "u2")

	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, u2.ID))
	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, u2.ID))

	friends, err := suite.repos.UserRepo.GetFriends(suite.ctx, u1.ID)
	suite.Require().NoError(err)
	suite.Require().Len(friends, 1)
	suite.Equal(u2.ID, friends[0].ID)
}

func (suite *RepositorySuite) TestFriendship_EdgesAreDirected() {
	u1 := suite.mustCreateUser("u1@example.com", "u1")
	u2 := suite.mustCreateUser("u2@example.com", "u2")

	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, u2.ID))

	friends, err := suite.repos.UserRepo.GetFriends(suite.ctx, u1.ID)
	suite.Require().NoError(err)
	suite.Require().Len(friends, 1)
	suite.Equal(u2.ID, friends[0].ID)

	// The reverse direction does not exist.
	friends, err = suite.repos.UserRepo.GetFriends(suite.ctx, u2.ID)
	suite.Require().NoError(err)
	suite.Empty(friends)
}

func (suite *RepositorySuite) TestRemoveFriend_RoundTrip() {
	u1 := suite.mustCreateUser("u1@example.com", "u1")
	u2 := suite.mustCreateUser("u2@example.com", "u2")

	removed, err := suite.repos.UserRepo.RemoveFriend(suite.ctx, u1.ID, u2.ID)
	suite.Require().NoError(err)
	suite.False(removed)

	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, u2.ID))

	removed, err = suite.repos.UserRepo.RemoveFriend(suite.ctx, u1.ID, u2.ID)
	suite.Require().NoError(err)
	suite.True(removed)

	friends, err := suite.repos.UserRepo.GetFriends(suite.ctx, u1.ID)
	suite.Require().NoError(err)
	suite.Empty(friends)
}

func (suite *RepositorySuite) TestGetCommonFriends_Symmetric() {
	u1 := suite.mustCreateUser("u1@example.com", "u1")
	u2 := suite.mustCreateUser("u2@example.com", "u2")
	mutual := suite.mustCreateUser("m@example.com", "mutual")
	other := suite.mustCreateUser("o@example.com", "other")

	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, mutual.ID))
	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u2.ID, mutual.ID))
	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, other.ID))

	common, err := suite.repos.UserRepo.GetCommonFriends(suite.ctx, u1.ID, u2.ID)
	suite.Require().NoError(err)
	suite.Require().Len(common, 1)
	suite.Equal(mutual.ID, common[0].ID)

	reversed, err := suite.repos.UserRepo.GetCommonFriends(suite.ctx, u2.ID, u1.ID)
	suite.Require().NoError(err)
	suite.Equal(common, reversed)
}

func (suite *RepositorySuite) TestDeleteUser_CascadesRelations() {
	u1 := suite.mustCreateUser("u1@example.com", "u1")
	u2 := suite.mustCreateUser("u2@example.com", "u2")
	film := suite.mustCreateFilm("liked")

	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u1.ID, u2.ID))
	suite.Require().NoError(suite.repos.UserRepo.AddFriend(suite.ctx, u2.ID, u1.ID))
	suite.Require().NoError(suite.repos.FilmRepo.AddLike(suite.ctx, film.ID, u1.ID))

	deleted, err := suite.repos.UserRepo.DeleteUser(suite.ctx, u1.ID)
	suite.Require().NoError(err)
	suite.True(deleted)

	count, err := suite.repos.FilmRepo.GetLikesCount(suite.ctx, film.ID)
	suite.Require().NoError(err)
	suite.Equal(0, count)

	friends, err := suite.repos.UserRepo.GetFriends(suite.ctx, u2.ID)
	suite.Require().NoError(err)
	suite.Empty(friends)
}

func (suite *RepositorySuite) TestDeleteUsers_WipesRegistry() {
	suite.mustCreateUser("u1@example.com", "u1")
	suite.mustCreateUser("u2@example.com", "u2")

	suite.Require().NoError(suite.repos.UserRepo.DeleteUsers(suite.ctx))

	users, err := suite.repos.UserRepo.GetUsers(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(users)
}

func (suite *RepositorySuite) TestReferenceData_Seeded() {
	genres, err := suite.repos.GenreRepo.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(genres, 6)
	suite.Equal("Comedy", genres[0].Name)
	suite.Equal("Action", genres[5].Name)

	ratings, err := suite.repos.RatingRepo.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(ratings, 5)
	suite.Equal("G", ratings[0].Name)
	suite.Equal("NC-17", ratings[4].Name)

	genre, err := suite.repos.GenreRepo.FindByID(suite.ctx, 3)
	suite.Require().NoError(err)
	suite.Require().NotNil(genre)
	suite.Equal("Cartoon", genre.Name)

	missing, err := suite.repos.RatingRepo.FindByID(suite.ctx, 99)
	suite.Require().NoError(err)
	suite.Nil(missing)
}

func (suite *RepositorySuite) TestGetGenresForFilms_BucketsByFilm() {
	tagged, err := suite.repos.FilmRepo.CreateFilm(suite.ctx, domain.Film{
		Name:        "tagged",
		ReleaseDate: time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Rating:      domain.Rating{ID: 1, Name: "G"},
		Genres:      []domain.Genre{{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Drama"}},
	})
	suite.Require().NoError(err)
	bare := suite.mustCreateFilm("bare")

	byFilm, err := suite.repos.GenreRepo.GetGenresForFilms(suite.ctx,
		[]int{tagged.ID, bare.ID})
	suite.Require().NoError(err)
	suite.Require().Len(byFilm[tagged.ID], 2)
	suite.Equal("Comedy", byFilm[tagged.ID][0].Name)
	suite.NotContains(byFilm, bare.ID)
}
