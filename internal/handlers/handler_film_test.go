package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portssvc "github.com/filmorate/filmorate_app/internal/core/ports/services"
	"github.com/filmorate/filmorate_app/internal/dto"
	"github.com/filmorate/filmorate_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FilmService ---
type MockFilmService struct {
	mock.Mock
}

func (m *MockFilmService) GetFilm(ctx context.Context, id int) (*dto.FilmResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FilmResponse), args.Error(1)
}
func (m *MockFilmService) ListFilms(ctx context.Context) ([]dto.FilmResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.FilmResponse), args.Error(1)
}
func (m *MockFilmService) GetTopFilms(ctx context.Context, count int) ([]dto.FilmResponse, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.FilmResponse), args.Error(1)
}
func (m *MockFilmService) CreateFilm(ctx context.Context, req dto.NewFilmRequest) (*dto.FilmResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FilmResponse), args.Error(1)
}
func (m *MockFilmService) UpdateFilm(ctx context.Context, req dto.UpdateFilmRequest) (*dto.FilmResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FilmResponse), args.Error(1)
}
func (m *MockFilmService) DeleteFilm(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFilmService) DeleteFilms(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFilmService) AddLike(ctx context.Context, filmID, userID int) error {
	args := m.Called(ctx, filmID, userID)
	return args.Error(0)
}
func (m *MockFilmService) RemoveLike(ctx context.Context, filmID, userID int) error {
	args := m.Called(ctx, filmID, userID)
	return args.Error(0)
}

var _ portssvc.FilmSvcFacade = (*MockFilmService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.NewUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserService) DeleteUsers(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUserService) AddFriend(ctx context.Context, userID, friendID int) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}
func (m *MockUserService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}
func (m *MockUserService) GetFriends(ctx context.Context, userID int) ([]domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) GetMutualFriends(ctx context.Context, userID, otherID int) ([]domain.User, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock GenreService ---
type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Genre), args.Error(1)
}
func (m *MockGenreService) GetGenre(ctx context.Context, id int) (*domain.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Genre), args.Error(1)
}

var _ portssvc.GenreSvcFacade = (*MockGenreService)(nil)

// --- Mock RatingService ---
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rating), args.Error(1)
}
func (m *MockRatingService) GetRating(ctx context.Context, id int) (*domain.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

var _ portssvc.RatingSvcFacade = (*MockRatingService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	filmService *MockFilmService
	userService *MockUserService
	genreSvc    *MockGenreService
	ratingSvc   *MockRatingService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.filmService = new(MockFilmService)
	suite.userService = new(MockUserService)
	suite.genreSvc = new(MockGenreService)
	suite.ratingSvc = new(MockRatingService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Film:   suite.filmService,
		User:   suite.userService,
		Genre:  suite.genreSvc,
		Rating: suite.ratingSvc,
	})
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.perform(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateFilm_Created() {
	resp := &dto.FilmResponse{ID: 1, Name: "nisi eiusmod", Mpa: domain.Rating{ID: 1, Name: "G"}}
	suite.filmService.On("CreateFilm", mock.Anything, mock.AnythingOfType("dto.NewFilmRequest")).
		Return(resp, nil).Once()

	w := suite.perform(http.MethodPost, "/films", gin.H{
		"name":        "nisi eiusmod",
		"description": "adipisicing",
		"releaseDate": "1967-03-25",
		"duration":    100,
		"mpa":         gin.H{"id": 1},
	})

	suite.Equal(http.StatusCreated, w.Code)

	var got dto.FilmResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(1, got.ID)
	suite.Equal("G", got.Mpa.Name)
	suite.filmService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateFilm_ValidationErrorIs400() {
	suite.filmService.On("CreateFilm", mock.Anything, mock.AnythingOfType("dto.NewFilmRequest")).
		Return(nil, fmt.Errorf("film duration must be a positive integer: %w", apperrors.ErrValidation)).Once()

	w := suite.perform(http.MethodPost, "/films", gin.H{
		"name":        "nisi eiusmod",
		"releaseDate": "1967-03-25",
		"duration":    100,
		"mpa":         gin.H{"id": 1},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateFilm_UnknownRatingIs404() {
	suite.filmService.On("CreateFilm", mock.Anything, mock.AnythingOfType("dto.NewFilmRequest")).
		Return(nil, fmt.Errorf("mpa rating with id 99: %w", apperrors.ErrNotFound)).Once()

	w := suite.perform(http.MethodPost, "/films", gin.H{
		"name":        "nisi eiusmod",
		"releaseDate": "1967-03-25",
		"duration":    100,
		"mpa":         gin.H{"id": 99},
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateFilm_MalformedBodyIs400() {
	req := httptest.NewRequest(http.MethodPost, "/films", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.filmService.AssertNotCalled(suite.T(), "CreateFilm")
}

func (suite *HandlerTestSuite) TestGetTopFilms_DefaultCount() {
	suite.filmService.On("GetTopFilms", mock.Anything, 10).
		Return([]dto.FilmResponse{}, nil).Once()

	w := suite.perform(http.MethodGet, "/films/popular", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.filmService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetTopFilms_ExplicitCount() {
	suite.filmService.On("GetTopFilms", mock.Anything, 2).
		Return([]dto.FilmResponse{{ID: 2}, {ID: 1}}, nil).Once()

	w := suite.perform(http.MethodGet, "/films/popular?count=2", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.filmService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetTopFilms_InvalidCountIs400() {
	w := suite.perform(http.MethodGet, "/films/popular?count=abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.filmService.AssertNotCalled(suite.T(), "GetTopFilms")
}

func (suite *HandlerTestSuite) TestGetFilm_InvalidIDIs400() {
	w := suite.perform(http.MethodGet, "/films/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.filmService.AssertNotCalled(suite.T(), "GetFilm")
}

func (suite *HandlerTestSuite) TestAddLike_NoContent() {
	suite.filmService.On("AddLike", mock.Anything, 1, 2).Return(nil).Once()

	w := suite.perform(http.MethodPut, "/films/1/like/2", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.filmService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRemoveLike_AbsentIs404() {
	suite.filmService.On("RemoveLike", mock.Anything, 1, 2).
		Return(fmt.Errorf("like of user 2 on film 1: %w", apperrors.ErrNotFound)).Once()

	w := suite.perform(http.MethodDelete, "/films/1/like/2", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateUser_DuplicateEmailIs409() {
	suite.userService.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.NewUserRequest")).
		Return(nil, fmt.Errorf("failed to create user: %w", apperrors.ErrDuplicate)).Once()

	w := suite.perform(http.MethodPost, "/users", gin.H{
		"email":    "mail@example.com",
		"login":    "dolore",
		"birthday": "1946-08-20",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestAddFriend_SelfIs400() {
	suite.userService.On("AddFriend", mock.Anything, 7, 7).
		Return(fmt.Errorf("a user cannot add itself as a friend: %w", apperrors.ErrValidation)).Once()

	w := suite.perform(http.MethodPut, "/users/7/friends/7", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetMutualFriends_OK() {
	suite.userService.On("GetMutualFriends", mock.Anything, 1, 2).
		Return([]domain.User{{ID: 3, Login: "mutual"}}, nil).Once()

	w := suite.perform(http.MethodGet, "/users/1/friends/common/2", nil)

	suite.Equal(http.StatusOK, w.Code)

	var got []dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got, 1)
	suite.Equal(3, got[0].ID)
}

func (suite *HandlerTestSuite) TestListGenres_OK() {
	suite.genreSvc.On("ListGenres", mock.Anything).
		Return([]domain.Genre{{ID: 1, Name: "Comedy"}}, nil).Once()

	w := suite.perform(http.MethodGet, "/genres", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetRating_NotFoundIs404() {
	suite.ratingSvc.On("GetRating", mock.Anything, 99).
		Return(nil, fmt.Errorf("mpa rating with id 99: %w", apperrors.ErrNotFound)).Once()

	w := suite.perform(http.MethodGet, "/mpa/99", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}
