package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	"github.com/filmorate/filmorate_app/internal/core/services"
	"github.com/filmorate/filmorate_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository (based on UserRepositoryFacade) ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) AddUser(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) DeleteUsers(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUserRepository) AddFriend(ctx context.Context, userID, friendID int) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFriend(ctx context.Context, userID, friendID int) (bool, error) {
	args := m.Called(ctx, userID, friendID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetFriends(ctx context.Context, userID int) ([]domain.User, error) {
	args := m.Called(ctx, userID)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) GetCommonFriends(ctx context.Context, userID, otherID int) ([]domain.User, error) {
	args := m.Called(ctx, userID, otherID)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func validUserRequest() dto.NewUserRequest {
	return dto.NewUserRequest{
		Email:    "mail@example.com",
		Login:    "dolore",
		Name:     "Nick Name",
		Birthday: dto.NewDate(time.Date(1946, 8, 20, 0, 0, 0, 0, time.UTC)),
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := validUserRequest()

	suite.mockUserRepo.On("AddUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email && u.Login == req.Login && u.Name == req.Name
	})).Return(domain.User{ID: 1, Email: req.Email, Login: req.Login, Name: req.Name}, nil).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(1, created.ID)
	suite.Equal(req.Login, created.Login)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_BlankNameDefaultsToLogin() {
	ctx := context.Background()
	req := validUserRequest()
	req.Name = "   "

	suite.mockUserRepo.On("AddUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == req.Login
	})).Return(domain.User{ID: 1, Email: req.Email, Login: req.Login, Name: req.Login}, nil).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(req.Login, created.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_ValidationFailures() {
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*dto.NewUserRequest)
	}{
		{"blank email", func(r *dto.NewUserRequest) { r.Email = "  " }},
		{"email without at sign", func(r *dto.NewUserRequest) { r.Email = "mail.example.com" }},
		{"blank login", func(r *dto.NewUserRequest) { r.Login = "" }},
		{"login with whitespace", func(r *dto.NewUserRequest) { r.Login = "dolore ullamco" }},
		{"future birthday", func(r *dto.NewUserRequest) {
			r.Birthday = dto.NewDate(time.Now().AddDate(1, 0, 0))
		}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := validUserRequest()
			tc.mutate(&req)

			created, err := suite.service.CreateUser(ctx, req)

			suite.Require().Error(err)
			suite.Nil(created)
			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.mockUserRepo.AssertNotCalled(suite.T(), "AddUser")
		})
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := validUserRequest()

	suite.mockUserRepo.On("AddUser", ctx, mock.AnythingOfType("domain.User")).
		Return(domain.User{}, apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUser_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetUser", ctx, 42).Return(nil, nil).Once()

	user, err := suite.service.GetUser(ctx, 42)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NotFound() {
	ctx := context.Background()
	req := dto.UpdateUserRequest{
		ID:       42,
		Email:    "mail@example.com",
		Login:    "dolore",
		Birthday: dto.NewDate(time.Date(1946, 8, 20, 0, 0, 0, 0, time.UTC)),
	}

	suite.mockUserRepo.On("GetUser", ctx, 42).Return(nil, nil).Once()

	updated, err := suite.service.UpdateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser")
}

func (suite *UserServiceTestSuite) TestAddFriend_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetUser", ctx, 1).Return(&domain.User{ID: 1}, nil).Once()
	suite.mockUserRepo.On("GetUser", ctx, 2).Return(&domain.User{ID: 2}, nil).Once()
	suite.mockUserRepo.On("AddFriend", ctx, 1, 2).Return(nil).Once()

	err := suite.service.AddFriend(ctx, 1, 2)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAddFriend_SelfRejected() {
	ctx := context.Background()

	err := suite.service.AddFriend(ctx, 7, 7)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "AddFriend")
}

func (suite *UserServiceTestSuite) TestAddFriend_FriendNotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetUser", ctx, 1).Return(&domain.User{ID: 1}, nil).Once()
	suite.mockUserRepo.On("GetUser", ctx, 99).Return(nil, nil).Once()

	err := suite.service.AddFriend(ctx, 1, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "AddFriend")
}

func (suite *UserServiceTestSuite) TestRemoveFriend_AbsentEdgeIsNoOp() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetUser", ctx, 1).Return(&domain.User{ID: 1}, nil).Once()
	suite.mockUserRepo.On("GetUser", ctx, 2).Return(&domain.User{ID: 2}, nil).Once()
	suite.mockUserRepo.On("RemoveFriend", ctx, 1, 2).Return(false, nil).Once()

	err := suite.service.RemoveFriend(ctx, 1, 2)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetMutualFriends_SelfRejected() {
	ctx := context.Background()

	friends, err := suite.service.GetMutualFriends(ctx, 3, 3)

	suite.Require().Error(err)
	suite.Nil(friends)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "GetCommonFriends")
}

func (suite *UserServiceTestSuite) TestGetMutualFriends_Success() {
	ctx := context.Background()
	common := []domain.User{{ID: 3, Login: "mutual"}}

	suite.mockUserRepo.On("GetUser", ctx, 1).Return(&domain.User{ID: 1}, nil).Once()
	suite.mockUserRepo.On("GetUser", ctx, 2).Return(&domain.User{ID: 2}, nil).Once()
	suite.mockUserRepo.On("GetCommonFriends", ctx, 1, 2).Return(common, nil).Once()

	friends, err := suite.service.GetMutualFriends(ctx, 1, 2)

	suite.Require().NoError(err)
	suite.Equal(common, friends)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetFriends_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetUser", ctx, 1).Return(&domain.User{ID: 1}, nil).Once()
	suite.mockUserRepo.On("GetFriends", ctx, 1).Return(nil, nil).Once()

	friends, err := suite.service.GetFriends(ctx, 1)

	suite.Require().NoError(err)
	suite.NotNil(friends)
	suite.Empty(friends)
	suite.mockUserRepo.AssertExpectations(suite.T())
}
