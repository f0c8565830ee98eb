package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/filmorate/filmorate_app/internal/dto"
	"github.com/filmorate/filmorate_app/internal/middleware"
)

// UserService implements the user operations and the friendship management
// pipelines. Friendship edges are directed; all self-referencing friendship
// operations are rejected here before reaching the repository.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(ctx context.Context, req dto.NewUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user := req.ToDomain()
	if err := validateUser(user); err != nil {
		return nil, err
	}
	defaultUserName(&user)

	created, err := s.userRepo.AddUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	logger.Info("User created", slog.Int("user_id", created.ID), slog.String("login", created.Login))
	return &created, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user with id %d: %w", id, apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user := req.ToDomain()
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := s.checkUsersExist(ctx, user.ID); err != nil {
		return nil, err
	}
	defaultUserName(&user)

	updated, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	if !updated {
		return nil, fmt.Errorf("user with id %d: %w", user.ID, apperrors.ErrNotFound)
	}
	logger.Info("User updated", slog.Int("user_id", user.ID))
	return &user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("user with id %d: %w", id, apperrors.ErrNotFound)
	}
	logger.Info("User deleted", slog.Int("user_id", id))
	return nil
}

func (s *UserService) DeleteUsers(ctx context.Context) error {
	if err := s.userRepo.DeleteUsers(ctx); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("All users deleted")
	return nil
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return fmt.Errorf("a user cannot add itself as a friend: %w", apperrors.ErrValidation)
	}
	if err := s.checkUsersExist(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.userRepo.AddFriend(ctx, userID, friendID); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return fmt.Errorf("a user cannot remove itself from friends: %w", apperrors.ErrValidation)
	}
	if err := s.checkUsersExist(ctx, userID, friendID); err != nil {
		return err
	}
	// Removing an absent edge is a no-op, same as the original API.
	if _, err := s.userRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (s *UserService) GetFriends(ctx context.Context, userID int) ([]domain.User, error) {
	if err := s.checkUsersExist(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := s.userRepo.GetFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends of user %d: %w", userID, err)
	}
	if friends == nil {
		return []domain.User{}, nil
	}
	return friends, nil
}

func (s *UserService) GetMutualFriends(ctx context.Context, userID, otherID int) ([]domain.User, error) {
	if userID == otherID {
		return nil, fmt.Errorf("a user has no mutual friends with itself: %w", apperrors.ErrValidation)
	}
	if err := s.checkUsersExist(ctx, userID, otherID); err != nil {
		return nil, err
	}
	friends, err := s.userRepo.GetCommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mutual friends of users %d and %d: %w", userID, otherID, err)
	}
	if friends == nil {
		return []domain.User{}, nil
	}
	return friends, nil
}

// validateUser enforces the structural user rules. The first violated rule
// aborts the operation, naming the offending field.
func validateUser(user domain.User) error {
	if isBlank(user.Email) {
		return fmt.Errorf("user email must not be blank: %w", apperrors.ErrValidation)
	}
	if !strings.Contains(user.Email, "@") {
		return fmt.Errorf("user email must contain the @ symbol: %w", apperrors.ErrValidation)
	}
	if isBlank(user.Login) {
		return fmt.Errorf("user login must not be blank: %w", apperrors.ErrValidation)
	}
	if strings.IndexFunc(user.Login, unicode.IsSpace) >= 0 {
		return fmt.Errorf("user login must not contain whitespace: %w", apperrors.ErrValidation)
	}
	if user.Birthday.After(time.Now()) {
		return fmt.Errorf("user birthday must not be in the future: %w", apperrors.ErrValidation)
	}
	return nil
}

// defaultUserName fills a blank name with the login.
func defaultUserName(user *domain.User) {
	if isBlank(user.Name) {
		user.Name = user.Login
	}
}

func (s *UserService) checkUsersExist(ctx context.Context, ids ...int) error {
	for _, id := range ids {
		user, err := s.userRepo.GetUser(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check user %d: %w", id, err)
		}
		if user == nil {
			return fmt.Errorf("user with id %d: %w", id, apperrors.ErrNotFound)
		}
	}
	return nil
}
