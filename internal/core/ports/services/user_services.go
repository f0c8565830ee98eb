package services

import (
	"context"

	"github.com/filmorate/filmorate_app/internal/core/domain"
	"github.com/filmorate/filmorate_app/internal/dto"
)

// UserReaderSvc defines read operations for users
type UserReaderSvc interface {
	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id int) (*domain.User, error)

	// ListUsers retrieves every user.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users
type UserWriterSvc interface {
	// CreateUser validates and persists a new user, defaulting a blank
	// name to the login.
	CreateUser(ctx context.Context, req dto.NewUserRequest) (*domain.User, error)

	// UpdateUser validates and updates an existing user.
	UpdateUser(ctx context.Context, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser removes a user by id.
	DeleteUser(ctx context.Context, id int) error

	// DeleteUsers removes every user.
	DeleteUsers(ctx context.Context) error
}

// UserFriendSvc defines friendship management operations. All of them reject
// a user paired with itself.
type UserFriendSvc interface {
	// AddFriend records a directed friendship edge from userID to friendID.
	AddFriend(ctx context.Context, userID, friendID int) error

	// RemoveFriend removes the directed edge from userID to friendID.
	RemoveFriend(ctx context.Context, userID, friendID int) error

	// GetFriends returns the users userID has added.
	GetFriends(ctx context.Context, userID int) ([]domain.User, error)

	// GetMutualFriends returns users present in both users' friend sets.
	GetMutualFriends(ctx context.Context, userID, otherID int) ([]domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserFriendSvc
}
