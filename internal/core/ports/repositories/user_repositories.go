package repositories

import (
	"context"

	"github.com/filmorate/filmorate_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// GetUser retrieves a specific user by id.
	// Returns nil (no error) when the id does not exist.
	GetUser(ctx context.Context, id int) (*domain.User, error)

	// GetUsers retrieves every user ordered by ascending id.
	GetUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// AddUser persists a new user and returns it with the generated id set.
	// A duplicate email surfaces as apperrors.ErrDuplicate.
	AddUser(ctx context.Context, user domain.User) (domain.User, error)

	// UpdateUser updates an existing user in place. Returns true if a row
	// existed.
	UpdateUser(ctx context.Context, user domain.User) (bool, error)

	// DeleteUser removes a user by id. Returns true if a row was removed.
	DeleteUser(ctx context.Context, id int) (bool, error)

	// DeleteUsers removes every user and, by cascade, all friendship and
	// like rows.
	DeleteUsers(ctx context.Context) error
}

// UserFriendManager defines operations over the directed friendship relation.
// Edges are one-sided: AddFriend(a, b) does not create the reverse edge.
type UserFriendManager interface {
	// AddFriend records a friendship edge. Adding an existing pair is a
	// no-op.
	AddFriend(ctx context.Context, userID, friendID int) error

	// RemoveFriend deletes a friendship edge. Returns true if the edge
	// existed.
	RemoveFriend(ctx context.Context, userID, friendID int) (bool, error)

	// GetFriends returns the users the given user has added as friends.
	GetFriends(ctx context.Context, userID int) ([]domain.User, error)

	// GetCommonFriends returns the intersection of both users' outgoing
	// friend sets, computed on the friendship relation itself.
	GetCommonFriends(ctx context.Context, userID, otherID int) ([]domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserFriendManager
}
