package pgsql

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertUserQuery     = `INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`
	findAllUsersQuery   = `SELECT id, email, login, name, birthday FROM users ORDER BY id`
	findUserByIDQuery   = `SELECT id, email, login, name, birthday FROM users WHERE id = $1`
	updateUserQuery     = `UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`
	deleteUserByIDQuery = `DELETE FROM users WHERE id = $1`
	deleteAllUsersQuery = `DELETE FROM users`

	addFriendQuery    = `INSERT INTO friendship (user_id, friend_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	removeFriendQuery = `DELETE FROM friendship WHERE user_id = $1 AND friend_id = $2`

	// Friendship edges are directed: only the initiator's outgoing edges
	// count as their friends.
	getFriendsQuery = `
	SELECT u.id, u.email, u.login, u.name, u.birthday
	FROM users AS u
	JOIN friendship AS f ON u.id = f.friend_id
	WHERE f.user_id = $1
	ORDER BY u.id`

	// Mutual friends are computed as a join on the friendship relation, not
	// by materializing both friend lists client-side.
	getCommonFriendsQuery = `
	SELECT u.id, u.email, u.login, u.name, u.birthday
	FROM users AS u
	JOIN friendship AS f1 ON u.id = f1.friend_id
	JOIN friendship AS f2 ON u.id = f2.friend_id
	WHERE f1.user_id = $1 AND f2.user_id = $2
	ORDER BY u.id`
)

type PgxUserRepository struct {
	BaseRepository[domain.User]
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{
		BaseRepository: NewBaseRepository(db, userRowMapper),
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func userRowMapper(row pgx.CollectableRow) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday)
	return u, err
}

func (r *PgxUserRepository) AddUser(ctx context.Context, user domain.User) (domain.User, error) {
	id, err := r.Insert(ctx, insertUserQuery, user.Email, user.Login, user.Name, user.Birthday)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = id
	return user, nil
}

func (r *PgxUserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	user, err := r.FindOne(ctx, findUserByIDQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return user, nil
}

func (r *PgxUserRepository) GetUsers(ctx context.Context) ([]domain.User, error) {
	users, err := r.FindAll(ctx, findAllUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) (bool, error) {
	affected, err := r.Mutate(ctx, updateUserQuery,
		user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return affected > 0, nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, id int) (bool, error) {
	affected, err := r.Mutate(ctx, deleteUserByIDQuery, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return affected > 0, nil
}

func (r *PgxUserRepository) DeleteUsers(ctx context.Context) error {
	if _, err := r.Mutate(ctx, deleteAllUsersQuery); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) AddFriend(ctx context.Context, userID, friendID int) error {
	// The composite primary key on friendship makes concurrent adds of the
	// same pair collapse into one row.
	if _, err := r.Mutate(ctx, addFriendQuery, userID, friendID); err != nil {
		return fmt.Errorf("failed to add friend (%d, %d): %w", userID, friendID, err)
	}
	return nil
}

func (r *PgxUserRepository) RemoveFriend(ctx context.Context, userID, friendID int) (bool, error) {
	affected, err := r.Mutate(ctx, removeFriendQuery, userID, friendID)
	if err != nil {
		return false, fmt.Errorf("failed to remove friend (%d, %d): %w", userID, friendID, err)
	}
	return affected > 0, nil
}

func (r *PgxUserRepository) GetFriends(ctx context.Context, userID int) ([]domain.User, error) {
	friends, err := r.FindAll(ctx, getFriendsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friends of user %d: %w", userID, err)
	}
	return friends, nil
}

func (r *PgxUserRepository) GetCommonFriends(ctx context.Context, userID, otherID int) ([]domain.User, error) {
	friends, err := r.FindAll(ctx, getCommonFriendsQuery, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query common friends of users %d and %d: %w", userID, otherID, err)
	}
	return friends, nil
}
