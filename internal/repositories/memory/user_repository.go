package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/filmorate/filmorate_app/internal/core/domain"
	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
)

type MemUserRepository struct {
	store *Store
}

// Ensure MemUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MemUserRepository)(nil)

func (r *MemUserRepository) AddUser(ctx context.Context, user domain.User) (domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(user.Email, 0) {
		return domain.User{}, fmt.Errorf("email %q already in use: %w", user.Email, apperrors.ErrDuplicate)
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = user
	return user, nil
}

func (r *MemUserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *MemUserRepository) GetUsers(ctx context.Context) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (r *MemUserRepository) UpdateUser(ctx context.Context, user domain.User) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return false, nil
	}
	if s.emailTakenLocked(user.Email, user.ID) {
		return false, fmt.Errorf("email %q already in use: %w", user.Email, apperrors.ErrDuplicate)
	}
	s.users[user.ID] = user
	return true, nil
}

func (r *MemUserRepository) DeleteUser(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	s.cascadeUserDelete(id)
	return true, nil
}

func (r *MemUserRepository) DeleteUsers(ctx context.Context) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.users {
		s.cascadeUserDelete(id)
	}
	s.users = make(map[int]domain.User)
	return nil
}

func (r *MemUserRepository) AddFriend(ctx context.Context, userID, friendID int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Both endpoints must exist, mirroring the foreign keys on the
	// friendship table of the persistent variant.
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("user %d referenced by friendship: %w", userID, apperrors.ErrDuplicate)
	}
	if _, ok := s.users[friendID]; !ok {
		return fmt.Errorf("user %d referenced by friendship: %w", friendID, apperrors.ErrDuplicate)
	}

	// Directed edge; only the initiator's friend set grows. Re-adding an
	// existing pair is a no-op.
	s.friends[friendKey{userID: userID, friendID: friendID}] = struct{}{}
	return nil
}

func (r *MemUserRepository) RemoveFriend(ctx context.Context, userID, friendID int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := friendKey{userID: userID, friendID: friendID}
	if _, ok := s.friends[key]; !ok {
		return false, nil
	}
	delete(s.friends, key)
	return true, nil
}

func (r *MemUserRepository) GetFriends(ctx context.Context, userID int) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectUsersLocked(s.friendIDsLocked(userID)), nil
}

func (r *MemUserRepository) GetCommonFriends(ctx context.Context, userID, otherID int) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	other := make(map[int]struct{})
	for _, id := range s.friendIDsLocked(otherID) {
		other[id] = struct{}{}
	}
	common := make([]int, 0)
	for _, id := range s.friendIDsLocked(userID) {
		if _, ok := other[id]; ok {
			common = append(common, id)
		}
	}
	return s.collectUsersLocked(common), nil
}

// Helpers below require the store mutex to be held.

func (s *Store) emailTakenLocked(email string, excludeID int) bool {
	for id, u := range s.users {
		if id != excludeID && u.Email == email {
			return true
		}
	}
	return false
}

func (s *Store) friendIDsLocked(userID int) []int {
	ids := make([]int, 0)
	for key := range s.friends {
		if key.userID == userID {
			ids = append(ids, key.friendID)
		}
	}
	sort.Ints(ids)
	return ids
}

func (s *Store) collectUsersLocked(ids []int) []domain.User {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users
}

func (s *Store) cascadeUserDelete(userID int) {
	for key := range s.friends {
		if key.userID == userID || key.friendID == userID {
			delete(s.friends, key)
		}
	}
	for key := range s.likes {
		if key.userID == userID {
			delete(s.likes, key)
		}
	}
}
