package domain

import "time"

// User represents a registered user in the domain. Identity is the id alone.
// Friendship edges are not held on the entity; they live in the friendship
// relation managed by the user repository.
type User struct {
	ID       int       `json:"id"` // Primary Key, assigned by the store on creation
	Email    string    `json:"email"`
	Login    string    `json:"login"`
	Name     string    `json:"name"` // defaults to Login when blank
	Birthday time.Time `json:"birthday"`
}
