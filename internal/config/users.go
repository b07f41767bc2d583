package config

import (
	"errors"
	"fmt"
)

var (
	// ErrLastUser rejects a delete that would leave the user list empty.
	ErrLastUser = errors.New("cannot delete the last remaining user")
	// ErrUnknownUser indicates an id that matches no configured user.
	ErrUnknownUser = errors.New("unknown user id")
	// ErrDuplicateUser indicates an id that is already taken.
	ErrDuplicateUser = errors.New("duplicate user id")
)

// AddUser appends a user. The first user added becomes the current user.
func AddUser(cfg *Configuration, u User) error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	for _, existing := range cfg.Users.Users {
		if existing.ID == u.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, u.ID)
		}
	}
	cfg.Users.Users = append(cfg.Users.Users, u)
	if cfg.Users.CurrentUserID == "" {
		cfg.Users.CurrentUserID = u.ID
	}
	return nil
}

// DeleteUser removes a user by id. Deleting the sole remaining user is
// rejected. If the deleted user was current, the pointer is reassigned to
// the first remaining user.
func DeleteUser(cfg *Configuration, id string) error {
	users := cfg.Users.Users
	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	if len(users) == 1 {
		return ErrLastUser
	}

	cfg.Users.Users = append(users[:idx:idx], users[idx+1:]...)
	if cfg.Users.CurrentUserID == id {
		cfg.Users.CurrentUserID = cfg.Users.Users[0].ID
	}
	return nil
}

// SetCurrentUser points currentUserId at an existing user.
func SetCurrentUser(cfg *Configuration, id string) error {
	for _, u := range cfg.Users.Users {
		if u.ID == id {
			cfg.Users.CurrentUserID = id
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownUser, id)
}
