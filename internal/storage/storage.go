package storage

import (
	"errors"

	"github.com/tickoff/tickoff-be/internal/models"
)

// Sentinel errors returned by repositories.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user with the same email
	// already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	CreateUser(user models.User) error
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
}

// TaskRepository defines persistence for tasks. ListTasksByOwner must
// preserve the stored ordering of tasks.
type TaskRepository interface {
	CreateTask(task models.Task) error
	GetTaskByID(id string) (models.Task, error)
	ListTasksByOwner(ownerID string) ([]models.Task, error)
	UpdateTask(task models.Task) error
	DeleteTask(id string) error
}

// Store combines the repositories over a single backing store.
type Store interface {
	UserRepository
	TaskRepository
	Close() error
}
