package storage

import (
	"sync"

	"github.com/tickoff/tickoff-be/internal/models"
)

// MemoryStore keeps everything in process memory. Used by tests.
type MemoryStore struct {
	mu    sync.Mutex
	users []models.User
	todos []models.Task
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// CreateUser appends a new user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	s.users = append(s.users, user)
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *MemoryStore) GetUserByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// GetUserByEmail retrieves a user by email.
func (s *MemoryStore) GetUserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// CreateTask appends a new task.
func (s *MemoryStore) CreateTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append(s.todos, task)
	return nil
}

// GetTaskByID retrieves a task by ID.
func (s *MemoryStore) GetTaskByID(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.todos {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, ErrNotFound
}

// ListTasksByOwner returns the owner's tasks in insertion order.
func (s *MemoryStore) ListTasksByOwner(ownerID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := []models.Task{}
	for _, t := range s.todos {
		if t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// UpdateTask replaces the stored task with the same ID.
func (s *MemoryStore) UpdateTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.todos {
		if t.ID == task.ID {
			s.todos[i] = task
			return nil
		}
	}
	return ErrNotFound
}

// DeleteTask removes the task with the given ID.
func (s *MemoryStore) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.todos {
		if t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
