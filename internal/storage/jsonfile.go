package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tickoff/tickoff-be/internal/models"
)

// userRecord is the persisted form of a user. models.User hides the
// password hash from JSON responses with a `json:"-"` tag, so the store
// needs its own representation to keep the hash on disk.
type userRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRecord(u models.User) userRecord {
	return userRecord{ID: u.ID, Name: u.Name, Email: u.Email, Password: u.PasswordHash, CreatedAt: u.CreatedAt}
}

func (r userRecord) toUser() models.User {
	return models.User{ID: r.ID, Name: r.Name, Email: r.Email, PasswordHash: r.Password, CreatedAt: r.CreatedAt}
}

// document is the full persisted state. The whole document is read and
// rewritten on every mutation; last write wins.
type document struct {
	Users []userRecord  `json:"users"`
	Todos []models.Task `json:"todos"`
}

// JSONFileStore persists users and tasks in a single JSON file.
type JSONFileStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONFileStore opens (or initializes) the JSON document at path.
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	s := &JSONFileStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(&document{Users: []userRecord{}, Todos: []models.Task{}}); err != nil {
			return nil, fmt.Errorf("failed to initialize store file: %w", err)
		}
	}
	// Verify the existing file is readable before serving requests.
	if _, err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	return s, nil
}

func (s *JSONFileStore) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// save rewrites the document atomically via a temp file and rename, so
// a crash mid-write never leaves a truncated store behind.
func (s *JSONFileStore) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// CreateUser appends a new user, enforcing email uniqueness.
func (s *JSONFileStore) CreateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range doc.Users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	doc.Users = append(doc.Users, toRecord(user))
	return s.save(doc)
}

// GetUserByID retrieves a user by ID.
func (s *JSONFileStore) GetUserByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range doc.Users {
		if u.ID == id {
			return u.toUser(), nil
		}
	}
	return models.User{}, ErrNotFound
}

// GetUserByEmail retrieves a user by email, including the password hash.
func (s *JSONFileStore) GetUserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range doc.Users {
		if u.Email == email {
			return u.toUser(), nil
		}
	}
	return models.User{}, ErrNotFound
}

// CreateTask appends a new task.
func (s *JSONFileStore) CreateTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Todos = append(doc.Todos, task)
	return s.save(doc)
}

// GetTaskByID retrieves a task by ID.
func (s *JSONFileStore) GetTaskByID(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range doc.Todos {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, ErrNotFound
}

// ListTasksByOwner returns the owner's tasks in stored order.
func (s *JSONFileStore) ListTasksByOwner(ownerID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	for _, t := range doc.Todos {
		if t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// UpdateTask replaces the stored task with the same ID.
func (s *JSONFileStore) UpdateTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i, t := range doc.Todos {
		if t.ID == task.ID {
			doc.Todos[i] = task
			return s.save(doc)
		}
	}
	return ErrNotFound
}

// DeleteTask removes the task with the given ID permanently.
func (s *JSONFileStore) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i, t := range doc.Todos {
		if t.ID == id {
			doc.Todos = append(doc.Todos[:i], doc.Todos[i+1:]...)
			return s.save(doc)
		}
	}
	return ErrNotFound
}

// Close is a no-op; the file is opened per operation.
func (s *JSONFileStore) Close() error { return nil }
