package storage

import (
	"database/sql"

	"github.com/tickoff/tickoff-be/internal/models"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore is the SQLite-backed alternative to the JSON file store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dataSourceName and applies the
// schema migration.
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS todos (
		id TEXT NOT NULL PRIMARY KEY,
		content TEXT NOT NULL,
		priority TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		owner_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(sqlStmt)
	return err
}

// CreateUser inserts a new user, enforcing email uniqueness.
func (s *SQLiteStore) CreateUser(user models.User) error {
	var existing string
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", user.Email).Scan(&existing)
	if err == nil {
		return ErrDuplicateEmail
	}
	if err != sql.ErrNoRows {
		return err
	}
	_, err = s.db.Exec("INSERT INTO users(id, name, email, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	return err
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, including the password hash.
func (s *SQLiteStore) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateTask inserts a new task.
func (s *SQLiteStore) CreateTask(task models.Task) error {
	_, err := s.db.Exec("INSERT INTO todos(id, content, priority, date, status, owner_id, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.Content, string(task.Priority), task.Date, string(task.Status), task.OwnerID, task.CreatedAt)
	return err
}

// GetTaskByID retrieves a task by ID.
func (s *SQLiteStore) GetTaskByID(id string) (models.Task, error) {
	var task models.Task
	row := s.db.QueryRow("SELECT id, content, priority, date, status, owner_id, created_at FROM todos WHERE id = ?", id)
	err := row.Scan(&task.ID, &task.Content, &task.Priority, &task.Date, &task.Status, &task.OwnerID, &task.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ListTasksByOwner returns the owner's tasks in insertion order.
func (s *SQLiteStore) ListTasksByOwner(ownerID string) ([]models.Task, error) {
	rows, err := s.db.Query("SELECT id, content, priority, date, status, owner_id, created_at FROM todos WHERE owner_id = ? ORDER BY rowid", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Content, &task.Priority, &task.Date, &task.Status, &task.OwnerID, &task.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask replaces the stored task with the same ID.
func (s *SQLiteStore) UpdateTask(task models.Task) error {
	res, err := s.db.Exec("UPDATE todos SET content = ?, priority = ?, date = ?, status = ? WHERE id = ?",
		task.Content, string(task.Priority), task.Date, string(task.Status), task.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes the task with the given ID permanently.
func (s *SQLiteStore) DeleteTask(id string) error {
	res, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
