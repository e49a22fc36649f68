package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickoff/tickoff-be/internal/models"
)

func newTestStore(t *testing.T) (*JSONFileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := NewJSONFileStore(path)
	require.NoError(t, err)
	return store, path
}

func TestNewJSONFileStore_InitializesFile(t *testing.T) {
	_, path := newTestStore(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "users")
	assert.Contains(t, doc, "todos")
}

func TestNewJSONFileStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONFileStore(path)
	assert.Error(t, err)
}

func TestUsers_PersistAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)

	user := models.User{
		ID:           "u1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.CreateUser(user))

	// A fresh store over the same file sees the record.
	reopened, err := NewJSONFileStore(path)
	require.NoError(t, err)

	got, err := reopened.GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash, "hash must survive the json:\"-\" tag via the store document")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.CreateUser(models.User{ID: "u1", Email: "a@example.com"}))
	err := store.CreateUser(models.User{ID: "u2", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUser_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetUserByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTasks_CRUD(t *testing.T) {
	store, path := newTestStore(t)

	t1 := models.Task{ID: "t1", Content: "first", Priority: models.PriorityLow, Date: "2025-06-01", Status: models.StatusTodo, OwnerID: "u1"}
	t2 := models.Task{ID: "t2", Content: "second", Priority: models.PriorityHigh, Date: "2025-06-02", Status: models.StatusTodo, OwnerID: "u1"}
	other := models.Task{ID: "t3", Content: "foreign", Priority: models.PriorityLow, Date: "2025-06-01", Status: models.StatusTodo, OwnerID: "u2"}

	require.NoError(t, store.CreateTask(t1))
	require.NoError(t, store.CreateTask(other))
	require.NoError(t, store.CreateTask(t2))

	tasks, err := store.ListTasksByOwner("u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.Equal(t, "t2", tasks[1].ID)

	t1.Status = models.StatusCompleted
	require.NoError(t, store.UpdateTask(t1))

	got, err := store.GetTaskByID("t1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	require.NoError(t, store.DeleteTask("t1"))
	_, err = store.GetTaskByID("t1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Mutations survive a reopen.
	reopened, err := NewJSONFileStore(path)
	require.NoError(t, err)
	tasks, err = reopened.ListTasksByOwner("u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].ID)
}

func TestUpdateDeleteTask_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	assert.ErrorIs(t, store.UpdateTask(models.Task{ID: "missing"}), ErrNotFound)
	assert.ErrorIs(t, store.DeleteTask("missing"), ErrNotFound)
}
