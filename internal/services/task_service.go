package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tickoff/tickoff-be/internal/models"
	"github.com/tickoff/tickoff-be/internal/storage"
	"github.com/tickoff/tickoff-be/internal/websocket"
)

// TaskServiceProvider defines the interface for task services. Every
// operation is scoped to the authenticated owner.
type TaskServiceProvider interface {
	Create(ownerID, content string, priority models.Priority, date string) (models.Task, error)
	List(ownerID string) ([]models.Task, error)
	Update(ownerID, id string, patch models.TaskPatch) (models.Task, error)
	Delete(ownerID, id string) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	tasks storage.TaskRepository
	hub   *websocket.Hub
	now   func() time.Time
}

// NewTaskService creates a new TaskService. hub may be nil when no live
// event feed is wanted.
func NewTaskService(tasks storage.TaskRepository, hub *websocket.Hub) *TaskService {
	return &TaskService{tasks: tasks, hub: hub, now: time.Now}
}

// Create stores a new task owned by ownerID. The owner binding is
// unconditional; any client-supplied owner field has already been
// discarded by the handler's whitelisted payload.
func (s *TaskService) Create(ownerID, content string, priority models.Priority, date string) (models.Task, error) {
	if content == "" {
		return models.Task{}, fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}
	if priority == "" {
		priority = models.PriorityLow
	}
	if !priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}
	if date == "" {
		date = s.now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.Task{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	task := models.Task{
		ID:        uuid.New().String(),
		Content:   content,
		Priority:  priority,
		Date:      date,
		Status:    models.StatusTodo,
		OwnerID:   ownerID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.tasks.CreateTask(task); err != nil {
		return models.Task{}, err
	}

	s.notify(ownerID, "task.created", task)
	return task, nil
}

// List returns the caller's tasks in stored order. Tasks owned by other
// users are never visible.
func (s *TaskService) List(ownerID string) ([]models.Task, error) {
	return s.tasks.ListTasksByOwner(ownerID)
}

// Update applies a whitelisted patch to one of the caller's tasks.
// Existence is checked before ownership, so a missing task and a
// foreign task are always reported consistently (404 then 403).
func (s *TaskService) Update(ownerID, id string, patch models.TaskPatch) (models.Task, error) {
	task, err := s.authorizeWrite(ownerID, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Content != nil {
		if *patch.Content == "" {
			return models.Task{}, fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
		}
		task.Content = *patch.Content
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	if patch.Date != nil {
		if _, err := time.Parse(models.DateLayout, *patch.Date); err != nil {
			return models.Task{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		task.Date = *patch.Date
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return models.Task{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
		}
		task.Status = *patch.Status
	}

	if err := s.tasks.UpdateTask(task); err != nil {
		return models.Task{}, err
	}

	s.notify(ownerID, "task.updated", task)
	return task, nil
}

// Delete permanently removes one of the caller's tasks.
func (s *TaskService) Delete(ownerID, id string) error {
	task, err := s.authorizeWrite(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.tasks.DeleteTask(id); err != nil {
		return err
	}
	s.notify(ownerID, "task.deleted", task)
	return nil
}

// authorizeWrite fetches the task and verifies the caller owns it.
// Existence check first, ownership second.
func (s *TaskService) authorizeWrite(ownerID, id string) (models.Task, error) {
	task, err := s.tasks.GetTaskByID(id)
	if err != nil {
		return models.Task{}, err
	}
	if task.OwnerID != ownerID {
		return models.Task{}, ErrForbidden
	}
	return task, nil
}

func (s *TaskService) notify(ownerID, action string, task models.Task) {
	if s.hub == nil {
		return
	}
	s.hub.NotifyUser(ownerID, websocket.NewTaskMessage(action, task))
}
