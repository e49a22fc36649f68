package models

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the completion state of a task. The only transition is the
// toggle between the two states.
type Status string

const (
	StatusTodo      Status = "TODO"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusCompleted
}

// DateLayout is the calendar-date format used for Task.Date.
const DateLayout = "2006-01-02"

// Task represents a single to-do item. OwnerID is bound to the creating
// user and never changes afterwards.
type Task struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Priority  Priority  `json:"priority"`
	Date      string    `json:"date"`
	Status    Status    `json:"status"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskPatch is the whitelisted partial-update payload for a task. Only
// the named fields can change; the owner cannot be patched. Nil fields
// keep their prior values.
type TaskPatch struct {
	Content  *string   `json:"content"`
	Priority *Priority `json:"priority"`
	Date     *string   `json:"date"`
	Status   *Status   `json:"status"`
}
