package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/tickoff/tickoff-be/internal/auth"
	"github.com/tickoff/tickoff-be/internal/models"
	"github.com/tickoff/tickoff-be/internal/services"
	"github.com/tickoff/tickoff-be/internal/storage"
)

// TaskHandler handles HTTP requests for the todo resource.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTaskPayload defines the structure for create requests. There is
// deliberately no owner field; the owner is always the caller.
type CreateTaskPayload struct {
	Content  string          `json:"content"`
	Priority models.Priority `json:"priority"`
	Date     string          `json:"date"`
}

// List returns the caller's tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	tasks, err := h.service.List(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list todos")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve todos")
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// Create stores a new task owned by the caller. Unknown body fields are
// rejected, so a smuggled ownerId can never reach the store.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var payload CreateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.Create(claims.UserID, payload.Content, payload.Priority, payload.Date)
	if err != nil {
		h.writeTaskError(w, claims.UserID, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Update applies a partial update to one of the caller's tasks.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	id := chi.URLParam(r, "id")

	var patch models.TaskPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.Update(claims.UserID, id, patch)
	if err != nil {
		h.writeTaskError(w, claims.UserID, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Delete permanently removes one of the caller's tasks.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(claims.UserID, id); err != nil {
		h.writeTaskError(w, claims.UserID, err)
		return
	}

	respondMessage(w, http.StatusOK, "Todo deleted")
}

// writeTaskError maps service errors onto the HTTP surface.
func (h *TaskHandler) writeTaskError(w http.ResponseWriter, userID string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Todo not found")
	case errors.Is(err, services.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrInvalidInput):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("user_id", userID).Msg("Todo operation failed")
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
