package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tickoff/tickoff-be/internal/auth"
	"github.com/tickoff/tickoff-be/internal/services"
	"github.com/tickoff/tickoff-be/internal/storage"
)

// UserHandler handles registration, login and account lookup.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.Register(payload.Name, payload.Email, payload.Password); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateEmail):
			respondMessage(w, http.StatusBadRequest, "Email is already registered")
		case errors.Is(err, services.ErrInvalidInput):
			respondMessage(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
			respondMessage(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	respondMessage(w, http.StatusOK, "User registered")
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respondMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetMe returns the account of the authenticated caller, and nobody
// else's.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found in store")
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}
