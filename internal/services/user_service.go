package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tickoff/tickoff-be/internal/models"
	"github.com/tickoff/tickoff-be/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is tuned for interactive login latency.
const bcryptCost = 10

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(name, email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	users storage.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users storage.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a new account with a salted one-way hash of the
// password. The raw password is never stored, returned or logged.
func (s *UserService) Register(name, email, password string) (models.User, error) {
	if name == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(user); err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password both return ErrInvalidCredentials so callers cannot probe
// for registered accounts.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// bcrypt comparison is constant-time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
