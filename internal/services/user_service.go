package services

import (
	"fmt"

	"litreview_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService defines the interface for user-related operations
type UserService interface {
	EnsureUser(userID uuid.UUID) (*models.User, error)
	GetUserByID(userID uuid.UUID) (*models.User, error)
}

// DefaultUserService implements UserService
type DefaultUserService struct {
	db *gorm.DB
}

// NewUserService creates a new DefaultUserService
func NewUserService(db *gorm.DB) UserService {
	return &DefaultUserService{db: db}
}

// EnsureUser creates a stub user record on first authenticated request if one
// does not exist yet. The email is a placeholder until real authentication
// replaces the header stub.
func (s *DefaultUserService) EnsureUser(userID uuid.UUID) (*models.User, error) {
	user := models.User{
		ID:    userID,
		Email: fmt.Sprintf("%s@stub.local", userID),
	}
	result := s.db.Where(models.User{ID: userID}).FirstOrCreate(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// GetUserByID retrieves a user by their id
func (s *DefaultUserService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	result := s.db.Where("id = ?", userID).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
