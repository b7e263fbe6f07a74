package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, validate: validator.New()}
}

// Sync inserts the user row for an auth identity if it does not exist yet.
// It stands in for the auth provider's database trigger and is a no-op when
// the trigger already ran.
func (s *UserService) Sync(ctx context.Context, id uuid.UUID, email string) error {
	user := models.User{ID: id, Email: email}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&user).Error
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}

// UpdateProfile sets the supplied profile fields. An empty string clears a
// field.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if req.DisplayName != nil {
		updates["display_name"] = nullable(*req.DisplayName)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = nullable(*req.AvatarURL)
	}

	var user models.User
	result := s.db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
