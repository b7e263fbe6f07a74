package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an auth provider identity. The ID is issued by Supabase Auth,
// never generated here.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"type:text;not null" json:"email"`
	DisplayName *string   `gorm:"type:text" json:"display_name"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
