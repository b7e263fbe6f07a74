package projects

import (
	"time"

	"github.com/google/uuid"
)

// slugUniqueConstraint is the constraint name from the projects migration.
const slugUniqueConstraint = "projects_slug_unique"

// Project is a row of the projects table. Slug and OwnerID are fixed at
// creation; the database enforces slug uniqueness and the owner foreign key.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Slug        string    `gorm:"type:text;not null;uniqueIndex:projects_slug_unique" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	IsPublic    bool      `gorm:"not null;default:false" json:"is_public"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_projects_owner_id" json:"owner_id"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// NewProject holds the insertable fields. A nil IsPublic leaves the column
// default (private) in place.
type NewProject struct {
	Name        string
	Slug        string
	Description *string
	IsPublic    *bool
	OwnerID     uuid.UUID
}

// ProjectUpdate holds the mutable fields; nil means unchanged.
// ClearDescription sets the description to NULL and wins over Description.
type ProjectUpdate struct {
	Name             *string
	Description      *string
	ClearDescription bool
	IsPublic         *bool
}

// --- DTOs ---

type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsPublic    *bool   `json:"is_public"`
}

// UpdateProjectRequest: an empty description clears it.
type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsPublic    *bool   `json:"is_public"`
}

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
	Total    int64     `json:"total"`
}
