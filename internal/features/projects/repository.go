package projects

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNoRowReturned = errors.New("failed to create project")

// Repository is the query surface over the projects table. Finders return
// nil (or an empty slice) when nothing matches; storage faults are returned
// unmodified.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Project, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Project, error)
	Create(ctx context.Context, data NewProject) (*Project, error)
	Update(ctx context.Context, id uuid.UUID, data ProjectUpdate) (*Project, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	return r.first(ctx, "slug = ?", slug)
}

// FindByOwnerID returns every project of the owner in no particular order.
func (r *ProjectRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Project, error) {
	projects := make([]Project, 0)
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&projects).Error
	return projects, err
}

// FindByIDAndOwner is the lookup behind ownership checks.
func (r *ProjectRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Project, error) {
	return r.first(ctx, "id = ? AND owner_id = ?", id, ownerID)
}

// Create inserts a project. The id and the timestamps come back from the
// insert. A duplicate slug or unknown owner surfaces as the driver error.
func (r *ProjectRepository) Create(ctx context.Context, data NewProject) (*Project, error) {
	project := Project{
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		OwnerID:     data.OwnerID,
	}
	if data.IsPublic != nil {
		project.IsPublic = *data.IsPublic
	}

	result := r.db.WithContext(ctx).Create(&project)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || project.ID == uuid.Nil {
		return nil, errNoRowReturned
	}
	return &project, nil
}

// Update applies the non-nil fields and always refreshes updated_at, so a
// call with no fields still bumps the timestamp. Returns nil when no row
// has the id.
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, data ProjectUpdate) (*Project, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.ClearDescription {
		updates["description"] = nil
	} else if data.Description != nil {
		updates["description"] = *data.Description
	}
	if data.IsPublic != nil {
		updates["is_public"] = *data.IsPublic
	}

	var project Project
	result := r.db.WithContext(ctx).
		Model(&project).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &project, nil
}

// DeleteByID hard-deletes the project and reports whether a row was removed.
func (r *ProjectRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Project{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProjectRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Project{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// first takes the first row of a LIMIT 1 result. Find avoids the
// ErrRecordNotFound round trip through the logger for plain absence.
func (r *ProjectRepository) first(ctx context.Context, query string, args ...any) (*Project, error) {
	var projects []Project
	if err := r.db.WithContext(ctx).Where(query, args...).Limit(1).Find(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}
