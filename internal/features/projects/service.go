package projects

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrInvalidSlug = errors.New("slug must contain only lowercase letters, digits and hyphens")

// Service is the calling layer of the repository: it turns absent results
// and storage faults into ProjectErrors and enforces ownership.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Get returns a project readable by viewerID: its own, or any public one.
func (s *Service) Get(ctx context.Context, viewerID, id uuid.UUID) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, NewNotFoundError(id.String())
	}
	if !canRead(project, viewerID) {
		return nil, NewAccessDeniedError(id.String())
	}
	return project, nil
}

func (s *Service) GetBySlug(ctx context.Context, viewerID uuid.UUID, projectSlug string) (*Project, error) {
	project, err := s.repo.FindBySlug(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, NewNotFoundError(projectSlug)
	}
	if !canRead(project, viewerID) {
		return nil, NewAccessDeniedError(project.ID.String())
	}
	return project, nil
}

func (s *Service) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]Project, int64, error) {
	projects, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateProjectRequest) (*Project, error) {
	log := logging.Logger(ctx, "projects.service")

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	projectSlug := strings.TrimSpace(req.Slug)
	if projectSlug == "" {
		projectSlug = slug.Make(req.Name)
	}
	if !slug.IsSlug(projectSlug) {
		return nil, ErrInvalidSlug
	}

	log.Info("project.create_started", "slug", projectSlug)

	// Uniqueness is left to the database constraint; a pre-check would race
	// with concurrent inserts.
	project, err := s.repo.Create(ctx, NewProject{
		Name:        req.Name,
		Slug:        projectSlug,
		Description: nonBlank(req.Description),
		IsPublic:    req.IsPublic,
		OwnerID:     ownerID,
	})
	if err != nil {
		if database.IsUniqueViolation(err) && database.ConstraintName(err) == slugUniqueConstraint {
			log.Info("project.create_conflict", "slug", projectSlug)
			return nil, NewSlugExistsError(projectSlug)
		}
		log.Error("project.create_failed", "slug", projectSlug, "error", err)
		return nil, err
	}

	log.Info("project.create_completed", "project_id", project.ID, "slug", project.Slug)
	return project, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateProjectRequest) (*Project, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, ownerID, id); err != nil {
		return nil, err
	}

	update := ProjectUpdate{Name: req.Name, IsPublic: req.IsPublic}
	if req.Description != nil {
		if description := strings.TrimSpace(*req.Description); description == "" {
			update.ClearDescription = true
		} else {
			update.Description = &description
		}
	}

	project, err := s.repo.Update(ctx, id, update)
	if err != nil {
		logging.Logger(ctx, "projects.service").Error("project.update_failed", "project_id", id, "error", err)
		return nil, err
	}
	if project == nil {
		return nil, NewNotFoundError(id.String())
	}

	logging.Logger(ctx, "projects.service").Info("project.update_completed", "project_id", id)
	return project, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.authorize(ctx, ownerID, id); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		logging.Logger(ctx, "projects.service").Error("project.delete_failed", "project_id", id, "error", err)
		return err
	}
	if !deleted {
		return NewNotFoundError(id.String())
	}

	logging.Logger(ctx, "projects.service").Info("project.delete_completed", "project_id", id)
	return nil
}

// authorize loads the project for a write by ownerID. A miss on the
// id+owner lookup is resolved into not-found or access-denied.
func (s *Service) authorize(ctx context.Context, ownerID, id uuid.UUID) (*Project, error) {
	project, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if project != nil {
		return project, nil
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, NewNotFoundError(id.String())
	}
	return nil, NewAccessDeniedError(id.String())
}

func canRead(project *Project, viewerID uuid.UUID) bool {
	return project.IsPublic || project.OwnerID == viewerID
}

// nonBlank trims s and maps an empty result to nil.
func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
