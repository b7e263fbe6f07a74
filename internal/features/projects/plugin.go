package projects

import (
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectsFeature struct{}

func New() *ProjectsFeature {
	return &ProjectsFeature{}
}

func (f *ProjectsFeature) ID() string { return "projects" }

func (f *ProjectsFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	handler := NewProjectHandler(NewService(NewProjectRepository(db)))
	Mount(router, handler)
}

// Mount registers the project routes on router.
func Mount(router fiber.Router, handler *ProjectHandler) {
	router.Get("/projects", handler.List)
	router.Post("/projects", handler.Create)
	router.Get("/projects/slug/:slug", handler.GetBySlug)
	router.Get("/projects/:id", handler.Get)
	router.Patch("/projects/:id", handler.Update)
	router.Delete("/projects/:id", handler.Delete)
}
