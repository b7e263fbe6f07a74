package projects

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func projectOrNil(v any) *Project {
	if v == nil {
		return nil
	}
	return v.(*Project)
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	args := m.Called(ctx, id)
	return projectOrNil(args.Get(0)), args.Error(1)
}

func (m *mockRepository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	args := m.Called(ctx, slug)
	return projectOrNil(args.Get(0)), args.Error(1)
}

func (m *mockRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Project, error) {
	args := m.Called(ctx, ownerID)
	projects, _ := args.Get(0).([]Project)
	return projects, args.Error(1)
}

func (m *mockRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Project, error) {
	args := m.Called(ctx, id, ownerID)
	return projectOrNil(args.Get(0)), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, data NewProject) (*Project, error) {
	args := m.Called(ctx, data)
	return projectOrNil(args.Get(0)), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, data ProjectUpdate) (*Project, error) {
	args := m.Called(ctx, id, data)
	return projectOrNil(args.Get(0)), args.Error(1)
}

func (m *mockRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}
