package projects

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(repo Repository, userID uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(session.ContextKey, &jwt.Token{Claims: jwt.MapClaims{"sub": userID.String()}})
		return c.Next()
	})
	Mount(app, NewProjectHandler(NewService(repo)))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func decodeError(t *testing.T, b []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestProjectHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("create returns 201", func(t *testing.T) {
		repo := new(mockRepository)
		created := &Project{ID: uuid.New(), Name: "Alpha", Slug: "alpha", OwnerID: userID}
		repo.On("Create", mock.Anything, NewProject{Name: "Alpha", Slug: "alpha", OwnerID: userID}).Return(created, nil)

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodPost, "/projects", `{"name":"Alpha","slug":"alpha"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got Project
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, created.ID, got.ID)
		assert.False(t, got.IsPublic)
	})

	t.Run("duplicate slug returns 409", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, &pgconn.PgError{Code: "23505", ConstraintName: slugUniqueConstraint})

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodPost, "/projects", `{"name":"Beta","slug":"alpha"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		errResp := decodeError(t, body)
		assert.True(t, errResp.Error)
		assert.Equal(t, "PROJECT_SLUG_EXISTS", errResp.Code)
		assert.Equal(t, "Project slug already exists: alpha", errResp.Message)
	})

	t.Run("invalid slug returns 400", func(t *testing.T) {
		resp, body := doRequest(t, newTestApp(new(mockRepository), userID), http.MethodPost, "/projects", `{"name":"Beta","slug":"UPPER case"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, body).Code)
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		resp, body := doRequest(t, newTestApp(new(mockRepository), userID), http.MethodPost, "/projects", `{"slug":"alpha"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, body).Code)
	})

	t.Run("get unknown project returns 404", func(t *testing.T) {
		repo := new(mockRepository)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodGet, "/projects/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "PROJECT_NOT_FOUND", decodeError(t, body).Code)
	})

	t.Run("get by slug of private foreign project returns 403", func(t *testing.T) {
		repo := new(mockRepository)
		project := &Project{ID: uuid.New(), Slug: "secret", OwnerID: uuid.New()}
		repo.On("FindBySlug", mock.Anything, "secret").Return(project, nil)

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodGet, "/projects/slug/secret", "")

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "PROJECT_ACCESS_DENIED", decodeError(t, body).Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		resp, body := doRequest(t, newTestApp(new(mockRepository), userID), http.MethodGet, "/projects/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, body).Code)
	})

	t.Run("list returns owned projects and total", func(t *testing.T) {
		repo := new(mockRepository)
		owned := []Project{{ID: uuid.New(), OwnerID: userID, Slug: "a"}}
		repo.On("FindByOwnerID", mock.Anything, userID).Return(owned, nil)
		repo.On("CountByOwnerID", mock.Anything, userID).Return(int64(1), nil)

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodGet, "/projects", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got ProjectListResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, int64(1), got.Total)
		assert.Len(t, got.Projects, 1)
	})

	t.Run("patch updates owned project", func(t *testing.T) {
		repo := new(mockRepository)
		project := &Project{ID: uuid.New(), OwnerID: userID, Name: "Old"}
		public := true
		repo.On("FindByIDAndOwner", mock.Anything, project.ID, userID).Return(project, nil)
		repo.On("Update", mock.Anything, project.ID, ProjectUpdate{IsPublic: &public}).
			Return(&Project{ID: project.ID, OwnerID: userID, Name: "Old", IsPublic: true}, nil)

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodPatch, "/projects/"+project.ID.String(), `{"is_public":true}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got Project
		require.NoError(t, json.Unmarshal(body, &got))
		assert.True(t, got.IsPublic)
	})

	t.Run("patch with empty description clears it", func(t *testing.T) {
		repo := new(mockRepository)
		old := "old"
		project := &Project{ID: uuid.New(), OwnerID: userID, Name: "Described", Description: &old}
		repo.On("FindByIDAndOwner", mock.Anything, project.ID, userID).Return(project, nil)
		repo.On("Update", mock.Anything, project.ID, ProjectUpdate{ClearDescription: true}).
			Return(&Project{ID: project.ID, OwnerID: userID, Name: "Described"}, nil)

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodPatch, "/projects/"+project.ID.String(), `{"description":""}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Contains(t, got, "description")
		assert.Nil(t, got["description"])
		repo.AssertExpectations(t)
	})

	t.Run("delete returns 204", func(t *testing.T) {
		repo := new(mockRepository)
		project := &Project{ID: uuid.New(), OwnerID: userID}
		repo.On("FindByIDAndOwner", mock.Anything, project.ID, userID).Return(project, nil)
		repo.On("DeleteByID", mock.Anything, project.ID).Return(true, nil)

		resp, _ := doRequest(t, newTestApp(repo, userID), http.MethodDelete, "/projects/"+project.ID.String(), "")

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("storage fault returns 500 without details", func(t *testing.T) {
		repo := new(mockRepository)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, assert.AnError)

		resp, body := doRequest(t, newTestApp(repo, userID), http.MethodGet, "/projects/"+id.String(), "")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		errResp := decodeError(t, body)
		assert.Equal(t, "INTERNAL_ERROR", errResp.Code)
		assert.NotContains(t, errResp.Message, assert.AnError.Error())
	})
}
