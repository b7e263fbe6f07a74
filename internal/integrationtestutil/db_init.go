package integrationtestutil

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDatabaseContainer starts a throwaway PostgreSQL, applies the embedded
// migrations and returns a connected handle. The container is terminated
// through t.Cleanup. Skipped under -short.
func InitDatabaseContainer(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}

	ctx := context.Background()
	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("dashboard"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	require.NoError(t, err)

	dsn, err := postgresC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user row the way the auth trigger would.
func CreateUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	id := uuid.New()
	user := models.User{ID: id, Email: id.String() + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
