//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/repository"
	"github.com/aisboost/aisboost/internal/testutil"
)

// setupTestDB spins up a Postgres container, applies migrations and returns
// a repository plus the connection string.
func setupTestDB(t *testing.T) (*repository.Repository, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("aisboost_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, repository.MigrateUp(connStr))

	repo, err := repository.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	return repo, connStr
}

func createUser(t *testing.T, repo *repository.Repository, email string) *model.User {
	t.Helper()
	user := testutil.NewTestUser(t, email)
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func createApplication(t *testing.T, repo *repository.Repository, userID, name string) *model.Application {
	t.Helper()
	app := testutil.NewTestApplication(t, userID, name)
	require.NoError(t, repo.CreateApplication(context.Background(), app))
	return app
}

func createTemplate(t *testing.T, repo *repository.Repository, userID, applicationID string) *model.Template {
	t.Helper()
	tpl := testutil.NewTestTemplate(t, applicationID, model.TemplateLootlabs)
	require.NoError(t, repo.CreateTemplateForUser(context.Background(), userID, tpl))
	return tpl
}
