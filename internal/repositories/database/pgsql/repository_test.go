package pgsql_test

import (
	"context"
	"os"
	"testing"

	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/filmorate/filmorate_app/internal/repositories/contract"
	"github.com/filmorate/filmorate_app/internal/repositories/database/pgsql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// The persistent variant runs the shared storage behaviour suite against a
// real database. It needs TEST_PGSQL_URL pointing at a migrated database and
// is skipped otherwise; the suite wipes films and users between tests.
func TestPgsqlRepositorySuite(t *testing.T) {
	url := os.Getenv("TEST_PGSQL_URL")
	if url == "" {
		t.Skip("TEST_PGSQL_URL not set; skipping database integration tests")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	defer pool.Close()

	suite.Run(t, &contract.RepositorySuite{
		NewProvider: func() portsrepo.RepositoryProvider {
			return pgsql.NewRepositoryProvider(pool)
		},
	})
}
