package memory_test

import (
	"testing"

	portsrepo "github.com/filmorate/filmorate_app/internal/core/ports/repositories"
	"github.com/filmorate/filmorate_app/internal/repositories/contract"
	"github.com/filmorate/filmorate_app/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

// The transient variant runs the shared storage behaviour suite; every
// check here applies verbatim to the pgsql variant as well.
func TestMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &contract.RepositorySuite{
		NewProvider: func() portsrepo.RepositoryProvider {
			return memory.NewRepositoryProvider()
		},
	})
}
