// ABOUTME: Runs the shared repository conformance suite against the map backend.
// ABOUTME: Nothing backend-specific beyond construction.

package memory

import (
	"testing"

	"github.com/harper/folio/internal/repository"
	"github.com/harper/folio/internal/repository/repotest"
)

func TestRepositoryConformance(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return NewRepository()
	})
}
