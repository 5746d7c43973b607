package driven

import (
	"context"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

// DatasetLoader reads a source dataset into domain objects. Loading is the
// ingestion collaborator's concern and happens before any query is served;
// the engine itself performs no I/O.
type DatasetLoader interface {
	// Load parses the dataset at the given path.
	Load(ctx context.Context, path string) (*domain.Dataset, error)
}
