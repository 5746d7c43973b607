package driving

import (
	"context"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

// QueryService resolves natural-language queries against the current
// index snapshot.
type QueryService interface {
	// Resolve turns free-text into a ranked set of matching data flows.
	// An empty or unintelligible query yields an empty result, never an
	// error; resolution itself has no fatal failure modes.
	Resolve(ctx context.Context, text string, opts domain.QueryOptions) (*domain.QueryResult, error)
}
