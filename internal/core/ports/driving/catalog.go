package driving

import (
	"context"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

// FlowFilter narrows a flow listing. Empty fields match everything.
type FlowFilter struct {
	// SourceSystem matches flows whose source system has this name.
	SourceSystem string

	// TargetSystem matches flows whose target system has this name.
	TargetSystem string

	// Format matches flows carrying this format name.
	Format string

	// Method matches flows transmitted via this method name.
	Method string
}

// CatalogService exposes the indexed entities for listing and lookup.
type CatalogService interface {
	// ListFlows returns flows matching the filter.
	ListFlows(ctx context.Context, filter FlowFilter) ([]domain.DataFlow, error)

	// GetFlow returns a single flow by ID.
	GetFlow(ctx context.Context, id string) (*domain.DataFlow, error)

	// ListSystems returns all systems.
	ListSystems(ctx context.Context) ([]domain.System, error)

	// ListFormats returns all data formats.
	ListFormats(ctx context.Context) ([]domain.DataFormat, error)

	// ListMethods returns all transmission methods.
	ListMethods(ctx context.Context) ([]domain.TransmissionMethod, error)

	// ListInterfaces returns all interfaces.
	ListInterfaces(ctx context.Context) ([]domain.Interface, error)
}
