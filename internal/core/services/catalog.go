package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driving"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService exposes the indexed entities for listing and lookup.
type CatalogService struct {
	provider driven.SnapshotProvider
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(provider driven.SnapshotProvider) *CatalogService {
	return &CatalogService{provider: provider}
}

// snapshot fetches the current snapshot or fails when none is published.
func (s *CatalogService) snapshot() (driven.IndexSnapshot, error) {
	snap := s.provider.Current()
	if snap == nil {
		return nil, domain.ErrSnapshotUnavailable
	}
	return snap, nil
}

// ListFlows returns flows matching the filter. Filter names are compared
// case- and accent-insensitively, like query matching.
func (s *CatalogService) ListFlows(_ context.Context, filter driving.FlowFilter) ([]domain.DataFlow, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	flows := snap.Flows()
	out := make([]domain.DataFlow, 0, len(flows))
	for _, flow := range flows {
		if !flowMatchesFilter(snap, &flow, filter) {
			continue
		}
		out = append(out, flow)
	}
	return out, nil
}

// flowMatchesFilter checks each populated filter field against the flow.
func flowMatchesFilter(snap driven.IndexSnapshot, flow *domain.DataFlow, filter driving.FlowFilter) bool {
	if filter.SourceSystem != "" {
		sys, ok := snap.SystemByID(flow.SourceID)
		if !ok || !sameName(sys.Name, filter.SourceSystem) {
			return false
		}
	}
	if filter.TargetSystem != "" {
		sys, ok := snap.SystemByID(flow.TargetID)
		if !ok || !sameName(sys.Name, filter.TargetSystem) {
			return false
		}
	}
	if filter.Format != "" {
		format, ok := snap.FormatByID(flow.FormatID)
		if !ok || !sameName(format.Name, filter.Format) {
			return false
		}
	}
	if filter.Method != "" {
		found := false
		for _, id := range flow.MethodIDs {
			if m, ok := snap.MethodByID(id); ok && sameName(m.Name, filter.Method) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sameName compares two names in normalized form.
func sameName(a, b string) bool {
	return textutil.Normalize(a) == textutil.Normalize(b)
}

// GetFlow returns a single flow by ID.
func (s *CatalogService) GetFlow(_ context.Context, id string) (*domain.DataFlow, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("flow ID is empty: %w", domain.ErrInvalidInput)
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	flow, ok := snap.FlowByID(id)
	if !ok {
		return nil, fmt.Errorf("flow %q: %w", id, domain.ErrNotFound)
	}
	return &flow, nil
}

// ListSystems returns all systems.
func (s *CatalogService) ListSystems(_ context.Context) ([]domain.System, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Systems(), nil
}

// ListFormats returns all data formats.
func (s *CatalogService) ListFormats(_ context.Context) ([]domain.DataFormat, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Formats(), nil
}

// ListMethods returns all transmission methods.
func (s *CatalogService) ListMethods(_ context.Context) ([]domain.TransmissionMethod, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Methods(), nil
}

// ListInterfaces returns all interfaces.
func (s *CatalogService) ListInterfaces(_ context.Context) ([]domain.Interface, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Interfaces(), nil
}
