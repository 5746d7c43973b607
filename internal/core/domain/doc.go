// Package domain defines the core business entities for FlowAtlas.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - System, Interface, DataFormat, TransmissionMethod: the catalog
//     entities of a data-exchange landscape
//   - DataFlow: a directed transfer of data between two systems, the
//     unit of search result
//   - QueryEntities, ScoreDelta, FlowMatch: query-scoped types produced
//     and consumed by the resolution pipeline
//   - ScoringConfig: the tunable weights of the pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
