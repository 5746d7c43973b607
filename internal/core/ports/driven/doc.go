// Package driven defines the secondary (driven) ports of the hexagon.
// These are interfaces the core services require from infrastructure:
// the index snapshot, its atomic publication point, and the dataset
// loader. Adapters under internal/adapters/driven implement them.
package driven
