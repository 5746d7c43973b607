package driven

import (
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

// VocabEntry is one recognizable name in the index vocabulary. Entries are
// keyed by normalized name so entity recognition is case- and
// accent-insensitive. Aliases produce additional entries pointing at the
// same entity.
type VocabEntry struct {
	// Norm is the normalized name (see textutil.Normalize).
	Norm string

	// TokenCount is the number of words in Norm, used for
	// longest-match-first scanning.
	TokenCount int

	// Kind classifies the entity the entry resolves to.
	Kind domain.EntityKind

	// EntityID is the ID of the resolved entity.
	EntityID string

	// Name is the canonical display name of the resolved entity.
	Name string
}

// IndexSnapshot is the immutable, point-in-time view of the data-exchange
// landscape. A snapshot is built once per data load and never mutated;
// it is therefore safe for unlimited concurrent readers. Every resolution
// call captures one snapshot and uses it throughout.
type IndexSnapshot interface {
	// Systems returns all systems in the snapshot.
	Systems() []domain.System

	// Interfaces returns all interfaces in the snapshot.
	Interfaces() []domain.Interface

	// Formats returns all data formats in the snapshot.
	Formats() []domain.DataFormat

	// Methods returns all transmission methods in the snapshot.
	Methods() []domain.TransmissionMethod

	// Flows returns all valid data flows in the snapshot. Flows with
	// dangling references are excluded at build time and reported via
	// Diagnostics.
	Flows() []domain.DataFlow

	// FlowByID looks up a single flow.
	FlowByID(id string) (domain.DataFlow, bool)

	// SystemByID looks up a single system.
	SystemByID(id string) (domain.System, bool)

	// FormatByID looks up a single format.
	FormatByID(id string) (domain.DataFormat, bool)

	// MethodByID looks up a single transmission method.
	MethodByID(id string) (domain.TransmissionMethod, bool)

	// InterfaceByID looks up a single interface.
	InterfaceByID(id string) (domain.Interface, bool)

	// Lookup resolves a normalized name or alias to a vocabulary entry.
	Lookup(norm string) (VocabEntry, bool)

	// Vocabulary returns all entries. Order is unspecified.
	Vocabulary() []VocabEntry

	// MaxNameTokens returns the word count of the longest name in the
	// vocabulary, bounding the n-gram window during extraction.
	MaxNameTokens() int

	// Diagnostics returns non-fatal integrity findings recorded while
	// building the snapshot (e.g., flows dropped for dangling references).
	Diagnostics() []string
}

// SnapshotProvider publishes the current snapshot. Reloads build a fresh
// snapshot and swap it in atomically; in-flight queries keep the snapshot
// they captured at query start.
type SnapshotProvider interface {
	// Current returns the published snapshot, or nil before the first load.
	Current() IndexSnapshot
}
