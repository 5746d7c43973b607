package memory

import (
	"sync/atomic"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
)

// Ensure Holder implements the interface.
var _ driven.SnapshotProvider = (*Holder)(nil)

// Holder publishes the current snapshot with a single atomic reference
// swap. Readers take no locks; queries in flight keep the snapshot they
// captured even while a reload publishes a newer one, so a half-built
// index is never observable.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder creates a holder, optionally seeded with an initial snapshot.
func NewHolder(initial *Snapshot) *Holder {
	h := &Holder{}
	if initial != nil {
		h.current.Store(initial)
	}
	return h
}

// Current returns the published snapshot, or nil before the first load.
func (h *Holder) Current() driven.IndexSnapshot {
	snap := h.current.Load()
	if snap == nil {
		return nil
	}
	return snap
}

// Swap atomically publishes a new snapshot.
func (h *Holder) Swap(snap *Snapshot) {
	h.current.Store(snap)
}
