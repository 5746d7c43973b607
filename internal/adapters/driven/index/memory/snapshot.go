// Package memory provides the in-memory index snapshot: an immutable,
// queryable view of the data-exchange landscape built once per data load.
// Snapshots are never mutated after construction, which makes them safe
// for unlimited concurrent readers; reloads build a fresh snapshot and
// publish it through the Holder.
package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// Ensure Snapshot implements the interface.
var _ driven.IndexSnapshot = (*Snapshot)(nil)

// Snapshot is the immutable index implementation. All lookup maps are
// fully built by Build and read-only afterwards.
type Snapshot struct {
	systems    []domain.System
	interfaces []domain.Interface
	formats    []domain.DataFormat
	methods    []domain.TransmissionMethod
	flows      []domain.DataFlow

	systemsByID    map[string]domain.System
	interfacesByID map[string]domain.Interface
	formatsByID    map[string]domain.DataFormat
	methodsByID    map[string]domain.TransmissionMethod
	flowsByID      map[string]domain.DataFlow

	vocab         map[string]driven.VocabEntry
	maxNameTokens int

	diagnostics []string
}

// Build validates the dataset and constructs a snapshot. Flows whose
// references do not resolve within the dataset are excluded and reported
// via Diagnostics rather than failing the build; one malformed flow must
// not take the whole index down. Aliases map alternative spellings
// (normalized form) to canonical entity names and extend the recognition
// vocabulary.
func Build(dataset *domain.Dataset, aliases map[string]string) (*Snapshot, error) {
	if dataset == nil || len(dataset.Flows) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	s := &Snapshot{
		systemsByID:    make(map[string]domain.System, len(dataset.Systems)),
		interfacesByID: make(map[string]domain.Interface, len(dataset.Interfaces)),
		formatsByID:    make(map[string]domain.DataFormat, len(dataset.Formats)),
		methodsByID:    make(map[string]domain.TransmissionMethod, len(dataset.Methods)),
		flowsByID:      make(map[string]domain.DataFlow, len(dataset.Flows)),
		vocab:          make(map[string]driven.VocabEntry),
	}

	for _, sys := range dataset.Systems {
		if _, dup := s.systemsByID[sys.ID]; dup {
			s.diagnostics = append(s.diagnostics, fmt.Sprintf("duplicate system ID %q", sys.ID))
			continue
		}
		s.systemsByID[sys.ID] = sys
		s.systems = append(s.systems, sys)
		s.addVocab(sys.Name, domain.KindSystem, sys.ID)
	}
	for _, iface := range dataset.Interfaces {
		if _, dup := s.interfacesByID[iface.ID]; dup {
			s.diagnostics = append(s.diagnostics, fmt.Sprintf("duplicate interface ID %q", iface.ID))
			continue
		}
		s.interfacesByID[iface.ID] = iface
		s.interfaces = append(s.interfaces, iface)
		s.addVocab(iface.Name, domain.KindInterface, iface.ID)
	}
	for _, format := range dataset.Formats {
		if _, dup := s.formatsByID[format.ID]; dup {
			s.diagnostics = append(s.diagnostics, fmt.Sprintf("duplicate format ID %q", format.ID))
			continue
		}
		s.formatsByID[format.ID] = format
		s.formats = append(s.formats, format)
		s.addVocab(format.Name, domain.KindFormat, format.ID)
	}
	for _, method := range dataset.Methods {
		if _, dup := s.methodsByID[method.ID]; dup {
			s.diagnostics = append(s.diagnostics, fmt.Sprintf("duplicate method ID %q", method.ID))
			continue
		}
		s.methodsByID[method.ID] = method
		s.methods = append(s.methods, method)
		s.addVocab(method.Name, domain.KindMethod, method.ID)
	}

	s.addAliases(aliases)

	for _, flow := range dataset.Flows {
		if reason := s.validateFlow(&flow); reason != "" {
			s.diagnostics = append(s.diagnostics,
				fmt.Sprintf("flow %q excluded: %s", flow.ID, reason))
			continue
		}
		s.flowsByID[flow.ID] = flow
		s.flows = append(s.flows, flow)
	}

	// Deterministic iteration order for ranking tie-breaks and listings.
	sort.Slice(s.flows, func(i, j int) bool { return s.flows[i].ID < s.flows[j].ID })
	sort.Slice(s.systems, func(i, j int) bool { return s.systems[i].ID < s.systems[j].ID })
	sort.Slice(s.interfaces, func(i, j int) bool { return s.interfaces[i].ID < s.interfaces[j].ID })
	sort.Slice(s.formats, func(i, j int) bool { return s.formats[i].ID < s.formats[j].ID })
	sort.Slice(s.methods, func(i, j int) bool { return s.methods[i].ID < s.methods[j].ID })

	if len(s.flows) == 0 {
		return nil, fmt.Errorf("%w: all flows excluded by validation", domain.ErrEmptyDataset)
	}

	return s, nil
}

// validateFlow returns a non-empty reason when a flow reference does not
// resolve within the dataset.
func (s *Snapshot) validateFlow(flow *domain.DataFlow) string {
	if flow.ID == "" {
		return "missing flow ID"
	}
	if _, dup := s.flowsByID[flow.ID]; dup {
		return "duplicate flow ID"
	}
	if _, ok := s.systemsByID[flow.SourceID]; !ok {
		return fmt.Sprintf("unknown source system %q", flow.SourceID)
	}
	if _, ok := s.systemsByID[flow.TargetID]; !ok {
		return fmt.Sprintf("unknown target system %q", flow.TargetID)
	}
	if flow.FormatID != "" {
		if _, ok := s.formatsByID[flow.FormatID]; !ok {
			return fmt.Sprintf("unknown format %q", flow.FormatID)
		}
	}
	for _, id := range flow.MethodIDs {
		if _, ok := s.methodsByID[id]; !ok {
			return fmt.Sprintf("unknown transmission method %q", id)
		}
	}
	if flow.InterfaceID != "" {
		if _, ok := s.interfacesByID[flow.InterfaceID]; !ok {
			return fmt.Sprintf("unknown interface %q", flow.InterfaceID)
		}
	}
	return ""
}

// addVocab registers a recognizable name. First registration wins when
// two entities normalize to the same name; the collision is diagnosed.
func (s *Snapshot) addVocab(name string, kind domain.EntityKind, entityID string) {
	norm := textutil.Normalize(name)
	if norm == "" {
		return
	}
	if existing, dup := s.vocab[norm]; dup {
		if existing.EntityID != entityID {
			s.diagnostics = append(s.diagnostics,
				fmt.Sprintf("name collision: %q refers to %s %q and %s %q",
					norm, existing.Kind, existing.EntityID, kind, entityID))
		}
		return
	}
	tokens := len(strings.Fields(norm))
	s.vocab[norm] = driven.VocabEntry{
		Norm:       norm,
		TokenCount: tokens,
		Kind:       kind,
		EntityID:   entityID,
		Name:       name,
	}
	if tokens > s.maxNameTokens {
		s.maxNameTokens = tokens
	}
}

// addAliases extends the vocabulary with configured alternative spellings.
// An alias resolves through the canonical name; aliases whose canonical
// name is unknown are diagnosed and skipped.
func (s *Snapshot) addAliases(aliases map[string]string) {
	// Sorted iteration keeps diagnostics deterministic.
	keys := make([]string, 0, len(aliases))
	for alias := range aliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)

	for _, alias := range keys {
		canonical := textutil.Normalize(aliases[alias])
		entry, ok := s.vocab[canonical]
		if !ok {
			s.diagnostics = append(s.diagnostics,
				fmt.Sprintf("alias %q points at unknown name %q", alias, aliases[alias]))
			continue
		}
		norm := textutil.Normalize(alias)
		if norm == "" {
			continue
		}
		if _, dup := s.vocab[norm]; dup {
			continue
		}
		tokens := len(strings.Fields(norm))
		s.vocab[norm] = driven.VocabEntry{
			Norm:       norm,
			TokenCount: tokens,
			Kind:       entry.Kind,
			EntityID:   entry.EntityID,
			Name:       entry.Name,
		}
		if tokens > s.maxNameTokens {
			s.maxNameTokens = tokens
		}
	}
}

// Systems returns all systems sorted by ID.
func (s *Snapshot) Systems() []domain.System { return s.systems }

// Interfaces returns all interfaces sorted by ID.
func (s *Snapshot) Interfaces() []domain.Interface { return s.interfaces }

// Formats returns all data formats sorted by ID.
func (s *Snapshot) Formats() []domain.DataFormat { return s.formats }

// Methods returns all transmission methods sorted by ID.
func (s *Snapshot) Methods() []domain.TransmissionMethod { return s.methods }

// Flows returns all valid data flows sorted by ID.
func (s *Snapshot) Flows() []domain.DataFlow { return s.flows }

// FlowByID looks up a single flow.
func (s *Snapshot) FlowByID(id string) (domain.DataFlow, bool) {
	flow, ok := s.flowsByID[id]
	return flow, ok
}

// SystemByID looks up a single system.
func (s *Snapshot) SystemByID(id string) (domain.System, bool) {
	sys, ok := s.systemsByID[id]
	return sys, ok
}

// FormatByID looks up a single format.
func (s *Snapshot) FormatByID(id string) (domain.DataFormat, bool) {
	format, ok := s.formatsByID[id]
	return format, ok
}

// MethodByID looks up a single transmission method.
func (s *Snapshot) MethodByID(id string) (domain.TransmissionMethod, bool) {
	method, ok := s.methodsByID[id]
	return method, ok
}

// InterfaceByID looks up a single interface.
func (s *Snapshot) InterfaceByID(id string) (domain.Interface, bool) {
	iface, ok := s.interfacesByID[id]
	return iface, ok
}

// Lookup resolves a normalized name or alias to a vocabulary entry.
func (s *Snapshot) Lookup(norm string) (driven.VocabEntry, bool) {
	entry, ok := s.vocab[norm]
	return entry, ok
}

// Vocabulary returns all entries. Order is unspecified.
func (s *Snapshot) Vocabulary() []driven.VocabEntry {
	entries := make([]driven.VocabEntry, 0, len(s.vocab))
	for _, e := range s.vocab {
		entries = append(entries, e)
	}
	return entries
}

// MaxNameTokens returns the word count of the longest recognizable name.
func (s *Snapshot) MaxNameTokens() int { return s.maxNameTokens }

// Diagnostics returns the integrity findings recorded during Build.
func (s *Snapshot) Diagnostics() []string { return s.diagnostics }
