package services

import (
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
)

// structuralDelta scores every flow against the recognized entities using
// direct field matches. Each entity contributes at most once per flow: when
// the same system could count in several roles, the highest applicable role
// weight wins and the rest are ignored. Flows that match nothing simply get
// no contribution; later stages can still raise them.
func structuralDelta(
	snap driven.IndexSnapshot,
	ents domain.QueryEntities,
	cfg domain.ScoringConfig,
) domain.ScoreDelta {
	delta := domain.ScoreDelta{}
	if ents.Empty() {
		return delta
	}

	for _, flow := range snap.Flows() {
		for _, sysID := range ents.Systems {
			name := systemName(snap, sysID)
			switch {
			case flow.SourceID == sysID && flow.TargetID == sysID:
				w := cfg.SourceWeight
				if cfg.TargetWeight > w {
					w = cfg.TargetWeight
				}
				delta.Add(flow.ID, w, domain.MatchReason{Kind: domain.ReasonSystem, Label: name})
			case flow.SourceID == sysID:
				delta.Add(flow.ID, cfg.SourceWeight, domain.MatchReason{Kind: domain.ReasonSource, Label: name})
			case flow.TargetID == sysID:
				delta.Add(flow.ID, cfg.TargetWeight, domain.MatchReason{Kind: domain.ReasonTarget, Label: name})
			}
		}

		for _, fmtID := range ents.Formats {
			if flow.FormatID != fmtID {
				continue
			}
			if f, ok := snap.FormatByID(fmtID); ok {
				delta.Add(flow.ID, cfg.FormatWeight, domain.MatchReason{Kind: domain.ReasonFormat, Label: f.Name})
			}
		}

		for _, methodID := range ents.Methods {
			if !flow.UsesMethod(methodID) {
				continue
			}
			if m, ok := snap.MethodByID(methodID); ok {
				delta.Add(flow.ID, cfg.MethodWeight, domain.MatchReason{Kind: domain.ReasonMethod, Label: m.Name})
			}
		}

		for _, ifaceID := range ents.Interfaces {
			if !flowUsesInterface(&flow, ifaceID) {
				continue
			}
			if iface, ok := snap.InterfaceByID(ifaceID); ok {
				delta.Add(flow.ID, cfg.InterfaceWeight, domain.MatchReason{Kind: domain.ReasonInterface, Label: iface.Name})
			}
		}
	}

	return delta
}

// flowUsesInterface reports whether the flow references the interface
// directly or through one of its process steps.
func flowUsesInterface(flow *domain.DataFlow, ifaceID string) bool {
	if flow.InterfaceID == ifaceID {
		return true
	}
	for _, step := range flow.Steps {
		if step.InterfaceID == ifaceID {
			return true
		}
	}
	return false
}

// systemName resolves a system ID to its display name, falling back to
// the ID itself for robustness.
func systemName(snap driven.IndexSnapshot, id string) string {
	if sys, ok := snap.SystemByID(id); ok {
		return sys.Name
	}
	return id
}
