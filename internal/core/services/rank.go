package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
)

// foldDeltas merges the per-stage score deltas into one accumulated map.
// Stages never see each other's contributions; the fold is the single
// place where scores combine.
func foldDeltas(deltas ...domain.ScoreDelta) domain.ScoreDelta {
	folded := domain.ScoreDelta{}
	for _, d := range deltas {
		folded.Merge(d)
	}
	return folded
}

// rankMatches filters, orders, and annotates the folded scores.
// Flows at or below zero are dropped. Ordering is score descending with
// flow ID ascending as the tie-break, so repeated identical queries
// produce identical output.
func rankMatches(snap driven.IndexSnapshot, folded domain.ScoreDelta, limit int) []domain.FlowMatch {
	matches := make([]domain.FlowMatch, 0, len(folded))

	for flowID, contrib := range folded {
		if contrib.Score <= 0 {
			continue
		}
		flow, ok := snap.FlowByID(flowID)
		if !ok {
			continue
		}
		reasons := dedupeReasons(contrib.Reasons)
		domain.SortReasons(reasons)
		matches = append(matches, domain.FlowMatch{
			Flow:    flow,
			Score:   contrib.Score,
			Reasons: reasons,
			Summary: renderMatchSummary(reasons),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Flow.ID < matches[j].Flow.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// dedupeReasons removes duplicate (kind, label) pairs, preserving order.
func dedupeReasons(reasons []domain.MatchReason) []domain.MatchReason {
	seen := make(map[domain.MatchReason]struct{}, len(reasons))
	out := make([]domain.MatchReason, 0, len(reasons))
	for _, r := range reasons {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// renderMatchSummary turns a sorted reasons list into a short explanation,
// e.g. "matched source system MIRA, format NOMINT; direction MIRA -> GRID".
// Rendering is deterministic given the reasons list.
func renderMatchSummary(reasons []domain.MatchReason) string {
	if len(reasons) == 0 {
		return ""
	}

	var parts []string
	for _, r := range reasons {
		switch r.Kind {
		case domain.ReasonSource:
			parts = append(parts, "source system "+r.Label)
		case domain.ReasonTarget:
			parts = append(parts, "target system "+r.Label)
		case domain.ReasonSystem:
			parts = append(parts, "system "+r.Label)
		case domain.ReasonInterface:
			parts = append(parts, "interface "+r.Label)
		case domain.ReasonFormat:
			parts = append(parts, "format "+r.Label)
		case domain.ReasonMethod:
			parts = append(parts, "transmission via "+r.Label)
		case domain.ReasonDirection:
			parts = append(parts, "direction "+r.Label)
		case domain.ReasonFuzzy:
			parts = append(parts, fmt.Sprintf("term %q (approximate)", r.Label))
		case domain.ReasonText:
			parts = append(parts, fmt.Sprintf("term %q", r.Label))
		case domain.ReasonProcess:
			parts = append(parts, fmt.Sprintf("process step mentioning %q", r.Label))
		}
	}
	return "matched " + strings.Join(parts, ", ")
}

// relatedFlows returns flows that share a system with a direct match but
// are not themselves matches. Iteration over snap.Flows() keeps the order
// deterministic because snapshots store flows sorted by ID.
func relatedFlows(snap driven.IndexSnapshot, matches []domain.FlowMatch, limit int) []domain.DataFlow {
	if len(matches) == 0 {
		return nil
	}

	matchedIDs := make(map[string]struct{}, len(matches))
	systems := make(map[string]struct{})
	for i := range matches {
		matchedIDs[matches[i].Flow.ID] = struct{}{}
		systems[matches[i].Flow.SourceID] = struct{}{}
		systems[matches[i].Flow.TargetID] = struct{}{}
	}

	var related []domain.DataFlow
	for _, flow := range snap.Flows() {
		if _, direct := matchedIDs[flow.ID]; direct {
			continue
		}
		_, src := systems[flow.SourceID]
		_, tgt := systems[flow.TargetID]
		if !src && !tgt {
			continue
		}
		related = append(related, flow)
		if limit > 0 && len(related) >= limit {
			break
		}
	}
	return related
}

// renderResponse builds the overall natural-language summary of the
// result set. It is a deterministic rendering of the recognized entities
// and counts, not free text generation.
func renderResponse(
	snap driven.IndexSnapshot,
	ents domain.QueryEntities,
	matches []domain.FlowMatch,
	related []domain.DataFlow,
) string {
	if len(matches) == 0 && len(related) == 0 {
		return "No data flows match the query."
	}

	var mentions []string
	if names := entityNames(ents.Systems, func(id string) (string, bool) {
		s, ok := snap.SystemByID(id)
		return s.Name, ok
	}); len(names) > 0 {
		mentions = append(mentions, pluralize("system", names))
	}
	if names := entityNames(ents.Formats, func(id string) (string, bool) {
		f, ok := snap.FormatByID(id)
		return f.Name, ok
	}); len(names) > 0 {
		mentions = append(mentions, pluralize("format", names))
	}
	if names := entityNames(ents.Methods, func(id string) (string, bool) {
		m, ok := snap.MethodByID(id)
		return m.Name, ok
	}); len(names) > 0 {
		mentions = append(mentions, pluralize("transmission method", names))
	}
	if names := entityNames(ents.Interfaces, func(id string) (string, bool) {
		i, ok := snap.InterfaceByID(id)
		return i.Name, ok
	}); len(names) > 0 {
		mentions = append(mentions, pluralize("interface", names))
	}

	var b strings.Builder
	if len(mentions) > 0 {
		b.WriteString("For " + strings.Join(mentions, " and ") + ", found ")
	} else {
		b.WriteString("Found ")
	}

	switch len(matches) {
	case 0:
		b.WriteString("no directly matching data flows")
	case 1:
		flow := matches[0].Flow
		b.WriteString(fmt.Sprintf("one matching data flow: %q", flowTitle(flow)))
		if detail := flowDetail(snap, flow); detail != "" {
			b.WriteString(" (" + detail + ")")
		}
	default:
		b.WriteString(fmt.Sprintf("%d matching data flows", len(matches)))
	}

	if len(related) > 0 {
		b.WriteString(fmt.Sprintf(". %d related flows connect to the same systems", len(related)))
	}
	b.WriteString(".")
	return b.String()
}

// flowTitle prefers the flow name and falls back to the ID.
func flowTitle(flow domain.DataFlow) string {
	if flow.Name != "" {
		return flow.Name
	}
	return flow.ID
}

// flowDetail renders "from X to Y, format F, via M" for a single flow.
func flowDetail(snap driven.IndexSnapshot, flow domain.DataFlow) string {
	var parts []string
	src, srcOK := snap.SystemByID(flow.SourceID)
	tgt, tgtOK := snap.SystemByID(flow.TargetID)
	if srcOK && tgtOK {
		parts = append(parts, fmt.Sprintf("from %s to %s", src.Name, tgt.Name))
	}
	if format, ok := snap.FormatByID(flow.FormatID); ok {
		parts = append(parts, "format "+format.Name)
	}
	var methods []string
	for _, id := range flow.MethodIDs {
		if m, ok := snap.MethodByID(id); ok {
			methods = append(methods, m.Name)
		}
	}
	if len(methods) > 0 {
		parts = append(parts, "via "+strings.Join(methods, "/"))
	}
	return strings.Join(parts, ", ")
}

// entityNames resolves IDs to display names, skipping unresolvable IDs.
func entityNames(ids []string, resolve func(string) (string, bool)) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := resolve(id); ok {
			names = append(names, name)
		}
	}
	return names
}

// pluralize renders "system MIRA" or "systems MIRA, GRID".
func pluralize(noun string, names []string) string {
	if len(names) == 1 {
		return noun + " " + names[0]
	}
	return noun + "s " + strings.Join(names, ", ")
}
