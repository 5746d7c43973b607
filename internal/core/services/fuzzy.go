package services

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// truncatedTermConfidence discounts terms that were length-capped before
// comparison. They still contribute, just with less weight.
const truncatedTermConfidence = 0.9

// containmentSimilarity is credited when one term wholly contains the
// other, e.g. "sap" against "sapsystem". Edit distance alone punishes
// short names embedded in longer ones far below the threshold. Kept
// under 1.0 so an exact token match still wins.
const containmentSimilarity = 0.9

// fuzzyDelta re-scores flows using approximate string similarity for the
// query terms that matched no known entity. A term contributes to a flow
// only when its best similarity against the flow's vocabulary (referenced
// entity names plus name/description tokens) clears the threshold, where
// similarity is the edit-distance ratio or the fixed containment credit,
// whichever is higher. The contribution scales with similarity and is
// capped below every exact weight, so approximate evidence never outranks
// an exact match. Independent terms sum.
func fuzzyDelta(
	snap driven.IndexSnapshot,
	leftover []string,
	cfg domain.ScoringConfig,
) domain.ScoreDelta {
	delta := domain.ScoreDelta{}
	if len(leftover) == 0 {
		return delta
	}

	candidates := flowTermIndex(snap)

	for _, term := range leftover {
		if len([]rune(term)) < 3 {
			continue
		}
		term, truncated := textutil.CapTerm(term)
		confidence := 1.0
		if truncated {
			confidence = truncatedTermConfidence
		}

		for flowID, terms := range candidates {
			best := 0.0
			for _, cand := range terms {
				if sim := termSimilarity(term, cand); sim > best {
					best = sim
					if best == 1.0 {
						break
					}
				}
			}
			if best < cfg.FuzzyThreshold {
				continue
			}
			delta.Add(flowID, best*cfg.FuzzyWeight*confidence,
				domain.MatchReason{Kind: domain.ReasonFuzzy, Label: term})
		}
	}

	return delta
}

// flowTermIndex collects, per flow, the normalized terms fuzzy matching
// compares against: the names of every referenced entity (whole and
// word-by-word) plus the tokens of the flow's own name and description.
func flowTermIndex(snap driven.IndexSnapshot) map[string][]string {
	index := make(map[string][]string)

	for _, flow := range snap.Flows() {
		var terms []string
		add := func(name string) {
			norm := textutil.Normalize(name)
			if norm == "" {
				return
			}
			terms = append(terms, norm)
			for _, tok := range textutil.Terms(norm) {
				if tok != norm {
					terms = append(terms, tok)
				}
			}
		}

		if sys, ok := snap.SystemByID(flow.SourceID); ok {
			add(sys.Name)
		}
		if sys, ok := snap.SystemByID(flow.TargetID); ok {
			add(sys.Name)
		}
		if format, ok := snap.FormatByID(flow.FormatID); ok {
			add(format.Name)
		}
		for _, methodID := range flow.MethodIDs {
			if method, ok := snap.MethodByID(methodID); ok {
				add(method.Name)
			}
		}
		if iface, ok := snap.InterfaceByID(flow.InterfaceID); ok {
			add(iface.Name)
		}
		terms = append(terms, textutil.Terms(flow.Name)...)
		terms = append(terms, textutil.Terms(flow.Description)...)

		index[flow.ID] = terms
	}

	return index
}

// termSimilarity scores a query term against a candidate. Containment of
// one in the other (both at least three runes) counts as a near-match, the
// same rule directional-side resolution applies to system names.
func termSimilarity(term, cand string) float64 {
	sim := similarity(term, cand)
	if sim >= containmentSimilarity {
		return sim
	}
	if len([]rune(term)) >= 3 && len([]rune(cand)) >= 3 &&
		(strings.Contains(cand, term) || strings.Contains(term, cand)) {
		return containmentSimilarity
	}
	return sim
}

// similarity returns a normalized edit-distance ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0.0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= longest {
		return 0.0
	}
	return 1.0 - float64(dist)/float64(longest)
}
