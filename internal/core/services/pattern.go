package services

import (
	"regexp"
	"strings"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// Directional constructs, German and English. The sides are single words;
// multi-word system names are recovered by best-match resolution below.
var directionPatterns = []struct {
	re          *regexp.Regexp
	commutative bool
}{
	{regexp.MustCompile(`von\s+(\w+)[\s\w]*?nach\s+(\w+)`), false},
	{regexp.MustCompile(`von\s+(\w+)[\s\w]*?zu\s+(\w+)`), false},
	{regexp.MustCompile(`from\s+(\w+)[\s\w]*?to\s+(\w+)`), false},
	{regexp.MustCompile(`zwischen\s+(\w+)[\s\w]*?und\s+(\w+)`), true},
	{regexp.MustCompile(`between\s+(\w+)[\s\w]*?and\s+(\w+)`), true},
}

// processVocabulary marks queries asking about the process behind a flow.
var processVocabulary = map[string]struct{}{
	"prozess": {}, "prozessschritt": {}, "prozessschritte": {},
	"schritt": {}, "schritte": {}, "ablauf": {}, "ausloser": {},
	"process": {}, "step": {}, "steps": {}, "workflow": {}, "trigger": {},
}

// patternDelta detects directional phrasing and business-process phrasing.
//
// "from A to B" is not commutative: only flows whose source resolves to A
// and whose target resolves to B get the pair bonus; flows matching one
// side get the smaller side bonus; the reverse pair gets nothing.
// "between A and B" asserts an unordered pair and matches both
// orientations. Process vocabulary adds a flat bonus to flows whose step
// descriptions contain query terms, independent of direction.
func patternDelta(
	snap driven.IndexSnapshot,
	text string,
	cfg domain.ScoringConfig,
) domain.ScoreDelta {
	delta := domain.ScoreDelta{}
	norm := textutil.Normalize(text)
	if norm == "" {
		return delta
	}

	for _, pattern := range directionPatterns {
		groups := pattern.re.FindStringSubmatch(norm)
		if groups == nil {
			continue
		}
		left := bestSystemMatch(snap, groups[1], cfg.FuzzyThreshold)
		right := bestSystemMatch(snap, groups[2], cfg.FuzzyThreshold)
		if left == nil || right == nil {
			continue
		}

		label := left.Name + " -> " + right.Name
		if pattern.commutative {
			label = left.Name + " <-> " + right.Name
		}

		for _, flow := range snap.Flows() {
			forward := flow.SourceID == left.ID && flow.TargetID == right.ID
			backward := flow.SourceID == right.ID && flow.TargetID == left.ID

			switch {
			case forward || (pattern.commutative && backward):
				delta.Add(flow.ID, cfg.PairBonus,
					domain.MatchReason{Kind: domain.ReasonDirection, Label: label})
			case !pattern.commutative && (flow.SourceID == left.ID || flow.TargetID == right.ID):
				delta.Add(flow.ID, cfg.SideBonus,
					domain.MatchReason{Kind: domain.ReasonDirection, Label: label})
			case pattern.commutative && (flow.References(left.ID) || flow.References(right.ID)):
				delta.Add(flow.ID, cfg.SideBonus,
					domain.MatchReason{Kind: domain.ReasonDirection, Label: label})
			}
		}
		break // first matching construct wins
	}

	delta.Merge(processDelta(snap, norm, cfg))

	return delta
}

// processDelta awards the flat process bonus when the query uses process
// vocabulary and a flow's steps mention a query term.
func processDelta(snap driven.IndexSnapshot, norm string, cfg domain.ScoringConfig) domain.ScoreDelta {
	delta := domain.ScoreDelta{}

	terms := textutil.Terms(norm)
	hasProcessTerm := false
	for _, t := range terms {
		if _, ok := processVocabulary[t]; ok {
			hasProcessTerm = true
			break
		}
	}
	if !hasProcessTerm {
		return delta
	}

	for _, flow := range snap.Flows() {
		if label, ok := stepMatch(flow.Steps, terms); ok {
			delta.Add(flow.ID, cfg.ProcessWeight,
				domain.MatchReason{Kind: domain.ReasonProcess, Label: label})
		}
	}

	return delta
}

// stepMatch reports whether any process step mentions one of the query
// terms, returning the first matching term.
func stepMatch(steps []domain.ProcessStep, terms []string) (string, bool) {
	for _, step := range steps {
		stepTokens := tokenSet(textutil.Terms(step.Label + " " + step.Description + " " + step.Actor))
		for _, term := range terms {
			if _, ok := processVocabulary[term]; ok {
				continue
			}
			if _, ok := stepTokens[term]; ok {
				return term, true
			}
		}
	}
	return "", false
}

// bestSystemMatch resolves a captured pattern side to a system: exact
// substring containment first, then fuzzy similarity above the threshold.
func bestSystemMatch(snap driven.IndexSnapshot, term string, threshold float64) *domain.System {
	if term == "" {
		return nil
	}

	systems := snap.Systems()
	for i := range systems {
		norm := textutil.Normalize(systems[i].Name)
		if norm == "" {
			continue
		}
		if strings.Contains(norm, term) || strings.Contains(term, norm) {
			return &systems[i]
		}
	}

	var best *domain.System
	bestSim := 0.0
	for i := range systems {
		sim := similarity(term, textutil.Normalize(systems[i].Name))
		if sim > bestSim {
			bestSim = sim
			best = &systems[i]
		}
	}
	if best != nil && bestSim >= threshold {
		return best
	}
	return nil
}
