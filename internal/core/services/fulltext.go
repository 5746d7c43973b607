package services

import (
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// fulltextDelta awards small bonuses for exact query-term hits in flow
// names and descriptions. Name hits weigh more than description hits.
// Each term counts once per field per flow.
func fulltextDelta(
	snap driven.IndexSnapshot,
	terms []string,
	cfg domain.ScoringConfig,
) domain.ScoreDelta {
	delta := domain.ScoreDelta{}
	if len(terms) == 0 {
		return delta
	}

	for _, flow := range snap.Flows() {
		nameTokens := tokenSet(textutil.Terms(flow.Name))
		descTokens := tokenSet(textutil.Terms(flow.Description))

		for _, term := range terms {
			if _, ok := nameTokens[term]; ok {
				delta.Add(flow.ID, cfg.NameTokenWeight,
					domain.MatchReason{Kind: domain.ReasonText, Label: term})
			}
			if _, ok := descTokens[term]; ok {
				delta.Add(flow.ID, cfg.DescTokenWeight,
					domain.MatchReason{Kind: domain.ReasonText, Label: term})
			}
		}
	}

	return delta
}

// tokenSet converts a token slice into a membership set.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
