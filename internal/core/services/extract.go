package services

import (
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// Direction connector vocabulary, German and English. The datasets and
// their users mix both.
var (
	fromConnectors = map[string]struct{}{
		"von": {}, "from": {},
	}
	toConnectors = map[string]struct{}{
		"nach": {}, "zu": {}, "to": {},
	}
	betweenConnectors = map[string]struct{}{
		"zwischen": {}, "between": {},
	}
)

// extractEntities scans the query for known entity names and classifies
// every token. Multi-word names are matched longest-first against the
// snapshot vocabulary so "GAS X Portal" is recognized as one system, not
// three leftovers. Tokens matching nothing are carried as leftover terms
// for the fuzzy stage. Zero recognized entities is a valid outcome.
func extractEntities(snap driven.IndexSnapshot, text string) domain.QueryEntities {
	var ents domain.QueryEntities

	tokens := textutil.Tokenize(text)
	if len(tokens) == 0 {
		return ents
	}

	maxWindow := snap.MaxNameTokens()
	if maxWindow < 1 {
		maxWindow = 1
	}

	seen := map[string]struct{}{}
	var sawFromTo, sawBetween bool

	for i := 0; i < len(tokens); {
		matched := false

		// Longest match first: try the widest n-gram starting at i.
		window := maxWindow
		if rest := len(tokens) - i; rest < window {
			window = rest
		}
		for n := window; n >= 1; n-- {
			ngram := joinTokens(tokens[i : i+n])
			entry, ok := snap.Lookup(ngram)
			if !ok {
				continue
			}
			key := entry.Kind.String() + ":" + entry.EntityID
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				switch entry.Kind {
				case domain.KindSystem:
					ents.Systems = append(ents.Systems, entry.EntityID)
				case domain.KindFormat:
					ents.Formats = append(ents.Formats, entry.EntityID)
				case domain.KindMethod:
					ents.Methods = append(ents.Methods, entry.EntityID)
				case domain.KindInterface:
					ents.Interfaces = append(ents.Interfaces, entry.EntityID)
				}
			}
			i += n
			matched = true
			break
		}
		if matched {
			continue
		}

		tok := tokens[i]
		i++

		if _, ok := fromConnectors[tok]; ok {
			sawFromTo = true
			continue
		}
		if _, ok := toConnectors[tok]; ok {
			sawFromTo = true
			continue
		}
		if _, ok := betweenConnectors[tok]; ok {
			sawBetween = true
			continue
		}
		if textutil.IsStopword(tok) {
			continue
		}
		if _, dup := seen["leftover:"+tok]; !dup {
			seen["leftover:"+tok] = struct{}{}
			ents.Leftover = append(ents.Leftover, tok)
		}
	}

	switch {
	case sawFromTo:
		ents.Direction = domain.DirectionFromTo
	case sawBetween:
		ents.Direction = domain.DirectionBetween
	}

	return ents
}

// joinTokens rebuilds the normalized form of an n-gram.
func joinTokens(tokens []string) string {
	if len(tokens) == 1 {
		return tokens[0]
	}
	n := len(tokens) - 1
	for _, t := range tokens {
		n += len(t)
	}
	b := make([]byte, 0, n)
	for i, t := range tokens {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, t...)
	}
	return string(b)
}
