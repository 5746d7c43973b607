package domain

import "sort"

// Direction classifies the directional phrasing detected in a query.
type Direction int

const (
	// DirectionNone means the query carries no directional construct.
	DirectionNone Direction = iota

	// DirectionFromTo asserts an ordered source -> target relationship.
	DirectionFromTo

	// DirectionBetween asserts an unordered pair relationship.
	DirectionBetween
)

// String returns the direction name for logging.
func (d Direction) String() string {
	switch d {
	case DirectionFromTo:
		return "from-to"
	case DirectionBetween:
		return "between"
	default:
		return "none"
	}
}

// EntityKind classifies a recognized vocabulary entry.
type EntityKind int

const (
	// KindSystem marks a system name.
	KindSystem EntityKind = iota

	// KindFormat marks a data format name.
	KindFormat

	// KindMethod marks a transmission method name.
	KindMethod

	// KindInterface marks an interface name.
	KindInterface
)

// String returns the kind name for logging and summaries.
func (k EntityKind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindFormat:
		return "format"
	case KindMethod:
		return "method"
	case KindInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// QueryEntities holds what entity extraction recognized in one query.
// It lives for the duration of a single resolution and is then discarded.
type QueryEntities struct {
	// Systems are IDs of recognized systems.
	Systems []string

	// Formats are IDs of recognized data formats.
	Formats []string

	// Methods are IDs of recognized transmission methods.
	Methods []string

	// Interfaces are IDs of recognized interfaces.
	Interfaces []string

	// Leftover are normalized query terms that matched no known entity.
	// They are carried forward for fuzzy matching.
	Leftover []string

	// Direction is the directional phrasing detected, if any.
	Direction Direction
}

// Empty reports whether extraction recognized nothing at all.
func (e *QueryEntities) Empty() bool {
	return len(e.Systems) == 0 && len(e.Formats) == 0 &&
		len(e.Methods) == 0 && len(e.Interfaces) == 0
}

// ReasonKind classifies a match reason for deterministic summary rendering.
// The declaration order is the rendering order.
type ReasonKind int

const (
	// ReasonSource marks an exact source-system match.
	ReasonSource ReasonKind = iota

	// ReasonTarget marks an exact target-system match.
	ReasonTarget

	// ReasonSystem marks a system match without a role (ambiguous or
	// role-independent).
	ReasonSystem

	// ReasonInterface marks an exact interface match.
	ReasonInterface

	// ReasonFormat marks an exact format match.
	ReasonFormat

	// ReasonMethod marks an exact transmission-method match.
	ReasonMethod

	// ReasonDirection marks a directional pattern match.
	ReasonDirection

	// ReasonFuzzy marks an approximate term match.
	ReasonFuzzy

	// ReasonText marks a full-text hit in name or description.
	ReasonText

	// ReasonProcess marks a process-step vocabulary match.
	ReasonProcess
)

// String returns the reason kind tag used in wire representations.
func (k ReasonKind) String() string {
	switch k {
	case ReasonSource:
		return "source"
	case ReasonTarget:
		return "target"
	case ReasonSystem:
		return "system"
	case ReasonInterface:
		return "interface"
	case ReasonFormat:
		return "format"
	case ReasonMethod:
		return "method"
	case ReasonDirection:
		return "direction"
	case ReasonFuzzy:
		return "fuzzy"
	case ReasonText:
		return "text"
	case ReasonProcess:
		return "process"
	default:
		return "unknown"
	}
}

// MatchReason explains one contribution to a flow's score.
type MatchReason struct {
	// Kind classifies the reason.
	Kind ReasonKind

	// Label names the matched entity or term.
	Label string
}

// Contribution is one stage's additive effect on a flow's score.
type Contribution struct {
	// Score is the additive score contribution. Stages only ever add.
	Score float64

	// Reasons tag why the contribution was awarded.
	Reasons []MatchReason
}

// ScoreDelta maps flow IDs to the contribution one pipeline stage awards.
// Each stage returns its own delta; the orchestrator folds them. Stages
// never see or mutate each other's deltas.
type ScoreDelta map[string]Contribution

// Add accumulates a contribution for a flow.
func (d ScoreDelta) Add(flowID string, score float64, reasons ...MatchReason) {
	c := d[flowID]
	c.Score += score
	c.Reasons = append(c.Reasons, reasons...)
	d[flowID] = c
}

// Merge folds another delta into this one.
func (d ScoreDelta) Merge(other ScoreDelta) {
	for id, c := range other {
		d.Add(id, c.Score, c.Reasons...)
	}
}

// SortReasons orders reasons by kind, then label, so summaries rendered
// from them are deterministic regardless of stage ordering.
func SortReasons(reasons []MatchReason) {
	sort.Slice(reasons, func(i, j int) bool {
		if reasons[i].Kind != reasons[j].Kind {
			return reasons[i].Kind < reasons[j].Kind
		}
		return reasons[i].Label < reasons[j].Label
	})
}

// FlowMatch is a single ranked result of query resolution.
type FlowMatch struct {
	// Flow is the matched data flow.
	Flow DataFlow

	// Score is the accumulated relevance score.
	Score float64

	// Reasons lists why the flow matched, in deterministic order.
	Reasons []MatchReason

	// Summary is a short rendered explanation of the match.
	Summary string
}

// QueryResult is the complete outcome of resolving one query.
type QueryResult struct {
	// Matches are the direct results, ordered by descending score with
	// flow ID as the tie-break.
	Matches []FlowMatch

	// Related are flows that share a system with a direct result but did
	// not themselves match.
	Related []DataFlow

	// Entities is what extraction recognized, useful for callers that
	// want to display or debug the interpretation.
	Entities QueryEntities

	// Summary is a natural-language description of the result set.
	Summary string

	// Warnings carries non-fatal diagnostics (e.g., flows excluded for
	// dangling references).
	Warnings []string
}

// QueryOptions configures one resolution call.
type QueryOptions struct {
	// Limit is the maximum number of direct results (default 20).
	Limit int

	// RelatedLimit is the maximum number of related flows (default 10).
	RelatedLimit int
}
