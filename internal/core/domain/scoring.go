package domain

import "fmt"

// ScoringConfig holds the tunable weights of the resolution pipeline.
// Exact magnitudes are calibration; the binding contract is the ordering
//
//	exact > directional-pair > fuzzy > process-term
//
// which Validate enforces. A config that breaks the ordering is rejected
// rather than silently producing surprising rankings.
type ScoringConfig struct {
	// SourceWeight is awarded when a recognized system is the flow's source.
	SourceWeight float64 `toml:"source_weight"`

	// TargetWeight is awarded when a recognized system is the flow's target.
	TargetWeight float64 `toml:"target_weight"`

	// InterfaceWeight is awarded for an exact interface match.
	InterfaceWeight float64 `toml:"interface_weight"`

	// FormatWeight is awarded for an exact format match.
	FormatWeight float64 `toml:"format_weight"`

	// MethodWeight is awarded for an exact transmission-method match.
	MethodWeight float64 `toml:"method_weight"`

	// PairBonus is awarded when a directional query matches both the
	// source and the target of a flow in the asserted order.
	PairBonus float64 `toml:"pair_bonus"`

	// SideBonus is awarded when a directional query matches only one
	// side of a flow.
	SideBonus float64 `toml:"side_bonus"`

	// FuzzyWeight scales a fuzzy contribution: similarity * FuzzyWeight.
	// Must stay below every exact weight so approximate evidence can
	// never outrank an exact match for the same role.
	FuzzyWeight float64 `toml:"fuzzy_weight"`

	// FuzzyThreshold is the minimum similarity (0..1) for a fuzzy match
	// to contribute at all.
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`

	// NameTokenWeight is awarded per query term found in a flow name.
	NameTokenWeight float64 `toml:"name_token_weight"`

	// DescTokenWeight is awarded per query term found in a flow description.
	DescTokenWeight float64 `toml:"desc_token_weight"`

	// ProcessWeight is the flat bonus for process-step vocabulary matches.
	ProcessWeight float64 `toml:"process_weight"`
}

// DefaultScoring returns the calibrated default weights.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		SourceWeight:    3.0,
		TargetWeight:    3.0,
		InterfaceWeight: 2.75,
		FormatWeight:    2.6,
		MethodWeight:    2.5,
		PairBonus:       2.0,
		SideBonus:       0.75,
		FuzzyWeight:     1.5,
		FuzzyThreshold:  0.65,
		NameTokenWeight: 0.9,
		DescTokenWeight: 0.6,
		ProcessWeight:   0.5,
	}
}

// minExact returns the smallest exact-match weight.
func (c ScoringConfig) minExact() float64 {
	min := c.SourceWeight
	for _, w := range []float64{c.TargetWeight, c.InterfaceWeight, c.FormatWeight, c.MethodWeight} {
		if w < min {
			min = w
		}
	}
	return min
}

// Validate checks that all weights are positive, the threshold is a valid
// ratio, and the ordering contract holds.
func (c ScoringConfig) Validate() error {
	weights := map[string]float64{
		"source_weight":     c.SourceWeight,
		"target_weight":     c.TargetWeight,
		"interface_weight":  c.InterfaceWeight,
		"format_weight":     c.FormatWeight,
		"method_weight":     c.MethodWeight,
		"pair_bonus":        c.PairBonus,
		"side_bonus":        c.SideBonus,
		"fuzzy_weight":      c.FuzzyWeight,
		"name_token_weight": c.NameTokenWeight,
		"desc_token_weight": c.DescTokenWeight,
		"process_weight":    c.ProcessWeight,
	}
	for name, w := range weights {
		if w <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, w)
		}
	}

	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold >= 1 {
		return fmt.Errorf("%w: fuzzy_threshold must be in (0, 1), got %v", ErrInvalidConfig, c.FuzzyThreshold)
	}

	if c.PairBonus >= c.minExact() {
		return fmt.Errorf("%w: pair_bonus (%v) must stay below every exact weight (min %v)",
			ErrInvalidConfig, c.PairBonus, c.minExact())
	}
	if c.FuzzyWeight >= c.PairBonus {
		return fmt.Errorf("%w: fuzzy_weight (%v) must stay below pair_bonus (%v)",
			ErrInvalidConfig, c.FuzzyWeight, c.PairBonus)
	}
	if c.ProcessWeight >= c.FuzzyWeight*c.FuzzyThreshold {
		return fmt.Errorf("%w: process_weight (%v) must stay below the smallest accepted fuzzy contribution (%v)",
			ErrInvalidConfig, c.ProcessWeight, c.FuzzyWeight*c.FuzzyThreshold)
	}

	return nil
}
