package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

func TestExtractEntities_RecognizesKnownNames(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "Wie kommt NOMINT von MIRA nach GRID")

	assert.ElementsMatch(t, []string{"sys-mira", "sys-grid"}, ents.Systems)
	assert.Equal(t, []string{"fmt-nomint"}, ents.Formats)
	assert.Empty(t, ents.Methods)
	assert.Empty(t, ents.Interfaces)
	assert.Equal(t, domain.DirectionFromTo, ents.Direction)
	assert.Equal(t, []string{"kommt"}, ents.Leftover)
}

func TestExtractEntities_MultiWordNameMatchesLongestFirst(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "Rechnung an das GAS-X Portal")

	assert.Equal(t, []string{"sys-gasx"}, ents.Systems)
	assert.Equal(t, []string{"rechnung"}, ents.Leftover)
}

func TestExtractEntities_CaseAndAccentInsensitive(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "mira MIRA Mira")

	assert.Equal(t, []string{"sys-mira"}, ents.Systems, "repeated mentions collapse to one entity")
}

func TestExtractEntities_BetweenDirection(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "Datenfluesse zwischen MIRA und GRID")

	assert.Equal(t, domain.DirectionBetween, ents.Direction)
	assert.ElementsMatch(t, []string{"sys-mira", "sys-grid"}, ents.Systems)
}

func TestExtractEntities_FromToWinsOverBetween(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "zwischen MIRA von GRID")

	assert.Equal(t, domain.DirectionFromTo, ents.Direction)
}

func TestExtractEntities_EmptyQuery(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "   ")

	assert.True(t, ents.Empty())
	assert.Empty(t, ents.Leftover)
	assert.Equal(t, domain.DirectionNone, ents.Direction)
}

func TestExtractEntities_StopwordsDropped(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "welche der die das NOMINT")

	assert.Equal(t, []string{"fmt-nomint"}, ents.Formats)
	assert.Empty(t, ents.Leftover)
}

func TestExtractEntities_MethodAndInterface(t *testing.T) {
	snap := testSnapshot(t)

	ents := extractEntities(snap, "AS4 Uebertragung via Ponton X/P")

	assert.Equal(t, []string{"tm-as4"}, ents.Methods)
	assert.Equal(t, []string{"if-ponton"}, ents.Interfaces)
}
