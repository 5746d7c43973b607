package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default().Dataset, cfg.Dataset)
	assert.Equal(t, Default().Listen, cfg.Listen)
	assert.Equal(t, domain.DefaultScoring(), cfg.Scoring)
	assert.NoError(t, cfg.Scoring.Validate())
}

func TestLoad_PartialFileKeepsDefaultScoring(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
dataset = "landscape.xml"
listen = ":9090"

[aliases]
gasx = "GAS-X Portal"
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "landscape.xml", cfg.Dataset)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, domain.DefaultScoring(), cfg.Scoring)
	assert.Equal(t, map[string]string{"gasx": "GAS-X Portal"}, cfg.Aliases)
}

func TestLoad_RejectsBrokenWeightOrdering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[scoring]
source_weight = 3.0
target_weight = 3.0
interface_weight = 2.75
format_weight = 2.6
method_weight = 2.5
pair_bonus = 4.0
side_bonus = 0.75
fuzzy_weight = 1.5
fuzzy_threshold = 0.65
name_token_weight = 0.9
desc_token_weight = 0.6
process_weight = 0.5
`), 0600))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("dataset = ["), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := Default()
	want.Dataset = "other.xml"
	want.RateLimit = 5
	want.Aliases = map[string]string{"sap": "SAPsystem"}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDefaultScoringValidates(t *testing.T) {
	assert.NoError(t, Default().Scoring.Validate())
}
