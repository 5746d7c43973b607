package xml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<Export>
  <Datenfluesse>
    <Datenfluss>
      <Custom_ID>DF-001</Custom_ID>
      <Name_des_Datenflusses>Nominierung an GRID</Name_des_Datenflusses>
      <Beschreibung>Stuendliche Nominierung</Beschreibung>
      <Uebertragungsweg>AS4; E-Mail</Uebertragungsweg>
      <Format>NOMINT</Format>
      <Ausloser>Stundenwechsel</Ausloser>
      <QuelleSystem><n>MIRA</n></QuelleSystem>
      <Zielsystem><n>GRID</n></Zielsystem>
      <Prozessschritte>
        <Prozessschritt>
          <Schritttyp>Versand</Schritttyp>
          <Schnittstelle>Ponton X/P</Schnittstelle>
        </Prozessschritt>
        <Prozessschritt>
          <Schritttyp>Bestaetigung</Schritttyp>
        </Prozessschritt>
      </Prozessschritte>
    </Datenfluss>
    <Datenfluss>
      <Name_des_Datenflusses>Rechnungsversand</Name_des_Datenflusses>
      <Format>INVOIC</Format>
      <QuelleSystem><n>SAPsystem</n></QuelleSystem>
      <Zielsystem><n>GRID</n></Zielsystem>
    </Datenfluss>
    <Datenfluss>
      <Name_des_Datenflusses>Kaputt</Name_des_Datenflusses>
      <QuelleSystem><n>MIRA</n></QuelleSystem>
      <Zielsystem><n></n></Zielsystem>
    </Datenfluss>
  </Datenfluesse>
</Export>`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datenfluesse.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_ParsesFlowsAndDerivesEntities(t *testing.T) {
	loader := NewLoader()

	dataset, err := loader.Load(context.Background(), writeDataset(t, sampleExport))
	require.NoError(t, err)

	// The flow without a target is skipped at ingestion.
	require.Len(t, dataset.Flows, 2)

	first := dataset.Flows[0]
	assert.Equal(t, "DF-001", first.ID)
	assert.Equal(t, "Nominierung an GRID", first.Name)
	assert.Equal(t, "Stuendliche Nominierung", first.Description)
	assert.Equal(t, "Stundenwechsel", first.Trigger)
	assert.Equal(t, "sys-mira", first.SourceID)
	assert.Equal(t, "sys-grid", first.TargetID)
	assert.Equal(t, "fmt-nomint", first.FormatID)
	assert.Equal(t, []string{"tm-as4", "tm-e-mail"}, first.MethodIDs,
		"semicolon-separated transmission methods split into entities")

	require.Len(t, first.Steps, 2)
	assert.Equal(t, "Versand", first.Steps[0].Label)
	assert.Equal(t, "if-ponton-xp", first.Steps[0].InterfaceID)
	assert.Empty(t, first.Steps[1].InterfaceID)
	assert.Equal(t, "if-ponton-xp", first.InterfaceID,
		"the first step interface becomes the flow interface")

	// Entity catalogs are derived and deduplicated from flow references.
	assert.Len(t, dataset.Systems, 3)
	assert.Len(t, dataset.Formats, 2)
	assert.Len(t, dataset.Methods, 2)
	assert.Len(t, dataset.Interfaces, 1)
}

func TestLoad_GeneratesIDWhenMissing(t *testing.T) {
	loader := NewLoader()

	dataset, err := loader.Load(context.Background(), writeDataset(t, sampleExport))
	require.NoError(t, err)

	second := dataset.Flows[1]
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, "DF-001", second.ID)
}

func TestLoad_MissingFile(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}

func TestLoad_MalformedXML(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Load(context.Background(), writeDataset(t, "<Export><Datenfluss><unclosed></Export>"))
	assert.Error(t, err)
}

func TestLoad_NoFlows(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Load(context.Background(), writeDataset(t, "<Export></Export>"))
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestLoad_CancelledContext(t *testing.T) {
	loader := NewLoader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, writeDataset(t, sampleExport))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "gas-x-portal", slug("GAS-X Portal"))
	assert.Equal(t, "e-mail", slug("E-Mail"))
	assert.Equal(t, "ponton-xp", slug("Ponton X/P"))
}
