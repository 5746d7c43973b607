package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/index/memory"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

// testDataset models a small gas-market landscape: two nomination flows
// in opposite directions between MIRA and GRID, plus an invoicing flow.
func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Systems: []domain.System{
			{ID: "sys-gasx", Name: "GAS-X Portal"},
			{ID: "sys-grid", Name: "GRID"},
			{ID: "sys-mira", Name: "MIRA"},
			{ID: "sys-sap", Name: "SAPsystem"},
		},
		Interfaces: []domain.Interface{
			{ID: "if-ponton", SystemID: "sys-mira", Name: "Ponton X/P"},
		},
		Formats: []domain.DataFormat{
			{ID: "fmt-invoic", Name: "INVOIC"},
			{ID: "fmt-nomint", Name: "NOMINT"},
		},
		Methods: []domain.TransmissionMethod{
			{ID: "tm-as4", Name: "AS4"},
			{ID: "tm-email", Name: "E-Mail"},
		},
		Flows: []domain.DataFlow{
			{
				ID:          "F1",
				Name:        "MIRA an GRID Nominierung",
				Description: "Stuendliche Uebertragung der Nominierungsdaten",
				SourceID:    "sys-mira",
				TargetID:    "sys-grid",
				InterfaceID: "if-ponton",
				FormatID:    "fmt-nomint",
				MethodIDs:   []string{"tm-as4"},
				Steps: []domain.ProcessStep{
					{Label: "Versand", Description: "Versand der Nominierung", Actor: "Dispatching", InterfaceID: "if-ponton"},
				},
			},
			{
				ID:          "F2",
				Name:        "GRID an MIRA Nominierung",
				Description: "Rueckmeldung der Nominierungsdaten",
				SourceID:    "sys-grid",
				TargetID:    "sys-mira",
				FormatID:    "fmt-nomint",
				MethodIDs:   []string{"tm-as4"},
			},
			{
				ID:          "F3",
				Name:        "Rechnungsversand",
				Description: "Monatlicher Versand der Rechnungen",
				Trigger:     "Monatsende",
				SourceID:    "sys-sap",
				TargetID:    "sys-gasx",
				FormatID:    "fmt-invoic",
				MethodIDs:   []string{"tm-email"},
				Steps: []domain.ProcessStep{
					{Label: "Freigabe", Actor: "Buchhaltung"},
				},
			},
		},
	}
}

func testSnapshot(t *testing.T) *memory.Snapshot {
	t.Helper()
	snap, err := memory.Build(testDataset(), nil)
	require.NoError(t, err)
	return snap
}
