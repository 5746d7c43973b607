// Package xml loads the data-flow landscape from the XML export format
// used by the upstream documentation tooling. Loading happens before any
// query is served; the engine itself never touches I/O.
package xml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/logger"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// Loader parses Datenfluss XML exports into the domain dataset.
type Loader struct{}

// NewLoader creates a new XML dataset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// flowXML mirrors one Datenfluss element of the export.
type flowXML struct {
	CustomID     string    `xml:"Custom_ID"`
	Name         string    `xml:"Name_des_Datenflusses"`
	Description  string    `xml:"Beschreibung"`
	Transmission string    `xml:"Uebertragungsweg"`
	Format       string    `xml:"Format"`
	Trigger      string    `xml:"Ausloser"`
	Source       systemRef `xml:"QuelleSystem"`
	Target       systemRef `xml:"Zielsystem"`
	Steps        []stepXML `xml:"Prozessschritte>Prozessschritt"`
}

type systemRef struct {
	Name string `xml:"n"`
}

type stepXML struct {
	StepType  string `xml:"Schritttyp"`
	Interface string `xml:"Schnittstelle"`
}

// Load parses the dataset at the given path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	dataset, err := l.parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	logger.Info("Loaded dataset: %d flows, %d systems, %d formats, %d methods, %d interfaces",
		len(dataset.Flows), len(dataset.Systems), len(dataset.Formats),
		len(dataset.Methods), len(dataset.Interfaces))

	return dataset, nil
}

// parse walks the token stream so Datenfluss elements are found at any
// nesting depth, matching how real exports wrap them in varying envelopes.
func (l *Loader) parse(ctx context.Context, r io.Reader) (*domain.Dataset, error) {
	b := newDatasetBuilder()
	decoder := xml.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Datenfluss" {
			continue
		}

		var raw flowXML
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("decode Datenfluss: %w", err)
		}
		b.addFlow(&raw)
	}

	if len(b.flows) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	return b.dataset(), nil
}

// datasetBuilder derives the entity catalogs while collecting flows.
// Systems, formats, methods, and interfaces exist in the export only as
// names inside flows; the builder deduplicates them into entities with
// stable slug IDs.
type datasetBuilder struct {
	systems    map[string]domain.System
	formats    map[string]domain.DataFormat
	methods    map[string]domain.TransmissionMethod
	interfaces map[string]domain.Interface
	flows      []domain.DataFlow
}

func newDatasetBuilder() *datasetBuilder {
	return &datasetBuilder{
		systems:    make(map[string]domain.System),
		formats:    make(map[string]domain.DataFormat),
		methods:    make(map[string]domain.TransmissionMethod),
		interfaces: make(map[string]domain.Interface),
	}
}

func (b *datasetBuilder) addFlow(raw *flowXML) {
	sourceID := b.systemID(raw.Source.Name)
	targetID := b.systemID(raw.Target.Name)
	if sourceID == "" || targetID == "" {
		// Flows without both endpoints cannot be placed in the graph.
		logger.Warn("Skipping flow %q: missing source or target system", raw.CustomID)
		return
	}

	id := strings.TrimSpace(raw.CustomID)
	if id == "" {
		id = uuid.NewString()
		logger.Debug("Flow %q has no Custom_ID, generated %s", raw.Name, id)
	}

	flow := domain.DataFlow{
		ID:          id,
		Name:        strings.TrimSpace(raw.Name),
		Description: strings.TrimSpace(raw.Description),
		Trigger:     strings.TrimSpace(raw.Trigger),
		SourceID:    sourceID,
		TargetID:    targetID,
		FormatID:    b.formatID(raw.Format),
		MethodIDs:   b.methodIDs(raw.Transmission),
	}

	for _, step := range raw.Steps {
		ifaceID := b.interfaceID(step.Interface, targetID)
		flow.Steps = append(flow.Steps, domain.ProcessStep{
			Label:       strings.TrimSpace(step.StepType),
			InterfaceID: ifaceID,
		})
		if flow.InterfaceID == "" && ifaceID != "" {
			flow.InterfaceID = ifaceID
		}
	}

	b.flows = append(b.flows, flow)
}

// systemID deduplicates a system by name, creating it on first sight.
func (b *datasetBuilder) systemID(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	id := "sys-" + slug(name)
	if _, ok := b.systems[id]; !ok {
		b.systems[id] = domain.System{ID: id, Name: name}
	}
	return id
}

func (b *datasetBuilder) formatID(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	id := "fmt-" + slug(name)
	if _, ok := b.formats[id]; !ok {
		b.formats[id] = domain.DataFormat{ID: id, Name: name}
	}
	return id
}

// methodIDs splits the semicolon-separated transmission list the export
// uses for multi-method flows.
func (b *datasetBuilder) methodIDs(transmission string) []string {
	var ids []string
	for _, part := range strings.Split(transmission, ";") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		id := "tm-" + slug(name)
		if _, ok := b.methods[id]; !ok {
			b.methods[id] = domain.TransmissionMethod{ID: id, Name: name}
		}
		ids = append(ids, id)
	}
	return ids
}

func (b *datasetBuilder) interfaceID(name, systemID string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	id := "if-" + slug(name)
	if _, ok := b.interfaces[id]; !ok {
		b.interfaces[id] = domain.Interface{ID: id, Name: name, SystemID: systemID}
	}
	return id
}

func (b *datasetBuilder) dataset() *domain.Dataset {
	d := &domain.Dataset{Flows: b.flows}
	for _, sys := range b.systems {
		d.Systems = append(d.Systems, sys)
	}
	for _, format := range b.formats {
		d.Formats = append(d.Formats, format)
	}
	for _, method := range b.methods {
		d.Methods = append(d.Methods, method)
	}
	for _, iface := range b.interfaces {
		d.Interfaces = append(d.Interfaces, iface)
	}
	return d
}

// slug turns a display name into a stable identifier fragment.
func slug(name string) string {
	return strings.ReplaceAll(textutil.Normalize(name), " ", "-")
}
