package domain

// System represents an application or party that sends or receives data.
// Many flows may reference the same system as source or target.
type System struct {
	// ID is the unique identifier within a snapshot.
	ID string

	// Name is the display name, as it appears in the source dataset.
	Name string

	// Category is an optional type tag (e.g., "internal", "market-partner").
	Category string
}

// Interface represents a technical interface owned by a system.
type Interface struct {
	// ID is the unique identifier within a snapshot.
	ID string

	// SystemID references the owning System. May be empty when the
	// dataset does not attribute the interface to a system.
	SystemID string

	// Name is the technical designation of the interface.
	Name string

	// Protocol is optional protocol or specification metadata.
	Protocol string
}

// DataFormat represents a message or file format referenced by flows.
type DataFormat struct {
	// ID is the unique identifier within a snapshot.
	ID string

	// Name is the format name (e.g., "NOMINT", "ALOCAT").
	Name string

	// Category distinguishes structured from unstructured formats.
	Category string
}

// TransmissionMethod represents a way data is transmitted (e.g., "AS4").
type TransmissionMethod struct {
	// ID is the unique identifier within a snapshot.
	ID string

	// Name is the method name.
	Name string
}

// ProcessStep is one step in the ordered process behind a data flow.
type ProcessStep struct {
	// Label is the short step designation.
	Label string

	// Description is optional free text for the step.
	Description string

	// Actor is the optional party performing the step.
	Actor string

	// InterfaceID references the Interface used in this step, if any.
	InterfaceID string
}

// DataFlow is a directed transfer of data between two systems. It is the
// unit of search result for query resolution.
type DataFlow struct {
	// ID is the unique identifier within a snapshot.
	ID string

	// Name is the display name of the flow.
	Name string

	// Description is free text describing the flow.
	Description string

	// Trigger describes what initiates the flow (schedule, event, manual).
	Trigger string

	// SourceID references the sending System.
	SourceID string

	// TargetID references the receiving System.
	TargetID string

	// InterfaceID references the primary Interface of the flow, if any.
	InterfaceID string

	// FormatID references the DataFormat carried by the flow.
	FormatID string

	// MethodIDs references the TransmissionMethods used. Source datasets
	// may list several methods for one flow.
	MethodIDs []string

	// Steps is the ordered sequence of process steps.
	Steps []ProcessStep
}

// UsesMethod reports whether the flow transmits via the given method.
func (f *DataFlow) UsesMethod(methodID string) bool {
	for _, id := range f.MethodIDs {
		if id == methodID {
			return true
		}
	}
	return false
}

// References reports whether the flow involves the given system in any role.
func (f *DataFlow) References(systemID string) bool {
	return f.SourceID == systemID || f.TargetID == systemID
}

// Dataset is the raw material for an index snapshot, as produced by the
// ingestion collaborator before validation.
type Dataset struct {
	Systems    []System
	Interfaces []Interface
	Formats    []DataFormat
	Methods    []TransmissionMethod
	Flows      []DataFlow
}
