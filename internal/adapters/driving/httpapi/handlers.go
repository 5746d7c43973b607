package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driving"
	"github.com/flowatlas-labs/flowatlas-cli/internal/logger"
)

// flowDTO is the wire representation of a data flow. Entity references
// are resolved to display names the way the dashboard expects them.
type flowDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Trigger      string    `json:"trigger,omitempty"`
	SourceSystem string    `json:"source_system"`
	TargetSystem string    `json:"target_system"`
	Format       string    `json:"format,omitempty"`
	Methods      []string  `json:"transmission_methods,omitempty"`
	Interface    string    `json:"interface,omitempty"`
	Steps        []stepDTO `json:"process_steps,omitempty"`
}

type stepDTO struct {
	Label     string `json:"label"`
	Interface string `json:"interface,omitempty"`
	Actor     string `json:"actor,omitempty"`
}

type matchDTO struct {
	Flow    flowDTO  `json:"flow"`
	Score   float64  `json:"score"`
	Reasons []string `json:"matched_reasons"`
	Summary string   `json:"summary_text"`
}

type queryRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type queryResponse struct {
	Matches  []matchDTO `json:"direct_results"`
	Related  []flowDTO  `json:"related_flows"`
	Summary  string     `json:"natural_response"`
	Warnings []string   `json:"warnings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// nameResolver caches the catalog name lookups for one request.
type nameResolver struct {
	systems    map[string]string
	formats    map[string]string
	methods    map[string]string
	interfaces map[string]string
}

func (s *Server) newResolver(r *http.Request) (*nameResolver, error) {
	ctx := r.Context()
	res := &nameResolver{
		systems:    map[string]string{},
		formats:    map[string]string{},
		methods:    map[string]string{},
		interfaces: map[string]string{},
	}

	systems, err := s.catalog.ListSystems(ctx)
	if err != nil {
		return nil, err
	}
	for _, sys := range systems {
		res.systems[sys.ID] = sys.Name
	}
	formats, err := s.catalog.ListFormats(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range formats {
		res.formats[f.ID] = f.Name
	}
	methods, err := s.catalog.ListMethods(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		res.methods[m.ID] = m.Name
	}
	interfaces, err := s.catalog.ListInterfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, iface := range interfaces {
		res.interfaces[iface.ID] = iface.Name
	}

	return res, nil
}

func (r *nameResolver) flow(flow *domain.DataFlow) flowDTO {
	dto := flowDTO{
		ID:           flow.ID,
		Name:         flow.Name,
		Description:  flow.Description,
		Trigger:      flow.Trigger,
		SourceSystem: r.systems[flow.SourceID],
		TargetSystem: r.systems[flow.TargetID],
		Format:       r.formats[flow.FormatID],
		Interface:    r.interfaces[flow.InterfaceID],
	}
	for _, id := range flow.MethodIDs {
		dto.Methods = append(dto.Methods, r.methods[id])
	}
	for _, step := range flow.Steps {
		dto.Steps = append(dto.Steps, stepDTO{
			Label:     step.Label,
			Interface: r.interfaces[step.InterfaceID],
			Actor:     step.Actor,
		})
	}
	return dto
}

func (s *Server) handleListFlows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := driving.FlowFilter{
		SourceSystem: q.Get("source_system"),
		TargetSystem: q.Get("target_system"),
		Format:       q.Get("format"),
		Method:       q.Get("transmission_method"),
	}

	flows, err := s.catalog.ListFlows(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	res, err := s.newResolver(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	dtos := make([]flowDTO, 0, len(flows))
	for i := range flows {
		dtos = append(dtos, res.flow(&flows[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "flowID")

	flow, err := s.catalog.GetFlow(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "data flow not found")
			return
		}
		s.writeServiceError(w, err)
		return
	}

	res, err := s.newResolver(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.flow(flow))
}

func (s *Server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := s.catalog.ListSystems(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	names := make([]string, 0, len(systems))
	for _, sys := range systems {
		names = append(names, sys.Name)
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := s.catalog.ListFormats(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Name)
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleListMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.catalog.ListMethods(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.Name)
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleListInterfaces(w http.ResponseWriter, r *http.Request) {
	interfaces, err := s.catalog.ListInterfaces(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	names := make([]string, 0, len(interfaces))
	for _, iface := range interfaces {
		names = append(names, iface.Name)
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.query.Resolve(r.Context(), req.Query, domain.QueryOptions{Limit: req.Limit})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	res, err := s.newResolver(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := queryResponse{
		Matches:  make([]matchDTO, 0, len(result.Matches)),
		Related:  make([]flowDTO, 0, len(result.Related)),
		Summary:  result.Summary,
		Warnings: result.Warnings,
	}
	for i := range result.Matches {
		m := &result.Matches[i]
		reasons := make([]string, 0, len(m.Reasons))
		for _, reason := range m.Reasons {
			reasons = append(reasons, reason.Kind.String()+":"+reason.Label)
		}
		resp.Matches = append(resp.Matches, matchDTO{
			Flow:    res.flow(&m.Flow),
			Score:   m.Score,
			Reasons: reasons,
			Summary: m.Summary,
		})
	}
	for i := range result.Related {
		resp.Related = append(resp.Related, res.flow(&result.Related[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps domain errors to HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	logger.Warn("API error: %v", err)
	if errors.Is(err, domain.ErrSnapshotUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "index not loaded yet")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
