package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"matterflow/matter"
)

type matterService interface {
	List(ctx context.Context, params matter.ListParams) (matter.ListResult, error)
	Get(ctx context.Context, id string) (matter.Matter, error)
}

type statusService interface {
	Transition(ctx context.Context, params matter.TransitionParams) error
}

// Server exposes the matter listing and workflow-transition endpoints.
type Server struct {
	matters matterService
	status  statusService
}

func NewServer(matters matterService, status statusService) *Server {
	return &Server{matters: matters, status: status}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/boards/", s.handleBoardMatters)
	mux.HandleFunc("/api/matters/", s.handleMatterDetail)
	return mux
}

// handleBoardMatters serves GET /api/boards/{boardID}/matters.
func (s *Server) handleBoardMatters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/boards/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "matters" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	params := matter.ListParams{
		BoardID:   parts[0],
		Search:    q.Get("search"),
		SortKey:   q.Get("sort"),
		Direction: matter.ParseDirection(q.Get("direction")),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		params.PageSize = size
	}

	result, err := s.matters.List(r.Context(), params)
	if err != nil {
		log.Printf("list matters: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]matterResponse, 0, len(result.Items))
	for _, m := range result.Items {
		items = append(items, toMatterResponse(m))
	}

	writeJSON(w, http.StatusOK, listResponse{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// handleMatterDetail serves GET /api/matters/{id} and
// POST /api/matters/{id}/transitions.
func (s *Server) handleMatterDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/matters/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleGetMatter(w, r, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "transitions":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleCreateTransition(w, r, parts[0])
	default:
		http.Error(w, "invalid path", http.StatusBadRequest)
	}
}

func (s *Server) handleGetMatter(w http.ResponseWriter, r *http.Request, id string) {
	m, err := s.matters.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, matter.ErrNotFound) {
			http.Error(w, "matter not found", http.StatusNotFound)
			return
		}
		log.Printf("get matter %s: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toMatterResponse(m))
}

func (s *Server) handleCreateTransition(w http.ResponseWriter, r *http.Request, id string) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.StatusID == "" {
		http.Error(w, "status_id is required", http.StatusBadRequest)
		return
	}

	err := s.status.Transition(r.Context(), matter.TransitionParams{
		MatterID: id,
		StatusID: req.StatusID,
	})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, matter.ErrNotFound):
		http.Error(w, "matter not found", http.StatusNotFound)
	case errors.Is(err, matter.ErrUnknownStatus), errors.Is(err, matter.ErrNoStatusField):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("transition matter %s: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type transitionRequest struct {
	StatusID string `json:"status_id"`
}

type listResponse struct {
	Items    []matterResponse `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type matterResponse struct {
	ID        string                   `json:"id"`
	BoardID   string                   `json:"board_id"`
	Fields    map[string]fieldResponse `json:"fields"`
	CreatedAt string                   `json:"created_at"`
	UpdatedAt string                   `json:"updated_at"`
	CycleTime *cycleTimeResponse       `json:"cycle_time"`
	SLA       string                   `json:"sla"`
}

type fieldResponse struct {
	FieldID string `json:"field_id"`
	Type    string `json:"type"`
	Display string `json:"display"`
}

type cycleTimeResponse struct {
	StartedAt        string  `json:"started_at"`
	CompletedAt      *string `json:"completed_at"`
	ResolutionTimeMs int64   `json:"resolution_time_ms"`
	ResolutionTime   string  `json:"resolution_time"`
	InProgress       bool    `json:"in_progress"`
}

func toMatterResponse(m matter.Matter) matterResponse {
	resp := matterResponse{
		ID:        m.ID,
		BoardID:   m.BoardID,
		Fields:    make(map[string]fieldResponse, len(m.Fields)),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
		SLA:       string(m.SLA),
	}
	for key, v := range m.Fields {
		resp.Fields[key] = fieldResponse{
			FieldID: v.FieldID,
			Type:    string(v.Type),
			Display: v.Display(),
		}
	}
	if ct := m.CycleTime; ct != nil {
		ctResp := &cycleTimeResponse{
			StartedAt:        ct.StartedAt.Format(time.RFC3339),
			ResolutionTimeMs: ct.Elapsed.Milliseconds(),
			ResolutionTime:   ct.Formatted,
			InProgress:       ct.InProgress,
		}
		if ct.CompletedAt != nil {
			completed := ct.CompletedAt.Format(time.RFC3339)
			ctResp.CompletedAt = &completed
		}
		resp.CycleTime = ctResp
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
