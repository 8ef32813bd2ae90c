package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"matterflow/field"
	"matterflow/matter"
	"matterflow/sla"
	"matterflow/workflow"
)

type stubMatterService struct {
	lastListParams matter.ListParams
	listResult     matter.ListResult
	listErr        error
	getMatter      matter.Matter
	getErr         error
}

func (s *stubMatterService) List(_ context.Context, params matter.ListParams) (matter.ListResult, error) {
	s.lastListParams = params
	return s.listResult, s.listErr
}

func (s *stubMatterService) Get(_ context.Context, _ string) (matter.Matter, error) {
	return s.getMatter, s.getErr
}

type stubStatusService struct {
	lastParams matter.TransitionParams
	err        error
}

func (s *stubStatusService) Transition(_ context.Context, params matter.TransitionParams) error {
	s.lastParams = params
	return s.err
}

func enriched(id string) matter.Matter {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	completed := now.Add(2 * time.Hour)
	m := matter.Matter{
		ID:        id,
		BoardID:   "b1",
		Fields:    field.Set{},
		CreatedAt: now,
		UpdatedAt: completed,
		CycleTime: &workflow.CycleTime{
			StartedAt:   now,
			CompletedAt: &completed,
			Elapsed:     2 * time.Hour,
			Formatted:   "2h",
		},
		SLA: sla.StatusMet,
	}
	m.Fields.Add(field.Value{FieldID: "f1", FieldName: "Subject", Type: field.TypeText, Data: field.Text("Vendor NDA")})
	return m
}

func TestHandleBoardMatters_Success(t *testing.T) {
	matters := &stubMatterService{
		listResult: matter.ListResult{
			Items:    []matter.Matter{enriched("m1")},
			Total:    1,
			Page:     1,
			PageSize: 20,
		},
	}
	server := NewServer(matters, &stubStatusService{})

	req := httptest.NewRequest(http.MethodGet, "/api/boards/b1/matters?sort=resolution_time&direction=desc&page=2&page_size=5&search=nda", nil)
	rec := httptest.NewRecorder()

	server.handleBoardMatters(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	params := matters.lastListParams
	if params.BoardID != "b1" || params.SortKey != "resolution_time" || params.Direction != matter.Desc {
		t.Fatalf("sort params not passed through: %+v", params)
	}
	if params.Page != 2 || params.PageSize != 5 || params.Search != "nda" {
		t.Fatalf("paging params not passed through: %+v", params)
	}

	var payload listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].ID != "m1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Items[0].SLA != "met" {
		t.Errorf("sla = %q, want met", payload.Items[0].SLA)
	}
	if payload.Items[0].CycleTime == nil || payload.Items[0].CycleTime.ResolutionTimeMs != 7_200_000 {
		t.Errorf("unexpected cycle time payload: %+v", payload.Items[0].CycleTime)
	}
}

func TestHandleBoardMatters_UnknownSortKeyStillOK(t *testing.T) {
	matters := &stubMatterService{listResult: matter.ListResult{Page: 1, PageSize: 20}}
	server := NewServer(matters, &stubStatusService{})

	req := httptest.NewRequest(http.MethodGet, "/api/boards/b1/matters?sort=bogus-key", nil)
	rec := httptest.NewRecorder()

	server.handleBoardMatters(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown sort key must not fail, got %d", rec.Code)
	}
	if matters.lastListParams.SortKey != "bogus-key" {
		t.Errorf("sort key should pass through untouched, got %q", matters.lastListParams.SortKey)
	}
}

func TestHandleBoardMatters_InvalidPath(t *testing.T) {
	server := NewServer(&stubMatterService{}, &stubStatusService{})

	req := httptest.NewRequest(http.MethodGet, "/api/boards/b1/items", nil)
	rec := httptest.NewRecorder()

	server.handleBoardMatters(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleBoardMatters_WrongMethod(t *testing.T) {
	server := NewServer(&stubMatterService{}, &stubStatusService{})

	req := httptest.NewRequest(http.MethodPost, "/api/boards/b1/matters", nil)
	rec := httptest.NewRecorder()

	server.handleBoardMatters(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleGetMatter_NotFound(t *testing.T) {
	server := NewServer(&stubMatterService{getErr: matter.ErrNotFound}, &stubStatusService{})

	req := httptest.NewRequest(http.MethodGet, "/api/matters/missing", nil)
	rec := httptest.NewRecorder()

	server.handleMatterDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleGetMatter_NoHistoryStillServed(t *testing.T) {
	m := enriched("m1")
	m.CycleTime = nil
	m.SLA = sla.StatusInProgress
	server := NewServer(&stubMatterService{getMatter: m}, &stubStatusService{})

	req := httptest.NewRequest(http.MethodGet, "/api/matters/m1", nil)
	rec := httptest.NewRecorder()

	server.handleMatterDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp matterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CycleTime != nil {
		t.Errorf("never-transitioned matter must serialize a null cycle time, got %+v", resp.CycleTime)
	}
	if resp.SLA != "in_progress" {
		t.Errorf("sla = %q, want in_progress", resp.SLA)
	}
}

func TestHandleCreateTransition_Success(t *testing.T) {
	status := &stubStatusService{}
	server := NewServer(&stubMatterService{}, status)

	req := httptest.NewRequest(http.MethodPost, "/api/matters/m1/transitions", strings.NewReader(`{"status_id":"st-2"}`))
	rec := httptest.NewRecorder()

	server.handleMatterDetail(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if status.lastParams.MatterID != "m1" || status.lastParams.StatusID != "st-2" {
		t.Fatalf("unexpected transition params: %+v", status.lastParams)
	}
}

func TestHandleCreateTransition_MissingStatus(t *testing.T) {
	server := NewServer(&stubMatterService{}, &stubStatusService{})

	req := httptest.NewRequest(http.MethodPost, "/api/matters/m1/transitions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	server.handleMatterDetail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleCreateTransition_UnknownStatus(t *testing.T) {
	server := NewServer(&stubMatterService{}, &stubStatusService{err: matter.ErrUnknownStatus})

	req := httptest.NewRequest(http.MethodPost, "/api/matters/m1/transitions", strings.NewReader(`{"status_id":"nope"}`))
	rec := httptest.NewRecorder()

	server.handleMatterDetail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleCreateTransition_UnexpectedError(t *testing.T) {
	server := NewServer(&stubMatterService{}, &stubStatusService{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodPost, "/api/matters/m1/transitions", strings.NewReader(`{"status_id":"st-2"}`))
	rec := httptest.NewRecorder()

	server.handleMatterDetail(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
