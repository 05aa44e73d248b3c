package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campaigner/internal/agents"
	"campaigner/internal/domain"
	models "campaigner/internal/domain/models/studio"
	"campaigner/internal/httputil"
	"campaigner/internal/repository/memory"
	"campaigner/internal/service/agent"
	"campaigner/internal/service/studio"
	"campaigner/internal/service/studio/history"
	"campaigner/internal/service/studio/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeWorkflow returns canned results and records calls
type fakeWorkflow struct {
	snap      *models.Snapshot
	err       error
	lastBody  string
	lastQuery [2]string
	deleted   string
}

func (f *fakeWorkflow) SubmitBrief(ctx context.Context, brief models.Brief) (*models.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakeWorkflow) RequestGraphics(ctx context.Context) (*models.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakeWorkflow) LoadHistoryEntry(ctx context.Context, id string) (*models.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakeWorkflow) DeleteHistoryEntry(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeWorkflow) QueryHistory(search, channel string) []models.HistoryEntry {
	f.lastQuery = [2]string{search, channel}
	return []models.HistoryEntry{}
}

func (f *fakeWorkflow) UpdateBody(body string) (*models.Snapshot, error) {
	f.lastBody = body
	return f.snap, f.err
}

func (f *fakeWorkflow) DismissBanner() *models.Snapshot { return f.snap }

func (f *fakeWorkflow) Snapshot() *models.Snapshot { return f.snap }

type staticRoster []models.AgentStatus

func (s staticRoster) Status(activeID string) []models.AgentStatus {
	out := make([]models.AgentStatus, len(s))
	for i, a := range s {
		a.Active = a.ID == activeID
		out[i] = a
	}
	return out
}

func newTestMux(wf *fakeWorkflow) *http.ServeMux {
	mux := http.NewServeMux()
	logger := discardLogger()
	RegisterRoutes(mux, Handlers{
		Studio:  NewStudioHandler(wf, render.NewMarkdownRenderer(), logger),
		History: NewHistoryHandler(wf, logger),
		Agents:  NewAgentsHandler(staticRoster{{ID: "a1", Name: "Coordinator"}}, wf, logger),
	})
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"validation", &domain.ValidationError{Message: "Please enter a topic or campaign theme."}, http.StatusBadRequest, "Please enter a topic or campaign theme."},
		{"transport", &domain.TransportError{Message: "quota exceeded"}, http.StatusBadGateway, "quota exceeded"},
		{"format", &domain.FormatError{Message: "Received an unexpected response format. Please try again."}, http.StatusBadGateway, "Received an unexpected response format. Please try again."},
		{"not found", &domain.NotFoundError{Message: "gone"}, http.StatusNotFound, "gone"},
		{"unknown", io.ErrClosedPipe, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&fakeWorkflow{err: tt.err})
			w := do(t, mux, http.MethodPost, "/api/briefs", `{"topic":"x"}`)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var problem httputil.ProblemDetail
			if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
				t.Fatalf("decode problem: %v", err)
			}
			if problem.Detail != tt.wantDetail || problem.Instance != "/api/briefs" {
				t.Errorf("problem = %+v", problem)
			}
		})
	}
}

func TestSubmitBriefRejectsBadJSON(t *testing.T) {
	mux := newTestMux(&fakeWorkflow{snap: &models.Snapshot{}})
	if w := do(t, mux, http.MethodPost, "/api/briefs", `{"topic":`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"replaces", `{"body":"new text"}`, http.StatusOK, "new text"},
		{"empty allowed", `{"body":""}`, http.StatusOK, ""},
		{"missing", `{}`, http.StatusBadRequest, ""},
		{"null", `{"body":null}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := &fakeWorkflow{snap: &models.Snapshot{}, lastBody: "untouched"}
			w := do(t, newTestMux(wf), http.MethodPatch, "/api/package/body", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && wf.lastBody != tt.wantBody {
				t.Errorf("body = %q, want %q", wf.lastBody, tt.wantBody)
			}
		})
	}
}

func TestPreviewBody(t *testing.T) {
	wf := &fakeWorkflow{snap: &models.Snapshot{}}
	if w := do(t, newTestMux(wf), http.MethodGet, "/api/package/preview", ""); w.Code != http.StatusNotFound {
		t.Errorf("no package status = %d, want 404", w.Code)
	}

	pkg := models.ContentPackage{Content: models.ContentData{Body: "## Hello\n\nworld <script>x()</script>"}}
	wf.snap = &models.Snapshot{CurrentPackage: &pkg}
	w := do(t, newTestMux(wf), http.MethodGet, "/api/package/preview", "")

	var preview PreviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(preview.HTML, "<h2") || strings.Contains(preview.HTML, "<script") {
		t.Errorf("html = %q", preview.HTML)
	}
	if preview.WordCount != 3 || preview.ReadingMinutes != 1 {
		t.Errorf("preview = %+v", preview)
	}
}

func TestListHistoryDefaultsChannel(t *testing.T) {
	wf := &fakeWorkflow{}
	w := do(t, newTestMux(wf), http.MethodGet, "/api/history?search=launch", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if wf.lastQuery != [2]string{"launch", models.ChannelAll} {
		t.Errorf("query = %v", wf.lastQuery)
	}
}

func TestDeleteHistoryEntry(t *testing.T) {
	wf := &fakeWorkflow{}
	w := do(t, newTestMux(wf), http.MethodDelete, "/api/history/entry-1", "")
	if w.Code != http.StatusNoContent || wf.deleted != "entry-1" {
		t.Errorf("status = %d deleted = %q", w.Code, wf.deleted)
	}

	wf.err = &domain.NotFoundError{Message: "History entry not found."}
	if w := do(t, newTestMux(wf), http.MethodDelete, "/api/history/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListAgents(t *testing.T) {
	wf := &fakeWorkflow{snap: &models.Snapshot{ActiveAgentID: "a1"}}
	w := do(t, newTestMux(wf), http.MethodGet, "/api/agents", "")

	var resp AgentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ActiveAgentID != "a1" || len(resp.Agents) != 1 || !resp.Agents[0].Active {
		t.Errorf("response = %+v", resp)
	}
}

// Full stack: lorem agents, in-memory slot, real workflow
func TestStudioEndToEnd(t *testing.T) {
	logger := discardLogger()
	registry, err := agents.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	store := history.NewStore(memory.NewSlotRepository(), "mcc_history", 0, logger)
	store.Load(context.Background())

	wf := studio.NewService(agent.NewLoremTransport(registry, 0), store, registry, studio.Config{
		ContentAgentID: registry.ContentAgent().ID,
		ImageAgentID:   registry.ImageAgent().ID,
		AfterFunc:      func(_ time.Duration, _ func()) func() bool { return func() bool { return true } },
	}, logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, Handlers{
		Studio:  NewStudioHandler(wf, render.NewMarkdownRenderer(), logger),
		History: NewHistoryHandler(wf, logger),
		Agents:  NewAgentsHandler(registry, wf, logger),
	})

	w := do(t, mux, http.MethodPost, "/api/briefs", `{"topic":"Spring launch","channel":"social","keywords":["eco"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d: %s", w.Code, w.Body.String())
	}
	var snap models.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.CurrentPackage == nil || snap.CurrentPackage.PackageTitle != "Spring launch" {
		t.Fatalf("package = %+v", snap.CurrentPackage)
	}
	if snap.WorkflowState != models.StateContentReady || snap.HistoryCount != 1 {
		t.Errorf("state = %s history = %d", snap.WorkflowState, snap.HistoryCount)
	}

	w = do(t, mux, http.MethodPost, "/api/graphics", "")
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.CurrentImages) != 2 || snap.CurrentImageMeta == nil {
		t.Errorf("images = %d meta = %v", len(snap.CurrentImages), snap.CurrentImageMeta)
	}

	w = do(t, mux, http.MethodGet, "/api/package/preview", "")
	var preview PreviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if !strings.Contains(preview.HTML, "<h1") || preview.WordCount == 0 {
		t.Errorf("preview = %+v", preview)
	}

	entries := store.Entries()
	if len(entries) != 1 || len(entries[0].Images) != 2 {
		t.Errorf("history = %+v", entries)
	}

	if w := do(t, mux, http.MethodPost, "/api/briefs", `{"topic":"   "}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty topic status = %d, want 400", w.Code)
	}
}
