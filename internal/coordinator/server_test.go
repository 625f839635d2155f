package coordinator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mutware/mutctl/internal/mutators"
	"github.com/mutware/mutctl/internal/protocol"
	"github.com/mutware/mutctl/internal/testutil/testlog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	s := NewServer("mutctl-a", ":0", nil, mutators.NewRegistry(), NewRunLog())
	s.RegisterRoutes()
	return s
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	var body map[string]any
	if len(rr.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s body: %v", path, err)
		}
	}
	return rr, body
}

func TestHealthAndReadyEndpoints(t *testing.T) {
	s := newTestServer(t)

	rr, body := get(t, s, "/health")
	if rr.Code != http.StatusOK || body["status"] != "ok" || body["node"] != "mutctl-a" {
		t.Fatalf("unexpected health response: code=%d body=%#v", rr.Code, body)
	}

	rr, body = get(t, s, "/ready")
	if rr.Code != http.StatusOK || body["ready"] != true {
		t.Fatalf("unexpected ready response: code=%d body=%#v", rr.Code, body)
	}
}

func TestMutatorsEndpointsResolveAndReject(t *testing.T) {
	s := newTestServer(t)

	rr, body := get(t, s, "/mutators")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	names, ok := body["names"].([]any)
	if !ok || len(names) == 0 {
		t.Fatalf("expected non-empty names list, got %#v", body["names"])
	}

	rr, body = get(t, s, "/mutators/"+mutators.GroupDefaults)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	resolved, ok := body["mutators"].([]any)
	if !ok || len(resolved) == 0 {
		t.Fatalf("expected resolved mutators, got %#v", body["mutators"])
	}

	rr, _ = get(t, s, "/mutators/DOES_NOT_EXIST")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown name, got %d", rr.Code)
	}
}

func TestRunsEndpointsListAndLookup(t *testing.T) {
	s := newTestServer(t)
	s.runLog.Upsert(RunOutcome{
		RunID:     "run.mutctl-a.1",
		ExitCode:  protocol.ExitOk,
		Success:   true,
		Records:   7,
		Attempts:  1,
		StartedAt: time.Now(),
		Duration:  250 * time.Millisecond,
	})

	rr, body := get(t, s, "/runs")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	runs, ok := body["runs"].([]any)
	if !ok || len(runs) != 1 {
		t.Fatalf("expected one run, got %#v", body["runs"])
	}

	rr, body = get(t, s, "/runs/run.mutctl-a.1")
	if rr.Code != http.StatusOK || body["run_id"] != "run.mutctl-a.1" {
		t.Fatalf("unexpected run lookup: code=%d body=%#v", rr.Code, body)
	}

	rr, _ = get(t, s, "/runs/run.missing.9")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for missing run, got %d", rr.Code)
	}
}
