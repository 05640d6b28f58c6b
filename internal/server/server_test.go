package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"camrx/internal/testutil/testlog"
	"camrx/internal/wire"
)

type fakeSource struct {
	rec  wire.Record
	has  bool
	fail error
}

func (f *fakeSource) TakeLatest() (wire.Record, bool) {
	if !f.has {
		return wire.Record{}, false
	}
	f.has = false
	return f.rec, true
}

func (f *fakeSource) Err() error { return f.fail }

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthHealthy(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	s := New("camrx-test", &fakeSource{}, nil)
	w := get(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}

func TestHealthReportsDeadLoop(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	s := New("camrx-test", &fakeSource{fail: errors.New("unplugged")}, nil)
	w := get(t, s, "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("health status = %d, want 503", w.Code)
	}
}

func TestLatestDrains(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	src := &fakeSource{rec: wire.Record{X: 100, Y: 200, W: 50, H: 60, Timestamp: 1700000000000}, has: true}
	s := New("camrx-test", src, nil)

	w := get(t, s, "/latest")
	if w.Code != http.StatusOK {
		t.Fatalf("latest status = %d", w.Code)
	}
	var rec wire.Record
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal latest: %v", err)
	}
	if rec != src.rec {
		t.Fatalf("latest = %+v, want %+v", rec, src.rec)
	}

	// The read consumed the record; the next call reports no content.
	w = get(t, s, "/latest")
	if w.Code != http.StatusNoContent {
		t.Fatalf("second latest status = %d, want 204", w.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	s := New("camrx-test", &fakeSource{}, nil)
	w := get(t, s, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
}
