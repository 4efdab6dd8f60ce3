package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agricredit-backend/pkg/clock"

	"github.com/labstack/echo/v4"
)

func TestHealth_ReturnsOKWithRFC3339NanoUTC(t *testing.T) {
	e := echo.New()
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	start := time.Now().UTC()

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	ct := rec.Header().Get(echo.HeaderContentType)
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}

	if body.Status != "ok" {
		t.Fatalf(`expected status "ok", got %q`, body.Status)
	}

	// RFC3339Nano with 'Z'
	parsed, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", parsed.Location())
	}
	now := time.Now().UTC()
	if parsed.Before(start.Add(-2*time.Second)) || parsed.After(now.Add(2*time.Second)) {
		t.Fatalf("time not within expected window: parsed=%v start=%v now=%v", parsed, start, now)
	}
}

func TestHealth_UsesInjectedClock(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	e := echo.New()
	h := NewHandler(clock.Fixed(at))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"2024-03-01T01:30:00Z"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
