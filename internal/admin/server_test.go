package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"netsim/internal/config"
	"netsim/internal/sim"
)

func testServer(t *testing.T) (*Server, *sim.Simulator) {
	t.Helper()
	cfg := &config.TopologyConfig{
		Name: "lab",
		Devices: []config.DeviceConfig{
			{Name: "R1", Kind: "router"},
			{Name: "H1", Kind: "host"},
			{Name: "H2", Kind: "host"},
		},
		Links: []config.LinkConfig{
			{From: "H1", To: "R1", LatencyMs: 1, BandwidthMbps: 1000, Reliability: 0.999},
			{From: "R1", To: "H2", LatencyMs: 1, BandwidthMbps: 1000, Reliability: 0.999},
		},
	}
	simulator, err := sim.NewSimulator("test", cfg, nil, nil, time.Second)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return NewServer(simulator), simulator
}

func TestHandleDevices(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/devices", nil)
	w := httptest.NewRecorder()
	server.handleDevices(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var devices []sim.DeviceInfo
	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(devices) != 3 {
		t.Errorf("expected 3 devices, got %d", len(devices))
	}
}

func TestHandleRoute(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/route?src=H1&dst=H2&bytes=1500", nil)
	w := httptest.NewRecorder()
	server.handleRoute(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var res sim.RouteResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !res.Found || len(res.Path) != 3 {
		t.Errorf("unexpected route: %+v", res)
	}
}

func TestHandleRouteNotFound(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/route?src=H1&dst=ghost", nil)
	w := httptest.NewRecorder()
	server.handleRoute(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %v", w.Result().StatusCode)
	}
}

func TestHandleRouteMissingParams(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/route?src=H1", nil)
	w := httptest.NewRecorder()
	server.handleRoute(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", w.Result().StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.handleHealth(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var h sim.HealthSummary
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if h.Devices != 3 || h.Links != 4 {
		t.Errorf("unexpected health: %+v", h)
	}
}

func TestHandleTransmissions(t *testing.T) {
	server, simulator := testServer(t)
	simulator.Transmit("H1", "H2", 100, 16)

	req := httptest.NewRequest(http.MethodGet, "/transmissions", nil)
	w := httptest.NewRecorder()
	server.handleTransmissions(w, req)

	var rows []json.RawMessage
	if err := json.NewDecoder(w.Result().Body).Decode(&rows); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 transmission, got %d", len(rows))
	}
}

func TestHandleIndex(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.handleIndex(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", w.Result().StatusCode)
	}
	if body := w.Body.String(); body == "" {
		t.Error("empty index page")
	}
}
