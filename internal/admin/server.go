package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"netsim/internal/logging"
	"netsim/internal/sim"
)

//go:embed templates/index.html
var content embed.FS

// Server exposes the simulator state over HTTP for inspection.
type Server struct {
	Sim *sim.Simulator
	tpl *template.Template
}

func NewServer(simulator *sim.Simulator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Sim: simulator, tpl: tpl}
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/devices", s.handleDevices)
	mux.HandleFunc("/topology", s.handleTopology)
	mux.HandleFunc("/route", s.handleRoute)
	mux.HandleFunc("/transmissions", s.handleTransmissions)
	mux.HandleFunc("/health", s.handleHealth)
}

// Start serves until the context is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.routes(mux)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logging.FromContext(ctx).Info("admin server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Health  sim.HealthSummary
		Devices []sim.DeviceInfo
		Links   []sim.LinkInfo
	}{
		Health:  s.Sim.Health(),
		Devices: s.Sim.Devices(),
		Links:   s.Sim.Topology(),
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Devices())
}

func (s *Server) handleTopology(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Topology())
}

// handleRoute answers one-shot route queries:
// /route?src=H1&dst=H2&bytes=1500
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("src")
	dst := r.URL.Query().Get("dst")
	if src == "" || dst == "" {
		http.Error(w, "src and dst are required", http.StatusBadRequest)
		return
	}
	bytes, _ := strconv.Atoi(r.URL.Query().Get("bytes"))
	if bytes <= 0 {
		bytes = 1500
	}
	res := s.Sim.RouteQuery(src, dst, bytes)
	w.Header().Set("Content-Type", "application/json")
	if !res.Found {
		w.WriteHeader(http.StatusNotFound)
	}
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleTransmissions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.RecentTransmissions())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Health())
}
