package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
	"github.com/optibench/go-sequential-raytracer/pkg/system"
	"github.com/optibench/go-sequential-raytracer/pkg/tracer"
)

// Server exposes trace results to the browser-based viewer
type Server struct {
	port     int
	upgrader websocket.Upgrader
}

// NewServer creates a new web server on the given port
func NewServer(port int) *Server {
	return &Server{
		port: port,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// TraceRequest selects a builtin bench and trace parameters
type TraceRequest struct {
	System  string `json:"system"`
	Workers int    `json:"workers"`
	Seed    uint64 `json:"seed"`
}

// PathDTO is the wire form of one traced path: just the polyline the
// viewer needs, not the full ray bookkeeping
type PathDTO struct {
	LightID    string      `json:"lightId"`
	Wavelength float64     `json:"wavelength"`
	Points     []core.Vec3 `json:"points"`
	StopsAt    int         `json:"stopsAt"`
}

// TraceStats summarizes one trace invocation
type TraceStats struct {
	Rays     int `json:"rays"`
	Paths    int `json:"paths"`
	Warnings int `json:"warnings"`
}

// TraceResponse is the full result of a synchronous trace request
type TraceResponse struct {
	System   string           `json:"system"`
	Paths    []PathDTO        `json:"paths"`
	Warnings []tracer.Warning `json:"warnings"`
	Stats    TraceStats       `json:"stats"`
}

// StreamMessage frames one websocket update
type StreamMessage struct {
	Type  string      `json:"type"` // "path", "complete", or "error"
	Path  *PathDTO    `json:"path,omitempty"`
	Stats *TraceStats `json:"stats,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/systems", s.handleSystems)
	mux.HandleFunc("/api/trace", s.handleTrace)
	mux.HandleFunc("/ws/trace", s.handleTraceStream)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Trace viewer server starting on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

// handleSystems lists the builtin benches
func (s *Server) handleSystems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"systems": system.BenchNames()})
}

// handleTrace runs a full trace synchronously and returns every path
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req TraceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sys, ok := system.NewBench(req.System)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown system %q", req.System), http.StatusNotFound)
		return
	}

	paths, ctx := tracer.TraceBatch(sys.Sources, sys.Surfaces,
		tracer.Config{Workers: req.Workers, Seed: req.Seed}, nil)

	resp := TraceResponse{
		System:   sys.Name,
		Paths:    toDTOs(paths),
		Warnings: ctx.Warnings,
		Stats: TraceStats{
			Rays:     countRays(sys),
			Paths:    len(paths),
			Warnings: len(ctx.Warnings),
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTraceStream upgrades to a websocket and streams each traced
// path as its own message, so the viewer can draw incrementally
func (s *Server) handleTraceStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	name := r.URL.Query().Get("system")
	sys, ok := system.NewBench(name)
	if !ok {
		_ = conn.WriteJSON(StreamMessage{Type: "error", Error: fmt.Sprintf("unknown system %q", name)})
		return
	}

	paths, ctx := tracer.TraceBatch(sys.Sources, sys.Surfaces, tracer.Config{}, nil)
	for i := range paths {
		dto := toDTO(paths[i])
		if err := conn.WriteJSON(StreamMessage{Type: "path", Path: &dto}); err != nil {
			return
		}
	}

	stats := TraceStats{Rays: countRays(sys), Paths: len(paths), Warnings: len(ctx.Warnings)}
	_ = conn.WriteJSON(StreamMessage{Type: "complete", Stats: &stats})
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func toDTO(path tracer.RayPath) PathDTO {
	points := make([]core.Vec3, 0, len(path.Rays))
	stopsAt := core.Unterminated
	wavelength := 0.0
	for _, ray := range path.Rays {
		points = append(points, ray.Origin)
		wavelength = ray.Wavelength
		if ray.StopsAt != core.Unterminated {
			stopsAt = ray.StopsAt
		}
	}
	return PathDTO{
		LightID:    path.ID.String(),
		Wavelength: wavelength,
		Points:     points,
		StopsAt:    stopsAt,
	}
}

func toDTOs(paths []tracer.RayPath) []PathDTO {
	out := make([]PathDTO, 0, len(paths))
	for i := range paths {
		out = append(out, toDTO(paths[i]))
	}
	return out
}

func countRays(sys *system.System) int {
	total := 0
	for _, src := range sys.Sources {
		total += src.NumberOfRays
	}
	return total
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
