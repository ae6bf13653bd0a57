package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const probeTimeout = 3 * time.Second

// Pinger is a dependency whose availability can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is one dependency reported by /health. Only critical checks gate
// readiness; a failing optional check marks the API "degraded".
type Check struct {
	Name     string
	Probe    Pinger
	Critical bool
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	version string
	clock   clockwork.Clock
	checks  []Check
}

// NewHealthHandler creates a HealthHandler. Checks with a nil Probe are
// skipped, so optional infrastructure can be passed unconditionally.
func NewHealthHandler(version string, clock clockwork.Clock, checks ...Check) *HealthHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	active := make([]Check, 0, len(checks))
	for _, c := range checks {
		if c.Probe != nil {
			active = append(active, c)
		}
	}
	return &HealthHandler{version: version, clock: clock, checks: active}
}

// HealthResponse is the body of every health endpoint.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the probe result of a single dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.clock.Now()})
}

// Ready answers 503 when any critical dependency is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.run(r.Context())
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: h.clock.Now()})
}

// Health reports every dependency with its probe latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.run(r.Context())
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.clock.Now(),
	})
}

// run probes all checks concurrently and folds them into an overall status.
func (h *HealthHandler) run(ctx context.Context) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu         sync.Mutex
		components = make(map[string]CompStatus, len(h.checks))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range h.checks {
		g.Go(func() error {
			res := h.probe(gctx, c.Probe)
			mu.Lock()
			components[c.Name] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	overall := "ok"
	for _, c := range h.checks {
		if components[c.Name].Status == "ok" {
			continue
		}
		if c.Critical {
			return "down", components
		}
		overall = "degraded"
	}
	return overall, components
}

func (h *HealthHandler) probe(ctx context.Context, p Pinger) CompStatus {
	start := h.clock.Now()
	if err := p.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: h.clock.Since(start).String()}
}
