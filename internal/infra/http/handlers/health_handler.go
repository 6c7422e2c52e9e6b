package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

type HealthHandler struct {
	Checks    map[string]Check
	Timeout   time.Duration
	StartTime time.Time
	Version   string
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(version string, checks map[string]Check) *HealthHandler {
	if checks == nil {
		checks = map[string]Check{}
	}
	return &HealthHandler{
		Checks:    checks,
		Timeout:   2 * time.Second,
		StartTime: time.Now(),
		Version:   version,
	}
}

// Handle runs every check in parallel under one deadline. Any failing check
// turns the answer into a 503.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		deps = make(map[string]string, len(h.Checks))
	)
	for name, check := range h.Checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := "healthy"
			if err := check(ctx); err != nil {
				result = "unhealthy: " + err.Error()
			}
			mu.Lock()
			deps[name] = result
			mu.Unlock()
		}()
	}
	wg.Wait()

	status, code := "healthy", http.StatusOK
	for _, v := range deps {
		if v != "healthy" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
