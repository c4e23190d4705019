package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Handler manages health check endpoints
type Handler struct {
	keyMonitor *KeyMonitor
	startTime  time.Time
	service    string
}

// NewHandler creates a new health check handler. keyMonitor may be nil when
// key monitoring is disabled.
func NewHandler(keyMonitor *KeyMonitor, service string) *Handler {
	return &Handler{
		keyMonitor: keyMonitor,
		startTime:  time.Now(),
		service:    service,
	}
}

// HandleHealthCheck returns OK while the process is serving
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// HandleKeyHealth returns the API key status, 503 only when OMDb rejected the
// key. An unreachable upstream is reported with "reachable": false.
func (h *Handler) HandleKeyHealth(w http.ResponseWriter, r *http.Request) {
	if h.keyMonitor == nil {
		writeJSON(w, http.StatusOK, map[string]any{"monitored": false})
		return
	}

	status := h.keyMonitor.GetStatus()

	httpStatus := http.StatusOK
	if !status.Valid {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, status)
}

// HandleDetailedHealth returns uptime and key status together
func (h *Handler) HandleDetailedHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"uptime":  time.Since(h.startTime).String(),
		"service": h.service,
	}

	httpStatus := http.StatusOK
	if h.keyMonitor != nil {
		keyStatus := h.keyMonitor.GetStatus()
		response["api_key"] = keyStatus
		switch {
		case !keyStatus.Valid:
			response["status"] = "degraded"
			response["message"] = "OMDb rejected the last key check - lookups will fail"
			httpStatus = http.StatusServiceUnavailable
		case !keyStatus.Reachable:
			response["status"] = "degraded"
			response["message"] = "OMDb could not be reached on the last key check"
		}
	}

	writeJSON(w, httpStatus, response)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
