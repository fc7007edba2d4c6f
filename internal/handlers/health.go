package handlers

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
)

// HealthResponse reports liveness plus optional echo values for connectivity checks.
type HealthResponse struct {
	Status        int     `json:"status"`
	StatusMessage string  `json:"status_message"`
	Timestamp     string  `json:"timestamp"`
	IPAddress     string  `json:"ip_address"`
	Echo          *string `json:"echo"`
	PathEcho      *string `json:"path_echo"`
}

// hostIP resolves the host's own address; falls back to loopback when the
// hostname cannot be resolved (common in minimal containers).
func hostIP() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "127.0.0.1"
	}
	addrs, err := net.LookupHost(hostname)
	if err != nil || len(addrs) == 0 {
		return "127.0.0.1"
	}
	return addrs[0]
}

func makeHealth(echo, pathEcho *string) HealthResponse {
	return HealthResponse{
		Status:        http.StatusOK,
		StatusMessage: "OK",
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		IPAddress:     hostIP(),
		Echo:          echo,
		PathEcho:      pathEcho,
	}
}

func optionalEcho(r *http.Request) *string {
	if raw := r.URL.Query().Get("echo"); raw != "" {
		return &raw
	}
	return nil
}

// GetHealth handles GET /health with an optional echo query parameter
func GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, makeHealth(optionalEcho(r), nil))
}

// GetHealthWithPath handles GET /health/{path_echo}
func GetHealthWithPath(w http.ResponseWriter, r *http.Request) {
	pathEcho := chi.URLParam(r, "path_echo")
	writeJSON(w, http.StatusOK, makeHealth(optionalEcho(r), &pathEcho))
}
