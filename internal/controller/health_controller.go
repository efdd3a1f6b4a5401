package controller

import (
	"net/http"
)

// HealthController reports process liveness. There is no backing store to
// probe; readiness equals liveness for this service.
type HealthController struct {
	service   string
	endpoints []string
}

func NewHealthController(service string, endpoints []string) *HealthController {
	return &HealthController{service: service, endpoints: endpoints}
}

func (h *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Success:   true,
		Service:   h.service,
		Status:    "ok",
		Endpoints: h.endpoints,
	})
}

func (h *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
