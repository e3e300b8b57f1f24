package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/server/httpapi"
)

func (s *HTTPServer) healthz(w http.ResponseWriter, r *http.Request) error {
	if err := s.health.Check(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, httpapi.HealthResponse{
			Status: httpapi.HealthDegraded,
			DB:     httpapi.HealthDisconnected,
		})
		return nil
	}

	writeJSON(w, http.StatusOK, httpapi.HealthResponse{Status: httpapi.HealthOK, DB: httpapi.HealthConnected})
	return nil
}
