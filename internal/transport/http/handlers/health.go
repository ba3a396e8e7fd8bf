package handlers

import (
	"net/http"

	"github.com/courseplatform/recommendation-service/internal/transport/http/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "UP",
		"service": "recommendation-service",
	})
}
