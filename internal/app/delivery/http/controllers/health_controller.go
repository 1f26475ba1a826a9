package controllers

import (
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/utils"
	"net/http"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (ctrl *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseHealthy, map[string]string{
		"status": constvars.ResponseSuccess,
	})
}
