package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/wellbeing/pkg/config"
	"github.com/fatflowers/wellbeing/pkg/response"
)

// HealthStatus tells operators which deployment and ledger backend answered.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Env     string `json:"env,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// @Summary      Health check
// @Description  Reports liveness together with the environment and the storage driver holding usage records and feather ledgers
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.RespHealth
// @Router       /healthz [get]
func ApiHealthz(cfg *config.Config) gin.HandlerFunc {
	status := HealthStatus{Status: "ok", Service: "wellbeing"}
	if cfg != nil {
		status.Env = string(cfg.Env)
		status.Storage = string(cfg.Storage.Driver)
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(status))
	}
}

func RegisterHealthRoutes(r gin.IRouter, cfg *config.Config) {
	r.GET("/healthz", ApiHealthz(cfg))
}
