package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/app/service/usage"
	usagelog "github.com/fatflowers/wellbeing/internal/app/service/usage_log"
	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/pkg/response"
)

// defaultUsageLogLimit caps audit rows returned when no limit is given.
const defaultUsageLogLimit = 50

type ActivatePremiumRequest struct {
	UserID         string  `json:"user_id"`
	DurationMonths float64 `json:"duration_months"`
}

type ResetUsageRequest struct {
	UserID string `json:"user_id"`
}

type AdminGrantRequest struct {
	UserID      string `json:"user_id"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// @Summary      Activate premium (Admin)
// @Description  Grants premium for duration_months. Fractional months count 28 days each.
// @Tags         Admin
// @Security     AdminBearer
// @Accept       json
// @Produce      json
// @Param        request body handlers.ActivatePremiumRequest true "Installation and duration"
// @Success      200  {object}  handlers.RespPremium
// @Router       /api/v1/admin/activate_premium [post]
func ApiActivatePremium(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ActivatePremiumRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if !validUserID(req.UserID) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid user_id"))
			return
		}
		expiresAt, err := tracker.ActivatePremium(c.Request.Context(), req.UserID, req.DurationMonths)
		if err != nil {
			code := response.APIResponseCodeError
			if errors.Is(err, usage.ErrInvalidDuration) {
				code = response.APIResponseCodeBadRequest
			}
			c.JSON(http.StatusOK, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&PremiumResponse{ExpiresAt: expiresAt}))
	}
}

// @Summary      Reset usage (Admin)
// @Description  Discards the installation's usage record. The next query starts from a fresh free-tier record.
// @Tags         Admin
// @Security     AdminBearer
// @Accept       json
// @Produce      json
// @Param        request body handlers.ResetUsageRequest true "Installation"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/reset_usage [post]
func ApiResetUsage(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetUsageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if !validUserID(req.UserID) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid user_id"))
			return
		}
		tracker.ResetAll(c.Request.Context(), req.UserID)
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Grant feathers (Admin)
// @Tags         Admin
// @Security     AdminBearer
// @Accept       json
// @Produce      json
// @Param        request body handlers.AdminGrantRequest true "Grant"
// @Success      200  {object}  handlers.RespGrant
// @Router       /api/v1/admin/grant [post]
func ApiAdminGrant(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminGrantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if !validUserID(req.UserID) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid user_id"))
			return
		}
		g, err := ledger.AddGrant(c.Request.Context(), req.UserID, req.Category, req.Amount, req.Description)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(g))
	}
}

// @Summary      Usage change log (Admin)
// @Description  Newest audit rows of an installation's usage record.
// @Tags         Admin
// @Security     AdminBearer
// @Produce      json
// @Param        user_id  path   string  true   "Installation ID"
// @Param        limit    query  int     false  "Maximum rows (default 50)"
// @Success      200  {object}  handlers.RespUsageLogs
// @Router       /api/v1/admin/usage_logs/{user_id} [get]
func ApiListUsageLogs(logs *usagelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		limit, ok := intQuery(c, "limit", defaultUsageLogLimit)
		if !ok {
			return
		}
		if limit <= 0 {
			limit = defaultUsageLogLimit
		}
		items, err := logs.List(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		if items == nil {
			items = []*models.UsageLog{}
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

func RegisterAdminRoutes(r gin.IRouter, tracker *usage.Tracker, ledger *feather.Ledger, logs *usagelog.Service) {
	r.POST("/activate_premium", ApiActivatePremium(tracker))
	r.POST("/reset_usage", ApiResetUsage(tracker))
	r.POST("/grant", ApiAdminGrant(ledger))
	r.GET("/usage_logs/:user_id", ApiListUsageLogs(logs))
}
