package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/app/service/statistics"
	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/pkg/response"
)

type TotalFeathersResponse struct {
	Total int64 `json:"total"`
}

type AwardTaskCompletionRequest struct {
	TaskType string `json:"task_type"`
}

type AwardBonusRequest struct {
	Reason string `json:"reason"`
	// Amount defaults to 1 when omitted or not positive.
	Amount int64 `json:"amount"`
}

// writeLedgerError maps validation failures to bad request and everything else to error.
func writeLedgerError(c *gin.Context, err error) {
	code := response.APIResponseCodeError
	if errors.Is(err, feather.ErrInvalidAmount) || errors.Is(err, feather.ErrInvalidCategory) {
		code = response.APIResponseCodeBadRequest
	}
	c.JSON(http.StatusOK, response.ErrorT[any](code, err.Error()))
}

// @Summary      Total feathers
// @Description  Sums every grant in the installation's ledger.
// @Tags         Feathers
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespTotalFeathers
// @Router       /api/v1/feathers/{user_id}/total [get]
func ApiTotalFeathers(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		total, err := ledger.TotalFeathers(c.Request.Context(), userID)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(&TotalFeathersResponse{Total: total}))
	}
}

// @Summary      Recent grants
// @Description  Newest grants first.
// @Tags         Feathers
// @Produce      json
// @Param        user_id  path   string  true   "Installation ID"
// @Param        limit    query  int     false  "Maximum number of grants (default 10)"
// @Success      200  {object}  handlers.RespGrants
// @Router       /api/v1/feathers/{user_id}/recent [get]
func ApiRecentGrants(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		limit, ok := intQuery(c, "limit", feather.DefaultRecentLimit)
		if !ok {
			return
		}
		grants, err := ledger.RecentGrants(c.Request.Context(), userID, limit)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(nonNilGrants(grants)))
	}
}

// @Summary      Grants by category
// @Description  Grants whose type equals category exactly, in insertion order.
// @Tags         Feathers
// @Produce      json
// @Param        user_id   path  string  true  "Installation ID"
// @Param        category  path  string  true  "Grant category"
// @Success      200  {object}  handlers.RespGrants
// @Router       /api/v1/feathers/{user_id}/category/{category} [get]
func ApiGrantsByCategory(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		grants, err := ledger.GrantsByCategory(c.Request.Context(), userID, c.Param("category"))
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(nonNilGrants(grants)))
	}
}

// @Summary      Award task completion
// @Tags         Feathers
// @Accept       json
// @Produce      json
// @Param        user_id  path  string                              true  "Installation ID"
// @Param        request  body  handlers.AwardTaskCompletionRequest true  "Task type"
// @Success      200  {object}  handlers.RespGrant
// @Router       /api/v1/feathers/{user_id}/award/task_completion [post]
func ApiAwardTaskCompletion(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		var req AwardTaskCompletionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.TaskType == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing task_type"))
			return
		}
		g, err := ledger.AwardTaskCompletion(c.Request.Context(), userID, req.TaskType)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(g))
	}
}

// @Summary      Award daily check-in
// @Tags         Feathers
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespGrant
// @Router       /api/v1/feathers/{user_id}/award/daily_checkin [post]
func ApiAwardDailyCheckin(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		g, err := ledger.AwardDailyCheckin(c.Request.Context(), userID)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(g))
	}
}

// @Summary      Award reflection
// @Tags         Feathers
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespGrant
// @Router       /api/v1/feathers/{user_id}/award/reflection [post]
func ApiAwardReflection(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		g, err := ledger.AwardReflection(c.Request.Context(), userID)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(g))
	}
}

// @Summary      Award bonus
// @Tags         Feathers
// @Accept       json
// @Produce      json
// @Param        user_id  path  string                     true  "Installation ID"
// @Param        request  body  handlers.AwardBonusRequest true  "Bonus reason and amount"
// @Success      200  {object}  handlers.RespGrant
// @Router       /api/v1/feathers/{user_id}/award/bonus [post]
func ApiAwardBonus(ledger *feather.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		var req AwardBonusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		g, err := ledger.AwardBonus(c.Request.Context(), userID, req.Reason, req.Amount)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(g))
	}
}

// @Summary      Impact statistics
// @Description  Computes the requested charts from the installation's ledger.
// @Tags         Feathers
// @Accept       json
// @Produce      json
// @Param        user_id  path  string                             true  "Installation ID"
// @Param        request  body  statistics.ImpactStatisticRequest true  "Data items to compute"
// @Success      200  {object}  handlers.RespImpactStatistic
// @Router       /api/v1/feathers/{user_id}/statistics [post]
func ApiImpactStatistic(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		var req statistics.ImpactStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetImpactStatistic(c.Request.Context(), userID, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func nonNilGrants(grants []*models.FeatherGrant) []*models.FeatherGrant {
	if grants == nil {
		return []*models.FeatherGrant{}
	}
	return grants
}

func RegisterFeatherRoutes(r gin.IRouter, ledger *feather.Ledger, stats *statistics.Service) {
	r.GET("/:user_id/total", ApiTotalFeathers(ledger))
	r.GET("/:user_id/recent", ApiRecentGrants(ledger))
	r.GET("/:user_id/category/:category", ApiGrantsByCategory(ledger))
	r.POST("/:user_id/award/task_completion", ApiAwardTaskCompletion(ledger))
	r.POST("/:user_id/award/daily_checkin", ApiAwardDailyCheckin(ledger))
	r.POST("/:user_id/award/reflection", ApiAwardReflection(ledger))
	r.POST("/:user_id/award/bonus", ApiAwardBonus(ledger))
	r.POST("/:user_id/statistics", ApiImpactStatistic(stats))
}
