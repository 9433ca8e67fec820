package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/wellbeing/internal/app/service/usage"
	"github.com/fatflowers/wellbeing/pkg/response"
)

type CanGenerateComicResponse struct {
	Allowed bool `json:"allowed"`
	// Remaining is -1 for premium installations.
	Remaining int `json:"remaining"`
}

type RecordComicResponse struct {
	// Allowed false means the monthly quota is used up; show the upgrade prompt.
	Allowed bool `json:"allowed"`
}

type RecordBreathingResponse struct {
	Completed int `json:"completed"`
}

type BreathingLockedResponse struct {
	Index  int  `json:"index"`
	Locked bool `json:"locked"`
}

type PremiumResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary      Usage snapshot
// @Description  Returns comic quota, breathing catalog size and premium state of an installation.
// @Tags         Usage
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespUsageSnapshot
// @Router       /api/v1/usage/{user_id} [get]
func ApiUsageSnapshot(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, response.OKT(tracker.Snapshot(c.Request.Context(), userID)))
	}
}

// @Summary      Can generate comic
// @Tags         Usage
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespCanGenerateComic
// @Router       /api/v1/usage/{user_id}/comics/can_generate [get]
func ApiCanGenerateComic(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, response.OKT(&CanGenerateComicResponse{
			Allowed:   tracker.CanGenerateComic(ctx, userID),
			Remaining: tracker.ComicsRemainingThisMonth(ctx, userID),
		}))
	}
}

// @Summary      Record comic generation
// @Description  Consumes one free comic. allowed=false means the quota is exhausted and nothing was recorded.
// @Tags         Usage
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespRecordComic
// @Router       /api/v1/usage/{user_id}/comics/record [post]
func ApiRecordComic(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		allowed := tracker.RecordComicGenerated(c.Request.Context(), userID)
		c.JSON(http.StatusOK, response.OKT(&RecordComicResponse{Allowed: allowed}))
	}
}

// @Summary      Record breathing exercise
// @Tags         Usage
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespRecordBreathing
// @Router       /api/v1/usage/{user_id}/breathing/record [post]
func ApiRecordBreathing(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		n := tracker.RecordBreathingCompleted(c.Request.Context(), userID)
		c.JSON(http.StatusOK, response.OKT(&RecordBreathingResponse{Completed: n}))
	}
}

// @Summary      Is breathing exercise locked
// @Tags         Usage
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Param        index    path  int     true  "Zero-based catalog index"
// @Success      200  {object}  handlers.RespBreathingLocked
// @Router       /api/v1/usage/{user_id}/breathing/{index}/locked [get]
func ApiBreathingLocked(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid index"))
			return
		}
		locked := tracker.IsBreathingExerciseLocked(c.Request.Context(), userID, index)
		c.JSON(http.StatusOK, response.OKT(&BreathingLockedResponse{Index: index, Locked: locked}))
	}
}

// @Summary      Premium feature catalog
// @Tags         Usage
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespFeatures
// @Router       /api/v1/usage/{user_id}/features [get]
func ApiFeatures(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, response.OKT(tracker.Features(c.Request.Context(), userID)))
	}
}

// @Summary      Start free trial
// @Description  Activates premium for the configured trial duration (7 days by default).
// @Tags         Usage
// @Produce      json
// @Param        user_id  path  string  true  "Installation ID"
// @Success      200  {object}  handlers.RespPremium
// @Router       /api/v1/usage/{user_id}/premium/trial [post]
func ApiStartFreeTrial(tracker *usage.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		expiresAt, err := tracker.StartFreeTrial(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&PremiumResponse{ExpiresAt: expiresAt}))
	}
}

func RegisterUsageRoutes(r gin.IRouter, tracker *usage.Tracker) {
	r.GET("/:user_id", ApiUsageSnapshot(tracker))
	r.GET("/:user_id/comics/can_generate", ApiCanGenerateComic(tracker))
	r.POST("/:user_id/comics/record", ApiRecordComic(tracker))
	r.POST("/:user_id/breathing/record", ApiRecordBreathing(tracker))
	r.GET("/:user_id/breathing/:index/locked", ApiBreathingLocked(tracker))
	r.GET("/:user_id/features", ApiFeatures(tracker))
	r.POST("/:user_id/premium/trial", ApiStartFreeTrial(tracker))
}
