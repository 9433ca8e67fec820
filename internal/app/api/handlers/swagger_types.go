package handlers

import (
	"github.com/fatflowers/wellbeing/internal/app/service/statistics"
	"github.com/fatflowers/wellbeing/internal/app/service/usage"
	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

type RespHealth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    HealthStatus             `json:"data"`
}

type RespUsageSnapshot struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    usage.Snapshot           `json:"data"`
}

type RespCanGenerateComic struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    CanGenerateComicResponse `json:"data"`
}

type RespRecordComic struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    RecordComicResponse      `json:"data"`
}

type RespRecordBreathing struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    RecordBreathingResponse  `json:"data"`
}

type RespBreathingLocked struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    BreathingLockedResponse  `json:"data"`
}

type RespFeatures struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []usage.Feature          `json:"data"`
}

type RespPremium struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    PremiumResponse          `json:"data"`
}

type RespTotalFeathers struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    TotalFeathersResponse    `json:"data"`
}

// RespGrant wraps a single feather grant in the standard envelope.
type RespGrant struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.FeatherGrant      `json:"data"`
}

// RespGrants wraps a list of feather grants in the standard envelope.
type RespGrants struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.FeatherGrant    `json:"data"`
}

type RespImpactStatistic struct {
	Code    response.APIResponseCode           `json:"code"`
	Message string                             `json:"message"`
	Data    statistics.ImpactStatisticResponse `json:"data"`
}

// RespUsageLogs wraps usage audit rows. before/after hold usage record documents.
type RespUsageLogs struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []SwaggerUsageLog        `json:"data"`
}

// SwaggerUsageLog is a simplified view of models.UsageLog for documentation purposes.
type SwaggerUsageLog struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Reason    string              `json:"reason"`
	Before    *models.UsageRecord `json:"before"`
	After     *models.UsageRecord `json:"after"`
	CreatedAt string              `json:"createdAt"`
}
