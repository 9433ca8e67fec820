package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/app/service/statistics"
	"github.com/fatflowers/wellbeing/internal/app/service/usage"
	usagelog "github.com/fatflowers/wellbeing/internal/app/service/usage_log"
	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage/sqlite"
	"github.com/fatflowers/wellbeing/pkg/config"
	"github.com/fatflowers/wellbeing/pkg/response"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	r     *gin.Engine
	audit *usagelog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"), nil)
	require.NoError(t, err)
	log := zap.NewNop().Sugar()
	audit := usagelog.New(store, log)
	t.Cleanup(func() {
		audit.Flush()
		_ = store.Close()
	})

	now := func() time.Time { return testNow }
	tracker := usage.New(store.Usage(), config.DefaultEntitlement(), log, usage.WithClock(now), usage.WithAuditor(audit))
	ledger := feather.New(store.Grants(), log, feather.WithClock(now))
	stats := statistics.New(ledger, time.UTC)

	r := gin.New()
	v1 := r.Group("/api/v1")
	RegisterUsageRoutes(v1.Group("/usage"), tracker)
	RegisterFeatherRoutes(v1.Group("/feathers"), ledger, stats)
	RegisterAdminRoutes(v1.Group("/admin"), tracker, ledger, audit)
	RegisterHealthRoutes(r, &config.Config{Env: config.EnvDev, Storage: config.StorageConfig{Driver: config.StorageDriverSQLite}})
	return &fixture{r: r, audit: audit}
}

func do[T any](t *testing.T, f *fixture, method, path string, body any) *response.APIResponse[T] {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res response.APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return &res
}

func TestRegisterRoutes_RegistersEndpoints(t *testing.T) {
	f := newFixture(t)
	routes := f.r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	for _, want := range []string{
		"GET /healthz",
		"GET /api/v1/usage/:user_id",
		"POST /api/v1/usage/:user_id/comics/record",
		"GET /api/v1/usage/:user_id/breathing/:index/locked",
		"POST /api/v1/usage/:user_id/premium/trial",
		"GET /api/v1/feathers/:user_id/recent",
		"POST /api/v1/feathers/:user_id/award/bonus",
		"POST /api/v1/feathers/:user_id/statistics",
		"POST /api/v1/admin/activate_premium",
		"GET /api/v1/admin/usage_logs/:user_id",
	} {
		require.True(t, contains(want), want)
	}
}

func TestComicQuota_DeniesSixthComic(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		res := do[RecordComicResponse](t, f, http.MethodPost, "/api/v1/usage/u1/comics/record", nil)
		require.Equal(t, response.APIResponseCodeOK, res.Code)
		require.True(t, res.Data.Allowed)
	}
	res := do[RecordComicResponse](t, f, http.MethodPost, "/api/v1/usage/u1/comics/record", nil)
	require.False(t, res.Data.Allowed)

	can := do[CanGenerateComicResponse](t, f, http.MethodGet, "/api/v1/usage/u1/comics/can_generate", nil)
	require.Equal(t, CanGenerateComicResponse{Allowed: false, Remaining: 0}, can.Data)

	snap := do[usage.Snapshot](t, f, http.MethodGet, "/api/v1/usage/u1", nil)
	require.Equal(t, 5, snap.Data.ComicsGenerated)
	require.False(t, snap.Data.IsPremium)
}

func TestTrial_UnlocksEverything(t *testing.T) {
	f := newFixture(t)

	locked := do[BreathingLockedResponse](t, f, http.MethodGet, "/api/v1/usage/u1/breathing/3/locked", nil)
	require.True(t, locked.Data.Locked)

	trial := do[PremiumResponse](t, f, http.MethodPost, "/api/v1/usage/u1/premium/trial", nil)
	require.Equal(t, response.APIResponseCodeOK, trial.Code)
	require.True(t, trial.Data.ExpiresAt.Equal(testNow.AddDate(0, 0, 7)))

	locked = do[BreathingLockedResponse](t, f, http.MethodGet, "/api/v1/usage/u1/breathing/3/locked", nil)
	require.False(t, locked.Data.Locked)

	can := do[CanGenerateComicResponse](t, f, http.MethodGet, "/api/v1/usage/u1/comics/can_generate", nil)
	require.Equal(t, usage.Unlimited, can.Data.Remaining)

	features := do[[]usage.Feature](t, f, http.MethodGet, "/api/v1/usage/u1/features", nil)
	require.NotEmpty(t, features.Data)
	for _, ft := range features.Data {
		require.True(t, ft.Unlocked, ft.ID)
	}
}

func TestBreathing_RecordAndBadIndex(t *testing.T) {
	f := newFixture(t)

	res := do[RecordBreathingResponse](t, f, http.MethodPost, "/api/v1/usage/u1/breathing/record", nil)
	require.Equal(t, 1, res.Data.Completed)

	bad := do[any](t, f, http.MethodGet, "/api/v1/usage/u1/breathing/abc/locked", nil)
	require.Equal(t, response.APIResponseCodeBadRequest, bad.Code)
}

func TestInvalidUserID(t *testing.T) {
	f := newFixture(t)

	res := do[any](t, f, http.MethodGet, "/api/v1/usage/"+strings.Repeat("x", maxUserIDLen+1), nil)
	require.Equal(t, response.APIResponseCodeBadRequest, res.Code)
}

func TestFeathers_AwardTotalRecent(t *testing.T) {
	f := newFixture(t)

	g := do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/feathers/u1/award/task_completion", AwardTaskCompletionRequest{TaskType: "breathing"})
	require.Equal(t, response.APIResponseCodeOK, g.Code)
	require.Equal(t, "Completed breathing task", g.Data.DescriptionText())

	do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/feathers/u1/award/daily_checkin", nil)
	do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/feathers/u1/award/reflection", nil)
	bonus := do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/feathers/u1/award/bonus", AwardBonusRequest{Reason: "Streak"})
	require.Equal(t, int64(1), bonus.Data.Amount)

	total := do[TotalFeathersResponse](t, f, http.MethodGet, "/api/v1/feathers/u1/total", nil)
	require.Equal(t, int64(4), total.Data.Total)

	recent := do[[]models.FeatherGrant](t, f, http.MethodGet, "/api/v1/feathers/u1/recent?limit=2", nil)
	require.Len(t, recent.Data, 2)

	byCat := do[[]models.FeatherGrant](t, f, http.MethodGet, "/api/v1/feathers/u1/category/reflection", nil)
	require.Len(t, byCat.Data, 1)

	empty := do[[]models.FeatherGrant](t, f, http.MethodGet, "/api/v1/feathers/u2/recent", nil)
	require.NotNil(t, empty.Data)
	require.Empty(t, empty.Data)

	bad := do[any](t, f, http.MethodGet, "/api/v1/feathers/u1/recent?limit=many", nil)
	require.Equal(t, response.APIResponseCodeBadRequest, bad.Code)
}

func TestFeathers_TaskCompletionRequiresType(t *testing.T) {
	f := newFixture(t)

	res := do[any](t, f, http.MethodPost, "/api/v1/feathers/u1/award/task_completion", AwardTaskCompletionRequest{})
	require.Equal(t, response.APIResponseCodeBadRequest, res.Code)
}

func TestFeathers_Statistics(t *testing.T) {
	f := newFixture(t)
	do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/feathers/u1/award/daily_checkin", nil)
	do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/feathers/u1/award/bonus", AwardBonusRequest{Reason: "x", Amount: 3})

	res := do[statistics.ImpactStatisticResponse](t, f, http.MethodPost, "/api/v1/feathers/u1/statistics", statistics.ImpactStatisticRequest{
		DataItems: []*statistics.ImpactStatisticDataItem{{ID: statistics.StatisticTypeTotalFeathers}},
	})
	require.Equal(t, response.APIResponseCodeOK, res.Code)
	items := res.Data.DataItems[statistics.StatisticTypeTotalFeathers]
	require.Len(t, items, 1)
	require.Equal(t, int64(4), items[0].Value)
	require.Equal(t, int64(2), items[0].Value2)
}

func TestAdmin_ActivateResetGrantLogs(t *testing.T) {
	f := newFixture(t)

	bad := do[any](t, f, http.MethodPost, "/api/v1/admin/activate_premium", ActivatePremiumRequest{UserID: "u1", DurationMonths: 0})
	require.Equal(t, response.APIResponseCodeBadRequest, bad.Code)

	act := do[PremiumResponse](t, f, http.MethodPost, "/api/v1/admin/activate_premium", ActivatePremiumRequest{UserID: "u1", DurationMonths: 1})
	require.Equal(t, response.APIResponseCodeOK, act.Code)
	require.True(t, act.Data.ExpiresAt.Equal(testNow.AddDate(0, 1, 0)))

	reset := do[any](t, f, http.MethodPost, "/api/v1/admin/reset_usage", ResetUsageRequest{UserID: "u1"})
	require.Equal(t, response.APIResponseCodeOK, reset.Code)
	snap := do[usage.Snapshot](t, f, http.MethodGet, "/api/v1/usage/u1", nil)
	require.False(t, snap.Data.IsPremium)

	grant := do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/admin/grant", AdminGrantRequest{UserID: "u1", Category: "bonus", Amount: -2})
	require.Equal(t, response.APIResponseCodeBadRequest, grant.Code)
	grant = do[models.FeatherGrant](t, f, http.MethodPost, "/api/v1/admin/grant", AdminGrantRequest{UserID: "u1", Category: "bonus", Amount: 2})
	require.Equal(t, response.APIResponseCodeOK, grant.Code)

	f.audit.Flush()
	logs := do[[]models.UsageLog](t, f, http.MethodGet, "/api/v1/admin/usage_logs/u1", nil)
	require.Equal(t, response.APIResponseCodeOK, logs.Code)
	require.NotEmpty(t, logs.Data)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	res := do[HealthStatus](t, f, http.MethodGet, "/healthz", nil)
	require.Equal(t, HealthStatus{Status: "ok", Service: "wellbeing", Env: "dev", Storage: "sqlite"}, res.Data)
}
