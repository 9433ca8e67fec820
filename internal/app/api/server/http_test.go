package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/app/service/statistics"
	"github.com/fatflowers/wellbeing/internal/app/service/usage"
	usagelog "github.com/fatflowers/wellbeing/internal/app/service/usage_log"
	"github.com/fatflowers/wellbeing/internal/storage/sqlite"
	cfgpkg "github.com/fatflowers/wellbeing/pkg/config"
	"github.com/fatflowers/wellbeing/pkg/response"
)

func TestRegisterRoutes_AdminRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "server.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := zap.NewNop().Sugar()
	cfg := &cfgpkg.Config{Entitlement: cfgpkg.DefaultEntitlement(), Admin: cfgpkg.AdminConfig{JWTSecret: "s3cret"}}
	ledger := feather.New(store.Grants(), log)
	audit := usagelog.New(store, log)
	t.Cleanup(audit.Flush)

	r := newEngine()
	registerRoutes(r, routeDeps{
		Log:      log,
		Cfg:      cfg,
		Tracker:  usage.New(store.Usage(), cfg.Entitlement, log),
		Ledger:   ledger,
		Stats:    statistics.New(ledger, nil),
		UsageLog: audit,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset_usage", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var res response.APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, response.APIResponseCodeUnauthorized, res.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/usage/install-1", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, response.APIResponseCodeOK, res.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
