package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fatflowers/wellbeing/pkg/logctx"
)

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func adminEngine(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AdminAuthMiddleware(secret))
	r.GET("/admin", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(AdminSubjectKey))
	})
	return r
}

func TestAdminAuthMiddleware(t *testing.T) {
	r := adminEngine("s3cret")
	valid := signed(t, jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{
		"sub": "support@wellbeing", "exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := map[string]struct {
		header string
		ok     bool
	}{
		"valid":        {"Bearer " + valid, true},
		"missing":      {"", false},
		"not bearer":   {"Basic abc", false},
		"wrong secret": {"Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "x"}), false},
		"expired":      {"Bearer " + signed(t, jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()}), false},
		"wrong alg":    {"Bearer " + signed(t, jwt.SigningMethodHS512, []byte("s3cret"), jwt.MapClaims{"sub": "x"}), false},
	}
	for name, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, name)
		if tc.ok {
			require.Equal(t, "support@wellbeing", w.Body.String(), name)
		} else {
			require.Contains(t, w.Body.String(), `"code":40100`, name)
		}
	}
}

func TestAdminAuthMiddleware_EmptySecretRejects(t *testing.T) {
	r := adminEngine("")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.SigningMethodHS256, []byte(""), jwt.MapClaims{}))
	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":40100`)
}

func TestRequestLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core).Sugar()

	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/usage/:user_id", RequestLoggerMiddleware(base), AccessLogMiddleware(), func(c *gin.Context) {
		logctx.FromCtx(c.Request.Context(), base).Infow("handled")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/usage/install-1", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	r.ServeHTTP(w, req)

	require.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
	handled := logs.FilterMessage("handled").All()
	require.Len(t, handled, 1)
	require.Equal(t, "trace-123", handled[0].ContextMap()["trace_id"])
	require.Equal(t, "install-1", handled[0].ContextMap()["user_id"])

	access := logs.FilterMessage("http_access").All()
	require.Len(t, access, 1)
	require.Equal(t, "/usage/:user_id", access[0].ContextMap()["path"])
	require.EqualValues(t, http.StatusNoContent, access[0].ContextMap()["status"])
}

func TestTraceMiddleware_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware())
	var seen string
	r.GET("/", func(c *gin.Context) { seen = logctx.TraceID(c.Request.Context()) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, seen, 36)
}
