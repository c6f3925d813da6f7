package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/testutil"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, w.Body.String(), 12)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestJWTMiddleware(t *testing.T) {
	db := testutil.NewDB(t)
	tokens := testutil.NewTokens(t)

	require.NoError(t, db.Create(&model.User{ID: "u1", Email: "a@b.c", PasswordHash: "x", Enabled: true}).Error)
	require.NoError(t, db.Create(&model.User{ID: "u2", Email: "d@e.f", PasswordHash: "x", Enabled: false}).Error)

	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.GET("/", NewJWTMiddleware(tokens, db), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID")+"|"+c.GetString("email"))
	})

	access, err := tokens.IssueAccessToken("u1", "a@b.c")
	require.NoError(t, err)
	refresh, err := tokens.IssueRefreshToken("u1")
	require.NoError(t, err)
	disabled, err := tokens.IssueAccessToken("u2", "d@e.f")
	require.NoError(t, err)
	ghost, err := tokens.IssueAccessToken("u3", "g@h.i")
	require.NoError(t, err)

	past, err := security.NewTokenService(security.TokenConfig{
		Secret: testutil.Secret,
		Now:    func() time.Time { return time.Now().Add(-time.Hour) },
	})
	require.NoError(t, err)
	expired, err := past.IssueAccessToken("u1", "a@b.c")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"no header", "", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"garbage", "Bearer garbage", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"deleted user", "Bearer " + ghost, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"disabled user", "Bearer " + disabled, http.StatusForbidden, "ACCOUNT_DISABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer "+access)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1|a@b.c", w.Body.String())
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2})
	defer rl.Close()

	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Different client, fresh bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	defer rl.Close()

	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 20 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/", BodySizeLimiter(8), func(c *gin.Context) {
		var v map[string]any
		if err := c.ShouldBindJSON(&v); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"much too long"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "BODY_TOO_LARGE", errorCode(t, w))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTurnstile(t *testing.T) {
	verifier := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		ok := body["response"] == "good" && body["secret"] == "s3cret"
		json.NewEncoder(w).Encode(map[string]any{"success": ok})
	}))
	defer verifier.Close()

	old := turnstileVerifyURL
	turnstileVerifyURL = verifier.URL
	defer func() { turnstileVerifyURL = old }()

	r := gin.New()
	r.POST("/on", NewTurnstileMiddleware(true, "s3cret"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/off", NewTurnstileMiddleware(false, ""), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(path, token string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if token != "" {
			req.Header.Set(TurnstileHeader, token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("/off", ""))
	assert.Equal(t, http.StatusForbidden, send("/on", ""))
	assert.Equal(t, http.StatusForbidden, send("/on", "bad"))
	assert.Equal(t, http.StatusOK, send("/on", "good"))
}
