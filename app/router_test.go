package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v2"
	v "github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	v.Reset()
	t.Cleanup(v.Reset)

	d := internal.NewDeps(testutil.NewDB(t), testutil.NewHasher(), testutil.NewTokens(t), service.LogAlerter{})
	router, closeRouter := NewRouter(d)
	t.Cleanup(func() { closeRouter() })

	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) register(email string) service.AuthResult {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "correct-horse-1",
		"fullName": "  Jane Doe ",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	return decode[service.AuthResult](s.t, w)
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodHead, "/api/heartbeat", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/profiles/me", "/api/vitals", "/api/contacts", "/api/assessments", "/api/doctors/suggestions"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := s.do(http.MethodGet, "/api/validate", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AuthFlow(t *testing.T) {
	s := newTestServer(t)

	reg := s.register("jane@example.com")
	assert.NotEmpty(t, reg.UserID)
	assert.Equal(t, "Jane Doe", reg.Profile.FullName)
	assert.Equal(t, int64(900), reg.Tokens.ExpiresIn)

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "jane@example.com", "password": "correct-horse-1", "fullName": "Other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@example.com", "password": "correct-horse-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[service.AuthResult](t, w)

	// login replaced the refresh token issued at registration
	w = s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": reg.Tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// refresh tokens don't work as bearer tokens
	w = s.do(http.MethodGet, "/api/validate", login.Tokens.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": login.Tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pair := decode[service.TokenPair](t, w)
	assert.Equal(t, login.Tokens.RefreshToken, pair.RefreshToken)

	w = s.do(http.MethodGet, "/api/validate", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	who := decode[map[string]string](t, w)
	assert.Equal(t, reg.UserID, who["userId"])
	assert.Equal(t, "jane@example.com", who["email"])

	w = s.do(http.MethodPost, "/api/auth/logout", "", gin.H{"refreshToken": pair.RefreshToken})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "jane@example.com", "password": "short", "fullName": "Jane"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"password": "correct-horse-1", "fullName": "Jane"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	assert.Contains(t, body["details"], "email")
}

func TestRouter_ProfileAndScreening(t *testing.T) {
	s := newTestServer(t)
	token := s.register("jane@example.com").Tokens.AccessToken

	w := s.do(http.MethodPut, "/api/profiles/me", token, gin.H{"country": "India", "pincode": "560001"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/profiles/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[map[string]any](t, w)
	assert.Equal(t, "India", p["country"])
	assert.Equal(t, "Jane Doe", p["fullName"])
	assert.Equal(t, false, p["initialScreeningCompleted"])

	w = s.do(http.MethodPost, "/api/profiles/initial-screening", token, gin.H{
		"responses": gin.H{"1": 3, "4": 3, "6": 3, "15": 2},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[service.ScreeningOutcome](t, w)
	assert.Equal(t, 11, out.Result.Score)
	assert.Equal(t, service.SeverityUrgent, out.Result.Severity)
	assert.True(t, out.Profile.InitialScreeningCompleted)

	w = s.do(http.MethodGet, "/api/assessments?type=phq9", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, page["totalElements"])
}

func TestRouter_Vitals(t *testing.T) {
	s := newTestServer(t)
	token := s.register("jane@example.com").Tokens.AccessToken
	other := s.register("john@example.com").Tokens.AccessToken

	w := s.do(http.MethodPost, "/api/vitals", token, gin.H{"heartRate": 150, "temperature": 98.6})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	r := decode[map[string]any](t, w)
	assert.Equal(t, true, r["isEmergency"])

	w = s.do(http.MethodPost, "/api/vitals", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/vitals/"+r["id"].(string), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/vitals/"+r["id"].(string), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/vitals?page=0&size=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, page["totalElements"])
	assert.EqualValues(t, 10, page["size"])

	w = s.do(http.MethodGet, "/api/vitals?size=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Contacts(t *testing.T) {
	s := newTestServer(t)
	token := s.register("jane@example.com").Tokens.AccessToken

	w := s.do(http.MethodPost, "/api/contacts", token, gin.H{"name": "Mom", "phone": "+911234567890", "isDefault": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	mom := decode[map[string]any](t, w)

	w = s.do(http.MethodPost, "/api/contacts", token, gin.H{"name": "Dad", "phone": "+910987654321"})
	require.Equal(t, http.StatusCreated, w.Code)
	dad := decode[map[string]any](t, w)

	w = s.do(http.MethodDelete, "/api/contacts/"+mom["id"].(string), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/contacts/"+dad["id"].(string), token, gin.H{"isDefault": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/api/contacts/"+mom["id"].(string), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodPost, "/api/contacts/"+dad["id"].(string)+"/alert", token, nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "dispatched", decode[map[string]any](t, w)["status"])

	w = s.do(http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0]["isDefault"])
}

func TestRouter_Assessments(t *testing.T) {
	s := newTestServer(t)
	token := s.register("jane@example.com").Tokens.AccessToken

	w := s.do(http.MethodPost, "/api/assessments", token, gin.H{
		"type": "GAD7", "score": 12, "severity": "Moderate", "responses": gin.H{"1": 2},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := decode[map[string]any](t, w)

	w = s.do(http.MethodPost, "/api/assessments", token, gin.H{"type": "NOPE", "score": 1, "responses": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/assessments/"+a["id"].(string), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/assessments/does-not-exist", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Doctors(t *testing.T) {
	s := newTestServer(t)
	token := s.register("jane@example.com").Tokens.AccessToken

	w := s.do(http.MethodGet, "/api/doctors/suggestions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[[]string](t, w))

	w = s.do(http.MethodGet, "/api/doctors/search?term=psych&lat=12.97&lng=77.59", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/doctors/search?lat=200", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_CloseReleasesRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v.Reset()
	t.Cleanup(v.Reset)
	v.Set("security.rate_limit", 5)

	d := internal.NewDeps(testutil.NewDB(t), testutil.NewHasher(), testutil.NewTokens(t), service.LogAlerter{})
	_, closeRouter := NewRouter(d)

	require.NoError(t, closeRouter())
	assert.ErrorIs(t, closeRouter(), ttlcache.ErrClosed)
}
