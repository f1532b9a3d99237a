package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"promptbuilder-backend/config"
	"promptbuilder-backend/internal/database"
	"promptbuilder-backend/internal/utils"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []string
	hints []map[string]interface{}
}

func (f *fakeGenerator) Generate(_ context.Context, userContext string, userHint map[string]interface{}) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userContext)
	f.hints = append(f.hints, userHint)
	return "generated for: " + userContext
}

type testServer struct {
	router    *gin.Engine
	generator *fakeGenerator
}

func newTestServer(t *testing.T, ratePerMinute int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gen := &fakeGenerator{}
	cfg := &config.Config{
		SecretKey:             "test-secret",
		CORSOrigins:           []string{"http://localhost:5173"},
		GenerateRatePerMinute: ratePerMinute,
	}
	return &testServer{
		router:    NewRouter(Dependencies{Config: cfg, DB: db, Redis: client, Generator: gen}),
		generator: gen,
	}
}

type apiResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type categoryJSON struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PromptCount int64  `json:"prompt_count"`
}

type promptJSON struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Variables    []string `json:"variables"`
	CategoryID   uint     `json:"category_id"`
	CategoryName string   `json:"category_name"`
	UsageCount   int64    `json:"usage_count"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 0)
	w, _ := s.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"Prompt Builder API is running"}`, w.Body.String())
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t, 0)

	w, resp := s.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "General", "description": "misc"})
	require.Equal(t, http.StatusCreated, w.Code)
	general := decode[categoryJSON](t, resp.Data)
	assert.Equal(t, "General", general.Name)
	assert.Equal(t, int64(0), general.PromptCount)

	w, resp = s.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "General"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Category already exists", resp.Message)

	w, resp = s.do(t, http.MethodPost, "/api/categories", map[string]string{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode[utils.ValidationErrorData](t, resp.Data)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, "name", errs.Errors[0].Field)

	w, _ = s.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "Other"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = s.do(t, http.MethodPut, "/api/categories/1", map[string]string{"name": "Other"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = s.do(t, http.MethodPut, "/api/categories/1", map[string]string{"name": "Everyday"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Everyday", decode[categoryJSON](t, resp.Data).Name)
	assert.Equal(t, "misc", decode[categoryJSON](t, resp.Data).Description)

	w, _ = s.do(t, http.MethodPost, "/api/prompts", map[string]interface{}{"title": "t", "content": "c", "category_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]categoryJSON](t, resp.Data)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].PromptCount)

	w, resp = s.do(t, http.MethodDelete, "/api/categories/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, resp.Message, "Cannot delete category with prompts")

	w, _ = s.do(t, http.MethodDelete, "/api/categories/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/categories/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/categories/1/prompts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]promptJSON](t, resp.Data), 1)

	w, _ = s.do(t, http.MethodGet, "/api/categories/99/prompts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/categories/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPromptGreetingFlow(t *testing.T) {
	s := newTestServer(t, 0)

	w, resp := s.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "General"})
	require.Equal(t, http.StatusCreated, w.Code)
	general := decode[categoryJSON](t, resp.Data)

	w, resp = s.do(t, http.MethodPost, "/api/prompts", map[string]interface{}{
		"title":       "Greet",
		"content":     "Hello {name}, welcome to {place}!",
		"category_id": general.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	greet := decode[promptJSON](t, resp.Data)
	assert.Equal(t, []string{"name", "place"}, greet.Variables)
	assert.Equal(t, "General", greet.CategoryName)

	w, resp = s.do(t, http.MethodPost, "/api/prompts/1/use", map[string]interface{}{
		"variables": map[string]string{"name": "Ann", "place": "Earth"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	used := decode[map[string]interface{}](t, resp.Data)
	assert.Equal(t, "Hello Ann, welcome to Earth!", used["final_content"])
	assert.Equal(t, float64(1), used["usage_count"])

	// body may be omitted
	w, resp = s.do(t, http.MethodPost, "/api/prompts/1/use", nil)
	require.Equal(t, http.StatusOK, w.Code)
	used = decode[map[string]interface{}](t, resp.Data)
	assert.Equal(t, "Hello {name}, welcome to {place}!", used["final_content"])
	assert.Equal(t, float64(2), used["usage_count"])

	w, resp = s.do(t, http.MethodPut, "/api/prompts/1", map[string]string{"content": "Bye {who}"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"who"}, decode[promptJSON](t, resp.Data).Variables)

	w, _ = s.do(t, http.MethodPost, "/api/prompts/99/use", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/prompts/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/prompts/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsePromptWithTypedValues(t *testing.T) {
	s := newTestServer(t, 0)

	w, _ := s.do(t, http.MethodPost, "/api/prompts", map[string]interface{}{
		"title":   "List",
		"content": "List {n} items, verbose={v}, note={x}",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/prompts/1/use", map[string]interface{}{
		"variables": map[string]interface{}{"n": 3, "v": true, "x": nil},
	})
	require.Equal(t, http.StatusOK, w.Code)
	used := decode[map[string]interface{}](t, resp.Data)
	assert.Equal(t, "List 3 items, verbose=true, note=", used["final_content"])
	assert.Equal(t, float64(1), used["usage_count"])
}

func TestCreatePromptValidation(t *testing.T) {
	s := newTestServer(t, 0)

	w, _ := s.do(t, http.MethodPost, "/api/prompts", map[string]interface{}{"title": "t"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/prompts", map[string]interface{}{"title": "t", "content": "c", "category_id": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category not found", resp.Message)

	w, resp = s.do(t, http.MethodPost, "/api/prompts", map[string]interface{}{"title": "t", "content": "c"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "General", decode[promptJSON](t, resp.Data).CategoryName)
}

func TestPromptQueries(t *testing.T) {
	s := newTestServer(t, 0)

	for _, p := range []map[string]interface{}{
		{"title": "Email draft", "content": "Write to {recipient}"},
		{"title": "Story", "content": "A tale about email"},
		{"title": "Code", "content": "Review {language}"},
	} {
		w, _ := s.do(t, http.MethodPost, "/api/prompts", p)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	for i := 0; i < 2; i++ {
		w, _ := s.do(t, http.MethodPost, "/api/prompts/3/use", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp := s.do(t, http.MethodGet, "/api/prompts/search?q=EMAIL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]promptJSON](t, resp.Data), 2)

	w, resp = s.do(t, http.MethodGet, "/api/prompts/search?q=email&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]promptJSON](t, resp.Data), 1)

	w, _ = s.do(t, http.MethodGet, "/api/prompts/search?q=email&limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/prompts?search=review", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]promptJSON](t, resp.Data), 1)

	w, resp = s.do(t, http.MethodGet, "/api/prompts/most-used?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	top := decode[[]promptJSON](t, resp.Data)
	require.Len(t, top, 1)
	assert.Equal(t, "Code", top[0].Title)
	assert.Equal(t, int64(2), top[0].UsageCount)

	w, resp = s.do(t, http.MethodGet, "/api/prompts/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]promptJSON](t, resp.Data), 3)

	w, resp = s.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[map[string]interface{}](t, resp.Data)
	overview := dash["overview"].(map[string]interface{})
	assert.Equal(t, float64(3), overview["total_prompts"])
	assert.Equal(t, float64(2), overview["total_usage"])

	w, _ = s.do(t, http.MethodGet, "/api/stats/usage", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/stats/prompts/trending?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	trending := decode[[]promptJSON](t, resp.Data)
	require.Len(t, trending, 2)
	assert.Equal(t, "Code", trending[0].Title)
}

func TestGenerateEndpoints(t *testing.T) {
	s := newTestServer(t, 0)

	w, resp := s.do(t, http.MethodPost, "/api/prompts/generate", map[string]interface{}{
		"user_context": "thank my team",
		"user_info":    map[string]string{"role": "manager"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "generated for: thank my team", decode[map[string]string](t, resp.Data)["generated_prompt"])
	assert.Equal(t, "manager", s.generator.hints[0]["role"])

	w, resp = s.do(t, http.MethodPost, "/api/generate-prompt", map[string]string{"context": "plan a trip"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "generated for: plan a trip", decode[map[string]string](t, resp.Data)["prompt"])

	w, _ = s.do(t, http.MethodPost, "/api/generate-prompt", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, s.generator.calls, 2)
}

func TestGenerateIsRateLimited(t *testing.T) {
	s := newTestServer(t, 1)

	w, _ := s.do(t, http.MethodPost, "/api/generate-prompt", map[string]string{"context": "one"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, resp := s.do(t, http.MethodPost, "/api/prompts/generate", map[string]string{"user_context": "two"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, 0)

	w, resp := s.do(t, http.MethodPost, "/api/signup", map[string]string{"email": "ann@example.com", "password": "secret1", "name": "Ann"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ann@example.com", decode[map[string]interface{}](t, resp.Data)["email"])
	assert.NotContains(t, w.Body.String(), "password")

	w, _ = s.do(t, http.MethodPost, "/api/signup", map[string]string{"email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/signup", map[string]string{"email": "ann@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/login", map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/login", map[string]string{"email": "ann@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)

	w, resp = s.do(t, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ann", decode[map[string]interface{}](t, resp.Data)["name"])

	w, resp = s.do(t, http.MethodGet, "/api/users", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, resp.Data), 1)

	w, _ = s.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -1, sessionCookie(t, w).MaxAge)

	w, resp = s.do(t, http.MethodGet, "/api/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Session has been revoked", resp.Message)

	w, _ = s.do(t, http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
