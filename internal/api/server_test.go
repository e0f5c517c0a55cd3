// internal/api/server_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/assistant/generate"
	"hr-assistant/internal/assistant/pipeline"
	"hr-assistant/internal/assistant/retrieve"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
	"hr-assistant/internal/store"
)

func newTestServer(t *testing.T, rlCfg config.RateLimitConfig) (*Server, *miniredis.Miniredis) {
	t.Helper()

	day := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	s := &store.MemoryStore{
		Departments: []store.MemoryDepartment{
			{Department: models.Department{ID: 1, Name: "Cardiology", Code: "CARD", IsActive: true}},
		},
		EmployeeRows: []store.MemoryEmployee{
			{Employee: models.Employee{ID: 101, EmployeeID: "EMP101", Name: "Asha Rao", Department: "Cardiology", Category: models.CategoryMedical, Status: models.EmployeeActive}, DepartmentID: 1},
		},
		Leaves: []store.MemoryLeave{
			{LeaveEntry: models.LeaveEntry{EmployeeName: "Asha Rao", EmployeeCode: "EMP101", Department: "Cardiology", LeaveType: "sick", StartDate: day, EndDate: day, TotalDays: 1, Status: models.LeaveApproved}, EmployeeID: 101},
		},
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewNoOpLogger()
	p := pipeline.New(
		retrieve.New(s, func() time.Time { return day }, log),
		generate.New(config.GenAIConfig{}, log),
		log,
	)
	limiter := NewRateLimiter(client, rlCfg, log)
	return NewServer(p, limiter, config.ServerConfig{ListenAddress: ":0", RequestTimeout: 5000}, log), mr
}

func postQuery(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestQueryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{Enabled: false})
	handler := srv.Handler()

	rec := postQuery(t, handler, `{"query": "who is on leave today?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "leave_today", resp.Intent)
	assert.Equal(t, "who is on leave today?", resp.OriginalQuery)
	assert.Contains(t, resp.Answer, "Asha Rao")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestQueryEndpointRejectsInvalidPayload(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{Enabled: false})
	handler := srv.Handler()

	cases := []struct {
		name string
		body string
	}{
		{"empty query", `{"query": ""}`},
		{"missing query", `{}`},
		{"wrong type", `{"query": 42}`},
		{"extra field", `{"query": "hi", "debug": true}`},
		{"not json", `who is absent`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postQuery(t, handler, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "REQUEST_INVALID", resp.Error.Code)
		})
	}
}

func TestQueryEndpointMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{Enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/api/assistant/query", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestQueryEndpointRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{
		Enabled:       true,
		MaxPerWindow:  3,
		WindowSeconds: 60,
	})
	handler := srv.Handler()

	for i := 0; i < 3; i++ {
		rec := postQuery(t, handler, `{"query": "how many employees"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postQuery(t, handler, `{"query": "how many employees"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Error.Code)
}

func TestQueryEndpointRateLimitWindowExpires(t *testing.T) {
	srv, mr := newTestServer(t, config.RateLimitConfig{
		Enabled:       true,
		MaxPerWindow:  1,
		WindowSeconds: 60,
	})
	handler := srv.Handler()

	rec := postQuery(t, handler, `{"query": "how many employees"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postQuery(t, handler, `{"query": "how many employees"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	mr.FastForward(61 * time.Second)

	rec = postQuery(t, handler, `{"query": "how many employees"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{Enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{Enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRequestIDPropagates(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{Enabled: false})
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/query", strings.NewReader(`{"query": "hello"}`))
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
