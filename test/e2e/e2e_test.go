// test/e2e/e2e_test.go

// End-to-end exercises of the full assistant stack: HTTP server, pipeline,
// rate limiter, and the in-memory record store. The remote generation
// endpoint is either a local double or unreachable, so no external services
// are required.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/api"
	"hr-assistant/internal/assistant/generate"
	"hr-assistant/internal/assistant/pipeline"
	"hr-assistant/internal/assistant/retrieve"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
	"hr-assistant/internal/store"
)

var referenceDay = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func seededStore() *store.MemoryStore {
	return &store.MemoryStore{
		Departments: []store.MemoryDepartment{
			{Department: models.Department{ID: 1, Name: "Cardiology", Code: "CARD", Location: "block_a", HeadName: "Dr. Asha Rao", TotalBeds: 40, IsActive: true}},
			{Department: models.Department{ID: 2, Name: "Radiology", Code: "RAD", Location: "main_building", IsActive: true}},
		},
		EmployeeRows: []store.MemoryEmployee{
			{Employee: models.Employee{ID: 101, EmployeeID: "EMP101", Name: "Asha Rao", Department: "Cardiology", Category: models.CategoryMedical, Designation: "Cardiologist", Status: models.EmployeeActive}, DepartmentID: 1},
			{Employee: models.Employee{ID: 102, EmployeeID: "EMP102", Name: "Binu Thomas", Department: "Cardiology", Category: models.CategoryNursing, Designation: "Staff Nurse", Shift: "night", Status: models.EmployeeActive}, DepartmentID: 1},
			{Employee: models.Employee{ID: 103, EmployeeID: "EMP103", Name: "Chitra Nair", Department: "Radiology", Category: models.CategoryParamedical, Designation: "Radiographer", Status: models.EmployeeActive}, DepartmentID: 2},
		},
		Attendance: []store.MemoryAttendance{
			{AttendanceEntry: models.AttendanceEntry{EmployeeID: 101, EmployeeCode: "EMP101", EmployeeName: "Asha Rao", Department: "Cardiology", Date: referenceDay, Status: models.AttendancePresent}, DepartmentID: 1},
		},
		Leaves: []store.MemoryLeave{
			{LeaveEntry: models.LeaveEntry{EmployeeName: "Binu Thomas", EmployeeCode: "EMP102", Department: "Cardiology", LeaveType: "sick", StartDate: referenceDay.AddDate(0, 0, -1), EndDate: referenceDay.AddDate(0, 0, 1), TotalDays: 3, Status: models.LeaveApproved}, EmployeeID: 102},
			{LeaveEntry: models.LeaveEntry{EmployeeName: "Chitra Nair", EmployeeCode: "EMP103", Department: "Radiology", LeaveType: "casual", StartDate: referenceDay, EndDate: referenceDay, TotalDays: 1, Status: models.LeaveApproved}, EmployeeID: 103},
		},
	}
}

// newStack wires the full server against the seeded store. genaiCfg controls
// the remote strategy; a zero value disables it.
func newStack(t *testing.T, genaiCfg config.GenAIConfig) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewNoOpLogger()
	p := pipeline.New(
		retrieve.New(seededStore(), func() time.Time { return referenceDay }, log),
		generate.New(genaiCfg, log),
		log,
	)
	limiter := api.NewRateLimiter(client, config.RateLimitConfig{
		Enabled:       true,
		MaxPerWindow:  100,
		WindowSeconds: 60,
	}, log)
	srv := api.NewServer(p, limiter, config.ServerConfig{ListenAddress: ":0", RequestTimeout: 10000}, log)
	return srv.Handler()
}

func ask(t *testing.T, handler http.Handler, query string) api.QueryResponse {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:40000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLeaveQueryEndToEnd(t *testing.T) {
	handler := newStack(t, config.GenAIConfig{})

	resp := ask(t, handler, "who is on leave today?")
	assert.Equal(t, "leave_today", resp.Intent)

	// Both approved leaves spanning the reference day surface in the
	// context and in the rendered answer.
	ctx := resp.Context.(map[string]interface{})
	assert.Equal(t, float64(2), ctx["total_on_leave"])
	assert.Contains(t, resp.Answer, "Binu Thomas")
	assert.Contains(t, resp.Answer, "Chitra Nair")
	assert.Contains(t, resp.Answer, "2025-03-14")
}

func TestDepartmentAttendanceFallsBackToAllDepartments(t *testing.T) {
	handler := newStack(t, config.GenAIConfig{})

	// No attendance rows exist for Radiology, but the department itself
	// matches, so the single-department variant is returned.
	resp := ask(t, handler, "attendance for Radiology department")
	assert.Equal(t, "department_attendance", resp.Intent)
	ctx := resp.Context.(map[string]interface{})
	assert.Equal(t, "department_attendance", ctx["type"])
	assert.Equal(t, "Radiology", ctx["department"])

	// A department-attendance query naming no known department aggregates
	// across every active department.
	resp = ask(t, handler, "attendance by department")
	ctx = resp.Context.(map[string]interface{})
	assert.Equal(t, "all_departments_attendance", ctx["type"])
	assert.Contains(t, resp.Answer, "Cardiology")
	assert.Contains(t, resp.Answer, "Radiology")
}

func TestUnreachableRemoteYieldsDeterministicAnswers(t *testing.T) {
	// Remote generation is configured but points at a closed port; every
	// query must still be answered, identically on every attempt.
	handler := newStack(t, config.GenAIConfig{
		BaseURL:     "http://127.0.0.1:1",
		APIKey:      "key-that-will-never-be-used-successfully",
		Model:       "llama-3.1-8b-instant",
		Timeout:     200,
		MaxTokens:   1024,
		Temperature: 0.3,
	})

	first := ask(t, handler, "who is on leave today?")
	second := ask(t, handler, "who is on leave today?")

	assert.NotEmpty(t, first.Answer)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Contains(t, first.Answer, "Binu Thomas")
}

func TestRemoteDoubleAnswersVerbatim(t *testing.T) {
	double := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Two staff members are on approved leave today."}},
			},
		})
	}))
	defer double.Close()

	handler := newStack(t, config.GenAIConfig{
		BaseURL:     double.URL,
		APIKey:      "test-key",
		Model:       "llama-3.1-8b-instant",
		Timeout:     2000,
		MaxTokens:   1024,
		Temperature: 0.3,
	})

	resp := ask(t, handler, "who is on leave today?")
	assert.Equal(t, "Two staff members are on approved leave today.", resp.Answer)
}

func TestEveryIntentAnswersEndToEnd(t *testing.T) {
	handler := newStack(t, config.GenAIConfig{})

	queries := map[string]string{
		"who is on leave today?":        "leave_today",
		"who is absent today":           "absent_today",
		"attendance summary":            "attendance_summary",
		"cardiology attendance":         "department_attendance",
		"how many employees are there":  "employee_count",
		"list all departments":          "department_info",
		"job applications":              "job_applications",
		"open positions":                "open_positions",
		"pending leave requests":        "leave_requests",
		"employees in radiology":        "employee_by_department",
		"nursing staff":                 "nurses",
		"medical staff":                 "doctors",
		"hello":                         "general",
	}

	for query, wantIntent := range queries {
		resp := ask(t, handler, query)
		assert.Equal(t, wantIntent, resp.Intent, query)
		assert.NotEmpty(t, resp.Answer, query)
		assert.Equal(t, query, resp.OriginalQuery)
	}
}
