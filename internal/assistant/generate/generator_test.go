// internal/assistant/generate/generator_test.go
package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/assistant/contexts"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/logger"
)

func leaveSnapshot() *contexts.LeaveToday {
	return &contexts.LeaveToday{
		Base:         contexts.Base{Type: contexts.TypeLeaveToday},
		Date:         "2025-03-14",
		TotalOnLeave: 2,
		Employees: []contexts.LeaveEmployee{
			{EmployeeName: "Binu Thomas", EmployeeID: "EMP102", Department: "Cardiology", LeaveType: "Sick Leave", StartDate: "2025-03-13", EndDate: "2025-03-15"},
			{EmployeeName: "Esha Pillai", EmployeeID: "EMP105", Department: "N/A", LeaveType: "Casual Leave", StartDate: "2025-03-14", EndDate: "2025-03-14"},
		},
	}
}

func remoteConfig(baseURL string) config.GenAIConfig {
	return config.GenAIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "llama-3.1-8b-instant",
		Timeout:     2000,
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}

func completionsHandler(t *testing.T, reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.1-8b-instant", req.Model)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		assert.Equal(t, 1024, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		// The retrieved context travels verbatim inside the user message.
		assert.Contains(t, req.Messages[1].Content, `"type": "leave_today"`)
		assert.Contains(t, req.Messages[1].Content, "Binu Thomas")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": reply}},
			},
		})
	}
}

func TestGenerateUsesRemoteAnswer(t *testing.T) {
	srv := httptest.NewServer(completionsHandler(t, "Two employees are on leave today."))
	defer srv.Close()

	g := New(remoteConfig(srv.URL), logger.NewNoOpLogger())
	answer, strategy := g.Generate(context.Background(), "who is on leave today", leaveSnapshot())

	assert.Equal(t, "Two employees are on leave today.", answer)
	assert.Equal(t, "remote", strategy)
}

func TestGenerateFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := New(remoteConfig(srv.URL), logger.NewNoOpLogger())
	answer, strategy := g.Generate(context.Background(), "who is on leave today", leaveSnapshot())
	assert.Equal(t, "local", strategy)

	local, err := NewLocalGenerator().Generate(context.Background(), "who is on leave today", leaveSnapshot())
	require.NoError(t, err)
	assert.Equal(t, local, answer)
	assert.Contains(t, answer, "**2 employee(s) on leave today**")
}

func TestGenerateFallsBackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := remoteConfig(srv.URL)
	cfg.Timeout = 50

	g := New(cfg, logger.NewNoOpLogger())
	answer, strategy := g.Generate(context.Background(), "who is on leave today", leaveSnapshot())

	assert.Equal(t, "local", strategy)
	assert.Contains(t, answer, "Binu Thomas")
}

func TestGenerateWithoutKeySkipsRemote(t *testing.T) {
	cfg := remoteConfig("http://127.0.0.1:1")
	cfg.APIKey = ""

	g := New(cfg, logger.NewNoOpLogger())
	answer, strategy := g.Generate(context.Background(), "who is on leave today", leaveSnapshot())

	// No network call is attempted; the local answer comes back directly.
	assert.Equal(t, "local", strategy)
	assert.Contains(t, answer, "**Binu Thomas** (Cardiology) - Sick Leave")
}

func TestGenerateDeterministicUnderSameInput(t *testing.T) {
	cfg := remoteConfig("http://127.0.0.1:1")
	cfg.Timeout = 100

	g := New(cfg, logger.NewNoOpLogger())
	first, _ := g.Generate(context.Background(), "who is on leave today", leaveSnapshot())
	second, _ := g.Generate(context.Background(), "who is on leave today", leaveSnapshot())

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestLocalRendererCoversEveryVariant(t *testing.T) {
	g := NewLocalGenerator()

	snapshots := []contexts.Context{
		leaveSnapshot(),
		&contexts.LeaveToday{Base: contexts.Base{Type: contexts.TypeLeaveToday}, Date: "2025-03-14"},
		&contexts.AbsentToday{Base: contexts.Base{Type: contexts.TypeAbsentToday}, Date: "2025-03-14", MarkedAbsent: 1, AbsentEmployees: []contexts.AbsentEmployee{{EmployeeName: "Binu Thomas", Department: "Cardiology"}}},
		&contexts.AttendanceSummary{Base: contexts.Base{Type: contexts.TypeAttendanceSummary}, Date: "2025-03-14", TotalActiveEmployees: 4},
		&contexts.DepartmentAttendance{Base: contexts.Base{Type: contexts.TypeDepartmentAttendance}, Department: "Cardiology", Date: "2025-03-14"},
		&contexts.AllDepartmentsAttendance{Base: contexts.Base{Type: contexts.TypeAllDepartmentsAttendance}, Date: "2025-03-14", Departments: []contexts.DepartmentDayStats{{Department: "Cardiology"}}},
		&contexts.EmployeeCount{Base: contexts.Base{Type: contexts.TypeEmployeeCount}, TotalEmployees: 5},
		&contexts.DepartmentInfo{Base: contexts.Base{Type: contexts.TypeDepartmentInfo}, TotalDepartments: 1, Departments: []contexts.DepartmentDetail{{Name: "Cardiology", Code: "CARD", Head: "Not Assigned"}}},
		&contexts.JobApplications{Base: contexts.Base{Type: contexts.TypeJobApplications}, TotalApplications: 2, ByStatus: []contexts.StatusCount{{Status: "under_review", Count: 2}}},
		&contexts.OpenPositions{Base: contexts.Base{Type: contexts.TypeOpenPositions}, TotalOpenJobs: 1, Jobs: []contexts.OpenJob{{Title: "ICU Nurse", Department: "Cardiology"}}},
		&contexts.LeaveRequests{Base: contexts.Base{Type: contexts.TypeLeaveRequests}, TotalPending: 1, PendingRequests: []contexts.PendingLeave{{Employee: "Chitra Nair", Department: "Radiology", LeaveType: "Earned Leave", StartDate: "2025-03-19", EndDate: "2025-03-21", Days: 3}}},
		&contexts.EmployeesByDepartment{Base: contexts.Base{Type: contexts.TypeEmployeesByDepartment}, Department: "Radiology", TotalEmployees: 1, Employees: []contexts.DepartmentEmployee{{Name: "Chitra Nair"}}},
		&contexts.EmployeesByDepartment{Base: contexts.Base{Type: contexts.TypeEmployeesByDepartment}, Error: "Department not found in query", AvailableDepartments: []string{"Cardiology"}},
		&contexts.NursingStaff{Base: contexts.Base{Type: contexts.TypeNursingStaff}, TotalNurses: 2},
		&contexts.MedicalStaff{Base: contexts.Base{Type: contexts.TypeMedicalStaff}, TotalDoctors: 1, Doctors: []contexts.DoctorMember{{Name: "Asha Rao", Department: "Cardiology", Designation: "Cardiologist"}}},
		&contexts.GeneralSummary{Base: contexts.Base{Type: contexts.TypeGeneralSummary}, Date: "2025-03-14"},
	}

	for _, snapshot := range snapshots {
		answer, err := g.Generate(context.Background(), "query", snapshot)
		require.NoError(t, err, snapshot.ContextType())
		assert.NotEmpty(t, strings.TrimSpace(answer), snapshot.ContextType())
	}
}

func TestLocalRendererStatusLabels(t *testing.T) {
	g := NewLocalGenerator()
	answer, err := g.Generate(context.Background(), "applications", &contexts.JobApplications{
		Base:              contexts.Base{Type: contexts.TypeJobApplications},
		TotalApplications: 3,
		ByStatus:          []contexts.StatusCount{{Status: "under_review", Count: 3}},
	})
	require.NoError(t, err)
	assert.Contains(t, answer, "Under Review: 3")
}

func TestLocalRendererListCap(t *testing.T) {
	snapshot := leaveSnapshot()
	for i := 0; i < 15; i++ {
		snapshot.Employees = append(snapshot.Employees, contexts.LeaveEmployee{
			EmployeeName: "Extra Person", Department: "Radiology", LeaveType: "Casual Leave",
		})
	}
	snapshot.TotalOnLeave = len(snapshot.Employees)

	answer, err := NewLocalGenerator().Generate(context.Background(), "leave", snapshot)
	require.NoError(t, err)

	assert.Contains(t, answer, "**17 employee(s) on leave today**")
	assert.Equal(t, listCap, strings.Count(answer, "\n- **"))
}

func TestLocalRendererNotFoundListsAlternatives(t *testing.T) {
	answer, err := NewLocalGenerator().Generate(context.Background(), "employees in oncology", &contexts.EmployeesByDepartment{
		Base:                 contexts.Base{Type: contexts.TypeEmployeesByDepartment},
		Error:                "Department not found in query",
		AvailableDepartments: []string{"Cardiology", "Radiology"},
	})
	require.NoError(t, err)
	assert.Contains(t, answer, "Cardiology")
	assert.Contains(t, answer, "Radiology")
	assert.Contains(t, answer, "couldn't match a department")
}
