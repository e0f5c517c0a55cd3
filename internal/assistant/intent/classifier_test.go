// internal/assistant/intent/classifier_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		query string
		want  Intent
	}{
		{"who is on leave today?", LeaveToday},
		{"employees on leave today", LeaveToday},
		{"how many people are on leave", LeaveToday},
		{"who is absent today", AbsentToday},
		{"show me the absentees", AbsentToday},
		{"attendance summary please", AttendanceSummary},
		{"how many are present today", AttendanceSummary},
		{"cardiology department attendance", DepartmentAttendance},
		{"how many employees are there", EmployeeCount},
		{"total employees", EmployeeCount},
		{"staff count", EmployeeCount},
		{"list all departments", DepartmentInfo},
		{"which departments do we have", DepartmentInfo},
		{"job applications status", JobApplications},
		{"how many pending applications", JobApplications},
		{"open positions", OpenPositions},
		{"are we hiring", OpenPositions},
		{"pending leave requests", LeaveRequests},
		{"employees in radiology", EmployeeByDepartment},
		{"how many nurses", Nurses},
		{"list the doctors", Doctors},
		{"good morning", General},
		{"", General},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.query))
		})
	}
}

// Several intents share overlapping vocabulary; the earlier table entry must
// win. These queries would also match later rules.
func TestClassifyOrderResolvesOverlap(t *testing.T) {
	cases := []struct {
		query string
		want  Intent
	}{
		// "how many.*leave" (leave_today) fires before "pending.*leave"
		// (leave_requests).
		{"how many pending leave requests", LeaveToday},
		// "attendance.*summary" fires before the department attendance
		// patterns even when a department is named.
		{"attendance summary for cardiology", AttendanceSummary},
		// "(\w+).*attendance" (department_attendance) fires before
		// "nurses".
		{"nurses attendance", DepartmentAttendance},
		// "how many.*absent" (absent_today) fires before employee_count.
		{"how many employees are absent", AbsentToday},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.query))
		})
	}
}

func TestClassifyCaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, AbsentToday, Classify("  WHO IS ABSENT TODAY  "))
	assert.Equal(t, Nurses, Classify("NURSING STAFF"))
}

// Classify must not mutate anything and must give the same label for the
// same input every time.
func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, EmployeeCount, Classify("how many employees are there"))
	}
}
