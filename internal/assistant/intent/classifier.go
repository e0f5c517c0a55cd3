// internal/assistant/intent/classifier.go
package intent

import (
	"regexp"
	"strings"
)

// Intent is the fixed category a query is routed to.
type Intent string

const (
	LeaveToday           Intent = "leave_today"
	AbsentToday          Intent = "absent_today"
	AttendanceSummary    Intent = "attendance_summary"
	DepartmentAttendance Intent = "department_attendance"
	EmployeeCount        Intent = "employee_count"
	DepartmentInfo       Intent = "department_info"
	JobApplications      Intent = "job_applications"
	OpenPositions        Intent = "open_positions"
	LeaveRequests        Intent = "leave_requests"
	EmployeeByDepartment Intent = "employee_by_department"
	Nurses               Intent = "nurses"
	Doctors              Intent = "doctors"
	General              Intent = "general"
)

type rule struct {
	label    Intent
	patterns []*regexp.Regexp
}

// rules is scanned in declaration order and the first matching pattern wins,
// so overlaps between intents are resolved by position in this table. The
// order is part of the classifier's observable contract; do not reorder.
var rules = []rule{
	{LeaveToday, compile(
		`on leave today`, `leave today`, `employees.*leave.*today`,
		`who.*on leave`, `how many.*leave`,
	)},
	{AbsentToday, compile(
		`absent today`, `absentees`, `who.*absent`,
		`how many.*absent`, `missing today`,
	)},
	{AttendanceSummary, compile(
		`attendance.*summary`, `attendance.*report`, `attendance.*status`,
		`present today`, `how many.*present`,
	)},
	{DepartmentAttendance, compile(
		`attendance.*department`, `department.*attendance`,
		`(\w+).*department.*absent`, `absent.*(\w+).*department`,
		`(\w+).*attendance`,
	)},
	{EmployeeCount, compile(
		`how many employees`, `total employees`, `employee count`,
		`number of employees`, `staff count`,
	)},
	{DepartmentInfo, compile(
		`department.*info`, `list.*departments`, `all departments`,
		`department.*details`, `which departments`, `show.*departments`,
		`department.*names`, `departments.*names`, `what.*departments`,
		`tell.*about.*departments`, `department.*list`,
	)},
	{JobApplications, compile(
		`job applications`, `pending applications`, `how many.*applications`,
		`application.*status`, `recruitment.*status`,
	)},
	{OpenPositions, compile(
		`open positions`, `job openings`, `vacancies`,
		`open jobs`, `hiring`,
	)},
	{LeaveRequests, compile(
		`leave requests`, `pending.*leave`, `leave.*pending`,
		`leave.*approval`, `approve.*leave`,
	)},
	{EmployeeByDepartment, compile(
		`employees.*in.*(\w+)`, `(\w+).*employees`,
		`staff.*in.*(\w+)`, `list.*(\w+).*staff`,
	)},
	{Nurses, compile(
		`nurses`, `nursing staff`, `nursing`,
	)},
	{Doctors, compile(
		`doctors`, `medical staff`, `physicians`,
	)},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

// Classify maps a raw query string to an intent label. It is total and
// deterministic: unmatched queries fall through to General.
func Classify(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, r := range rules {
		for _, p := range r.patterns {
			if p.MatchString(q) {
				return r.label
			}
		}
	}
	return General
}
