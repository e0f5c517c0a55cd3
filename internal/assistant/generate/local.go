// internal/assistant/generate/local.go
package generate

import (
	"context"
	"fmt"
	"strings"

	"hr-assistant/internal/assistant/contexts"
)

const genericAnswer = "I've retrieved the relevant data. Please ask a more specific question about employees, attendance, leaves, or recruitment."

// listCap bounds itemized lines in rendered answers; headline totals always
// reflect the full context.
const listCap = 10

// LocalGenerator renders a markdown answer from the context alone. It is
// deterministic, needs no network, and covers every context variant, so the
// strategy chain can always terminate here.
type LocalGenerator struct{}

func NewLocalGenerator() *LocalGenerator { return &LocalGenerator{} }

func (g *LocalGenerator) Name() string { return "local" }

func (g *LocalGenerator) Generate(_ context.Context, _ string, snapshot contexts.Context) (string, error) {
	switch c := snapshot.(type) {
	case *contexts.LeaveToday:
		return renderLeaveToday(c), nil
	case *contexts.AbsentToday:
		return renderAbsentToday(c), nil
	case *contexts.AttendanceSummary:
		return renderAttendanceSummary(c), nil
	case *contexts.DepartmentAttendance:
		return renderDepartmentAttendance(c), nil
	case *contexts.AllDepartmentsAttendance:
		return renderAllDepartmentsAttendance(c), nil
	case *contexts.EmployeeCount:
		return renderEmployeeCount(c), nil
	case *contexts.DepartmentInfo:
		return renderDepartmentInfo(c), nil
	case *contexts.JobApplications:
		return renderJobApplications(c), nil
	case *contexts.OpenPositions:
		return renderOpenPositions(c), nil
	case *contexts.LeaveRequests:
		return renderLeaveRequests(c), nil
	case *contexts.EmployeesByDepartment:
		return renderEmployeesByDepartment(c), nil
	case *contexts.NursingStaff:
		return renderNursingStaff(c), nil
	case *contexts.MedicalStaff:
		return renderMedicalStaff(c), nil
	case *contexts.GeneralSummary:
		return renderGeneralSummary(c), nil
	default:
		return genericAnswer, nil
	}
}

func renderLeaveToday(c *contexts.LeaveToday) string {
	if c.TotalOnLeave == 0 {
		return fmt.Sprintf("No employees are on approved leave today (%s).", c.Date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%d employee(s) on leave today** (%s):\n\n", c.TotalOnLeave, c.Date)
	for i, emp := range c.Employees {
		if i == listCap {
			break
		}
		fmt.Fprintf(&b, "- **%s** (%s) - %s\n", emp.EmployeeName, emp.Department, emp.LeaveType)
	}
	return b.String()
}

func renderAbsentToday(c *contexts.AbsentToday) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Absence Report for %s:**\n\n", c.Date)
	fmt.Fprintf(&b, "- Marked Absent: **%d**\n", c.MarkedAbsent)
	fmt.Fprintf(&b, "- No Attendance Record: **%d**\n\n", c.NoAttendanceRecord)

	if len(c.AbsentEmployees) > 0 {
		b.WriteString("**Absent Employees:**\n")
		for i, emp := range c.AbsentEmployees {
			if i == listCap {
				break
			}
			fmt.Fprintf(&b, "- %s (%s)\n", emp.EmployeeName, emp.Department)
		}
	}
	return b.String()
}

func renderAttendanceSummary(c *contexts.AttendanceSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Attendance Summary for %s:**\n\n", c.Date)
	fmt.Fprintf(&b, "- Total Active Employees: **%d**\n", c.TotalActiveEmployees)
	fmt.Fprintf(&b, "- Present: **%d**\n", c.Present)
	fmt.Fprintf(&b, "- Absent: **%d**\n", c.Absent)
	fmt.Fprintf(&b, "- Late: **%d**\n", c.Late)
	fmt.Fprintf(&b, "- On Leave: **%d**\n", c.OnLeave)
	fmt.Fprintf(&b, "- Not Marked: **%d**\n", c.NotMarked)
	return b.String()
}

func renderDepartmentAttendance(c *contexts.DepartmentAttendance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s Attendance for %s:**\n\n", c.Department, c.Date)
	fmt.Fprintf(&b, "- Total Staff: **%d**\n", c.TotalStaff)
	fmt.Fprintf(&b, "- Present: **%d**\n", c.Present)
	fmt.Fprintf(&b, "- Absent: **%d**\n", c.Absent)
	fmt.Fprintf(&b, "- Late: **%d**\n", c.Late)
	fmt.Fprintf(&b, "- On Leave: **%d**\n", c.OnLeave)
	return b.String()
}

func renderAllDepartmentsAttendance(c *contexts.AllDepartmentsAttendance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Department Attendance for %s:**\n\n", c.Date)
	for _, dept := range c.Departments {
		fmt.Fprintf(&b, "- **%s**: %d present, %d absent of %d staff\n",
			dept.Department, dept.Present, dept.Absent, dept.TotalStaff)
	}
	return b.String()
}

func renderEmployeeCount(c *contexts.EmployeeCount) string {
	var b strings.Builder
	b.WriteString("**Employee Statistics:**\n\n")
	fmt.Fprintf(&b, "- Total Employees: **%d**\n", c.TotalEmployees)
	fmt.Fprintf(&b, "- Active: **%d**\n", c.ActiveEmployees)
	fmt.Fprintf(&b, "- On Leave: **%d**\n\n", c.OnLeave)

	if len(c.ByDepartment) > 0 {
		b.WriteString("**By Department:**\n")
		for i, dept := range c.ByDepartment {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %s: %d\n", dept.Department, dept.Count)
		}
	}
	return b.String()
}

func renderDepartmentInfo(c *contexts.DepartmentInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%d Active Departments:**\n\n", c.TotalDepartments)
	for _, dept := range c.Departments {
		fmt.Fprintf(&b, "- **%s** (%s): %d staff, Head: %s\n",
			dept.Name, dept.Code, dept.StaffCount, dept.Head)
	}
	return b.String()
}

func renderJobApplications(c *contexts.JobApplications) string {
	var b strings.Builder
	b.WriteString("**Job Applications Summary:**\n\n")
	fmt.Fprintf(&b, "- Total Applications: **%d**\n\n", c.TotalApplications)

	if len(c.ByStatus) > 0 {
		b.WriteString("**By Status:**\n")
		for _, status := range c.ByStatus {
			fmt.Fprintf(&b, "- %s: %d\n", titleStatus(status.Status), status.Count)
		}
	}
	return b.String()
}

func titleStatus(status string) string {
	words := strings.Split(strings.ReplaceAll(status, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func renderOpenPositions(c *contexts.OpenPositions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%d Open Positions:**\n\n", c.TotalOpenJobs)
	for _, job := range c.Jobs {
		fmt.Fprintf(&b, "- **%s** (%s): %d vacancies, %d applications\n",
			job.Title, job.Department, job.Vacancies, job.Applications)
	}
	return b.String()
}

func renderLeaveRequests(c *contexts.LeaveRequests) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%d Pending Leave Requests:**\n\n", c.TotalPending)
	for _, req := range c.PendingRequests {
		fmt.Fprintf(&b, "- **%s** (%s): %s from %s to %s (%d days)\n",
			req.Employee, req.Department, req.LeaveType, req.StartDate, req.EndDate, req.Days)
	}
	return b.String()
}

func renderEmployeesByDepartment(c *contexts.EmployeesByDepartment) string {
	if c.NotFound() {
		var b strings.Builder
		b.WriteString("I couldn't match a department in your question. Available departments:\n\n")
		for _, name := range c.AvailableDepartments {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%d employee(s) in %s:**\n\n", c.TotalEmployees, c.Department)
	for i, emp := range c.Employees {
		if i == listCap {
			break
		}
		fmt.Fprintf(&b, "- **%s** (%s) - %s\n", emp.Name, emp.Designation, emp.Category)
	}
	return b.String()
}

func renderNursingStaff(c *contexts.NursingStaff) string {
	var b strings.Builder
	b.WriteString("**Nursing Staff Summary:**\n\n")
	fmt.Fprintf(&b, "- Total Nurses: **%d**\n", c.TotalNurses)
	fmt.Fprintf(&b, "- Present Today: **%d**\n", c.TodayAttendance.Present)
	fmt.Fprintf(&b, "- Absent Today: **%d**\n", c.TodayAttendance.Absent)
	return b.String()
}

func renderMedicalStaff(c *contexts.MedicalStaff) string {
	var b strings.Builder
	b.WriteString("**Medical Staff Summary:**\n\n")
	fmt.Fprintf(&b, "- Total Doctors: **%d**\n\n", c.TotalDoctors)
	for i, doc := range c.Doctors {
		if i == listCap {
			break
		}
		fmt.Fprintf(&b, "- **%s** (%s) - %s\n", doc.Name, doc.Department, doc.Designation)
	}
	return b.String()
}

func renderGeneralSummary(c *contexts.GeneralSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**HR Dashboard Summary (%s):**\n\n", c.Date)

	fmt.Fprintf(&b, "**Departments (%d):**\n", c.Departments.Total)
	for _, dept := range c.Departments.List {
		fmt.Fprintf(&b, "- **%s** (%s): %d staff, Head: %s, Location: %s\n",
			dept.Name, dept.Code, dept.StaffCount, dept.Head, dept.Location)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**Employees:** %d active / %d total\n", c.Employees.Active, c.Employees.Total)
	if len(c.Employees.ByDepartment) > 0 {
		b.WriteString("**By Department:**\n")
		for i, dept := range c.Employees.ByDepartment {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "  - %s: %d\n", dept.Department, dept.Count)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**Today's Attendance:** %d present, %d absent, %d late\n\n",
		c.AttendanceToday.Present, c.AttendanceToday.Absent, c.AttendanceToday.Late)

	fmt.Fprintf(&b, "**Leave:** %d pending requests, %d on leave today\n\n",
		c.LeaveRequests.Pending, c.LeaveRequests.OnLeaveToday)

	fmt.Fprintf(&b, "**Recruitment:** %d open positions, %d pending applications\n",
		c.Recruitment.OpenPositions, c.Recruitment.PendingApplications)

	return b.String()
}
