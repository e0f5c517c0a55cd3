// internal/models/hr.go
package models

import "time"

// Read models for the HR record store. All structs are flat projections of
// what the assistant snapshots need; relational gaps (an employee without a
// department, a department without a head) surface as empty strings and are
// rendered as placeholders by the retrieval layer.

type Employee struct {
	ID             int64  `json:"id"`
	EmployeeID     string `json:"employeeId"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Category       string `json:"category"`
	Designation    string `json:"designation"`
	Specialization string `json:"specialization"`
	Shift          string `json:"shift"`
	Status         string `json:"status"`
}

type Department struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	Location   string `json:"location"`
	HeadName   string `json:"headName"`
	TotalBeds  int    `json:"totalBeds"`
	StaffCount int    `json:"staffCount"`
	IsActive   bool   `json:"isActive"`
}

type AttendanceEntry struct {
	EmployeeID   int64     `json:"employeeId"`
	EmployeeCode string    `json:"employeeCode"`
	EmployeeName string    `json:"employeeName"`
	Department   string    `json:"department"`
	Designation  string    `json:"designation"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
}

type LeaveEntry struct {
	EmployeeName string    `json:"employeeName"`
	EmployeeCode string    `json:"employeeCode"`
	Department   string    `json:"department"`
	LeaveType    string    `json:"leaveType"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	TotalDays    int       `json:"totalDays"`
	Status       string    `json:"status"`
}

type JobOpening struct {
	Title            string    `json:"title"`
	Department       string    `json:"department"`
	Vacancies        int       `json:"vacancies"`
	ApplicationCount int       `json:"applicationCount"`
	PostedDate       time.Time `json:"postedDate"`
}

type ApplicationEntry struct {
	Applicant   string    `json:"applicant"`
	JobTitle    string    `json:"jobTitle"`
	Status      string    `json:"status"`
	AppliedDate time.Time `json:"appliedDate"`
}

// CategoryCount is an aggregate row for active-employee breakdowns.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DepartmentCount is an aggregate row for per-department breakdowns.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}
