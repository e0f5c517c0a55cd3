// internal/assistant/contexts/contexts.go

// Package contexts defines the typed snapshots the retriever hands to the
// response generator. Each variant is a fixed-shape struct discriminated by
// its "type" field; the JSON keys are the wire contract embedded verbatim in
// the remote generation prompt.
package contexts

import "hr-assistant/internal/models"

// Context type discriminators.
const (
	TypeLeaveToday               = "leave_today"
	TypeAbsentToday              = "absent_today"
	TypeAttendanceSummary        = "attendance_summary"
	TypeDepartmentAttendance     = "department_attendance"
	TypeAllDepartmentsAttendance = "all_departments_attendance"
	TypeEmployeeCount            = "employee_count"
	TypeDepartmentInfo           = "department_info"
	TypeJobApplications          = "job_applications"
	TypeOpenPositions            = "open_positions"
	TypeLeaveRequests            = "leave_requests"
	TypeEmployeesByDepartment    = "employees_by_department"
	TypeNursingStaff             = "nursing_staff"
	TypeMedicalStaff             = "medical_staff"
	TypeGeneralSummary           = "general_summary"
)

// Context is the tagged union over all snapshot variants.
type Context interface {
	ContextType() string
}

// Base carries the discriminator shared by all variants.
type Base struct {
	Type string `json:"type"`
}

func (b Base) ContextType() string { return b.Type }

// --- leave_today ---

type LeaveEmployee struct {
	EmployeeName string `json:"employee_name"`
	EmployeeID   string `json:"employee_id"`
	Department   string `json:"department"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type LeaveToday struct {
	Base
	Date         string          `json:"date"`
	TotalOnLeave int             `json:"total_on_leave"`
	Employees    []LeaveEmployee `json:"employees"`
}

// --- absent_today ---

type AbsentEmployee struct {
	EmployeeName string `json:"employee_name"`
	EmployeeID   string `json:"employee_id"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
}

type AbsentToday struct {
	Base
	Date                   string           `json:"date"`
	MarkedAbsent           int              `json:"marked_absent"`
	AbsentEmployees        []AbsentEmployee `json:"absent_employees"`
	NoAttendanceRecord     int              `json:"no_attendance_record"`
	EmployeesWithoutRecord []AbsentEmployee `json:"employees_without_record"`
}

// --- attendance_summary ---

type AttendanceSummary struct {
	Base
	Date                  string `json:"date"`
	TotalActiveEmployees  int    `json:"total_active_employees"`
	TotalAttendanceMarked int    `json:"total_attendance_marked"`
	Present               int    `json:"present"`
	Absent                int    `json:"absent"`
	Late                  int    `json:"late"`
	HalfDay               int    `json:"half_day"`
	OnLeave               int    `json:"on_leave"`
	NotMarked             int    `json:"not_marked"`
}

// --- department_attendance / all_departments_attendance ---

type DepartmentAttendance struct {
	Base
	Department string `json:"department"`
	Date       string `json:"date"`
	TotalStaff int    `json:"total_staff"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Late       int    `json:"late"`
	OnLeave    int    `json:"on_leave"`
}

type DepartmentDayStats struct {
	Department string `json:"department"`
	TotalStaff int    `json:"total_staff"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
}

type AllDepartmentsAttendance struct {
	Base
	Date        string               `json:"date"`
	Departments []DepartmentDayStats `json:"departments"`
}

// --- employee_count ---

type EmployeeCount struct {
	Base
	TotalEmployees  int                      `json:"total_employees"`
	ActiveEmployees int                      `json:"active_employees"`
	OnLeave         int                      `json:"on_leave"`
	ByCategory      []models.CategoryCount   `json:"by_category"`
	ByDepartment    []models.DepartmentCount `json:"by_department"`
}

// --- department_info ---

type DepartmentDetail struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	Location   string `json:"location"`
	Head       string `json:"head"`
	StaffCount int    `json:"staff_count"`
	TotalBeds  int    `json:"total_beds"`
}

type DepartmentInfo struct {
	Base
	TotalDepartments int                `json:"total_departments"`
	Departments      []DepartmentDetail `json:"departments"`
}

// --- job_applications ---

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RecentApplication struct {
	Applicant   string `json:"applicant"`
	Job         string `json:"job"`
	Status      string `json:"status"`
	AppliedDate string `json:"applied_date"`
}

type JobApplications struct {
	Base
	TotalApplications  int                 `json:"total_applications"`
	ByStatus           []StatusCount       `json:"by_status"`
	RecentApplications []RecentApplication `json:"recent_applications"`
}

// --- open_positions ---

type OpenJob struct {
	Title        string `json:"title"`
	Department   string `json:"department"`
	Vacancies    int    `json:"vacancies"`
	Applications int    `json:"applications"`
	PostedDate   string `json:"posted_date"`
}

type OpenPositions struct {
	Base
	TotalOpenJobs int       `json:"total_open_jobs"`
	Jobs          []OpenJob `json:"jobs"`
}

// --- leave_requests ---

type PendingLeave struct {
	Employee   string `json:"employee"`
	Department string `json:"department"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       int    `json:"days"`
}

type LeaveRequests struct {
	Base
	TotalPending    int            `json:"total_pending"`
	PendingRequests []PendingLeave `json:"pending_requests"`
}

// --- employees_by_department ---

type DepartmentEmployee struct {
	Name        string `json:"name"`
	EmployeeID  string `json:"employee_id"`
	Designation string `json:"designation"`
	Category    string `json:"category"`
}

// EmployeesByDepartment doubles as the not-found payload: when no active
// department matches the query, Error carries the marker and
// AvailableDepartments lists the valid alternatives.
type EmployeesByDepartment struct {
	Base
	Department           string               `json:"department,omitempty"`
	TotalEmployees       int                  `json:"total_employees"`
	Employees            []DepartmentEmployee `json:"employees,omitempty"`
	Error                string               `json:"error,omitempty"`
	AvailableDepartments []string             `json:"available_departments,omitempty"`
}

// NotFound reports whether this payload carries the not-found marker.
func (e EmployeesByDepartment) NotFound() bool { return e.Error != "" }

// --- nursing_staff / medical_staff ---

type NurseMember struct {
	Name        string `json:"name"`
	EmployeeID  string `json:"employee_id"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Shift       string `json:"shift"`
}

type RosterAttendance struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	OnLeave int `json:"on_leave"`
}

type NursingStaff struct {
	Base
	TotalNurses     int              `json:"total_nurses"`
	Nurses          []NurseMember    `json:"nurses"`
	TodayAttendance RosterAttendance `json:"today_attendance"`
}

type DoctorMember struct {
	Name           string `json:"name"`
	EmployeeID     string `json:"employee_id"`
	Department     string `json:"department"`
	Designation    string `json:"designation"`
	Specialization string `json:"specialization"`
}

type MedicalStaff struct {
	Base
	TotalDoctors int            `json:"total_doctors"`
	Doctors      []DoctorMember `json:"doctors"`
}

// --- general_summary ---

type EmployeeOverview struct {
	Total        int                      `json:"total"`
	Active       int                      `json:"active"`
	OnLeave      int                      `json:"on_leave"`
	ByDepartment []models.DepartmentCount `json:"by_department"`
	ByCategory   []models.CategoryCount   `json:"by_category"`
}

type DepartmentOverview struct {
	Total int                `json:"total"`
	List  []DepartmentDetail `json:"list"`
}

type AttendanceOverview struct {
	Marked  int `json:"marked"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	OnLeave int `json:"on_leave"`
}

type LeaveOverview struct {
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	OnLeaveToday int `json:"on_leave_today"`
}

type RecruitmentOverview struct {
	OpenPositions        int `json:"open_positions"`
	ClosedPositions      int `json:"closed_positions"`
	TotalApplications    int `json:"total_applications"`
	PendingApplications  int `json:"pending_applications"`
	Shortlisted          int `json:"shortlisted"`
	RejectedApplications int `json:"rejected_applications"`
}

type GeneralSummary struct {
	Base
	Date            string              `json:"date"`
	Employees       EmployeeOverview    `json:"employees"`
	Departments     DepartmentOverview  `json:"departments"`
	AttendanceToday AttendanceOverview  `json:"attendance_today"`
	LeaveRequests   LeaveOverview       `json:"leave_requests"`
	Recruitment     RecruitmentOverview `json:"recruitment"`
}
