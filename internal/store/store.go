// internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"

	"hr-assistant/internal/models"
)

var (
	ErrInvalidLimit = errors.New("limit must be positive")
)

// EmployeeFilter narrows employee listings. Zero values mean "no filter".
type EmployeeFilter struct {
	Status       string
	Category     string
	DepartmentID int64
	Limit        int
}

// AttendanceFilter narrows attendance aggregations for one date.
// DepartmentID of zero and a nil EmployeeIDs slice mean "all".
type AttendanceFilter struct {
	Date         time.Time
	DepartmentID int64
	EmployeeIDs  []int64
}

// Store exposes the read queries the assistant needs from the HR record
// store. All methods are read-only and snapshot whatever is committed at
// call time; the retriever is responsible for issuing every call with the
// same reference date.
type Store interface {
	// Departments. ActiveDepartments returns active departments ordered by
	// name ascending, with active staff counts attached; the ordering drives
	// first-match semantics for department lookups.
	ActiveDepartments(ctx context.Context) ([]models.Department, error)

	// Employees. A limit of zero means unlimited; the caller owns any
	// payload cap.
	Employees(ctx context.Context, filter EmployeeFilter) ([]models.Employee, error)
	CountEmployees(ctx context.Context, status string) (int, error)
	ActiveCountByCategory(ctx context.Context) ([]models.CategoryCount, error)
	ActiveCountByDepartment(ctx context.Context, limit int) ([]models.DepartmentCount, error)

	// Attendance.
	AttendanceForDate(ctx context.Context, date time.Time, status string) ([]models.AttendanceEntry, error)
	AttendanceStatusCounts(ctx context.Context, filter AttendanceFilter) (map[string]int, error)
	EmployeeIDsWithAttendance(ctx context.Context, date time.Time) ([]int64, error)

	// Leave requests.
	ApprovedLeavesSpanning(ctx context.Context, date time.Time) ([]models.LeaveEntry, error)
	CountApprovedLeavesSpanning(ctx context.Context, date time.Time) (int, error)
	PendingLeaveRequests(ctx context.Context, limit int) ([]models.LeaveEntry, error)
	CountLeaveRequestsByStatus(ctx context.Context, status string) (int, error)

	// Recruitment.
	OpenJobs(ctx context.Context) ([]models.JobOpening, error)
	CountJobsByStatus(ctx context.Context, status string) (int, error)
	CountApplications(ctx context.Context, status string) (int, error)
	ApplicationStatusCounts(ctx context.Context) (map[string]int, error)
	RecentApplications(ctx context.Context, limit int) ([]models.ApplicationEntry, error)
}
