// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"time"

	"hr-assistant/internal/models"
)

// MemoryStore is a fixture-backed Store used by tests and local development.
// Aggregations are computed from the raw slices with the same semantics as
// the SQL implementation.
type MemoryStore struct {
	Departments  []MemoryDepartment
	EmployeeRows []MemoryEmployee
	Attendance   []MemoryAttendance
	Leaves       []MemoryLeave
	Jobs         []MemoryJob
	Applications []MemoryApplication
}

type MemoryDepartment struct {
	models.Department
}

type MemoryEmployee struct {
	models.Employee
	DepartmentID int64
}

type MemoryAttendance struct {
	models.AttendanceEntry
	DepartmentID int64
}

type MemoryLeave struct {
	models.LeaveEntry
	EmployeeID int64
	CreatedAt  time.Time
}

type MemoryJob struct {
	models.JobOpening
	ID     int64
	Status string
}

type MemoryApplication struct {
	models.ApplicationEntry
	JobID int64
}

var _ Store = (*MemoryStore)(nil)

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (m *MemoryStore) ActiveDepartments(_ context.Context) ([]models.Department, error) {
	var departments []models.Department
	for _, d := range m.Departments {
		if !d.IsActive {
			continue
		}
		dept := d.Department
		dept.StaffCount = 0
		for _, e := range m.EmployeeRows {
			if e.DepartmentID == d.ID && e.Status == models.EmployeeActive {
				dept.StaffCount++
			}
		}
		departments = append(departments, dept)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	return departments, nil
}

func (m *MemoryStore) Employees(_ context.Context, filter EmployeeFilter) ([]models.Employee, error) {
	var employees []models.Employee
	for _, e := range m.EmployeeRows {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.DepartmentID != 0 && e.DepartmentID != filter.DepartmentID {
			continue
		}
		employees = append(employees, e.Employee)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	if filter.Limit > 0 && len(employees) > filter.Limit {
		employees = employees[:filter.Limit]
	}
	return employees, nil
}

func (m *MemoryStore) CountEmployees(_ context.Context, status string) (int, error) {
	count := 0
	for _, e := range m.EmployeeRows {
		if status == "" || e.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) ActiveCountByCategory(_ context.Context) ([]models.CategoryCount, error) {
	byCategory := make(map[string]int)
	for _, e := range m.EmployeeRows {
		if e.Status == models.EmployeeActive {
			byCategory[e.Category]++
		}
	}
	var counts []models.CategoryCount
	for category, count := range byCategory {
		counts = append(counts, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Category < counts[j].Category })
	return counts, nil
}

func (m *MemoryStore) ActiveCountByDepartment(_ context.Context, limit int) ([]models.DepartmentCount, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	byDepartment := make(map[string]int)
	for _, e := range m.EmployeeRows {
		if e.Status != models.EmployeeActive {
			continue
		}
		name := e.Department
		if name == "" {
			name = "N/A"
		}
		byDepartment[name]++
	}
	var counts []models.DepartmentCount
	for department, count := range byDepartment {
		counts = append(counts, models.DepartmentCount{Department: department, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Department < counts[j].Department
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}

func (m *MemoryStore) AttendanceForDate(_ context.Context, date time.Time, status string) ([]models.AttendanceEntry, error) {
	var entries []models.AttendanceEntry
	for _, a := range m.Attendance {
		if !sameDay(a.Date, date) {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		entries = append(entries, a.AttendanceEntry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EmployeeName < entries[j].EmployeeName })
	return entries, nil
}

func (m *MemoryStore) AttendanceStatusCounts(_ context.Context, filter AttendanceFilter) (map[string]int, error) {
	var idSet map[int64]bool
	if filter.EmployeeIDs != nil {
		idSet = make(map[int64]bool, len(filter.EmployeeIDs))
		for _, id := range filter.EmployeeIDs {
			idSet[id] = true
		}
	}
	counts := make(map[string]int)
	for _, a := range m.Attendance {
		if !sameDay(a.Date, filter.Date) {
			continue
		}
		if filter.DepartmentID != 0 && a.DepartmentID != filter.DepartmentID {
			continue
		}
		if idSet != nil && !idSet[a.EmployeeID] {
			continue
		}
		counts[a.Status]++
	}
	return counts, nil
}

func (m *MemoryStore) EmployeeIDsWithAttendance(_ context.Context, date time.Time) ([]int64, error) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, a := range m.Attendance {
		if sameDay(a.Date, date) && !seen[a.EmployeeID] {
			seen[a.EmployeeID] = true
			ids = append(ids, a.EmployeeID)
		}
	}
	return ids, nil
}

func (m *MemoryStore) ApprovedLeavesSpanning(_ context.Context, date time.Time) ([]models.LeaveEntry, error) {
	var leaves []models.LeaveEntry
	for _, l := range m.Leaves {
		if l.Status == models.LeaveApproved && spans(l.StartDate, l.EndDate, date) {
			leaves = append(leaves, l.LeaveEntry)
		}
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].EmployeeName < leaves[j].EmployeeName })
	return leaves, nil
}

func (m *MemoryStore) CountApprovedLeavesSpanning(_ context.Context, date time.Time) (int, error) {
	count := 0
	for _, l := range m.Leaves {
		if l.Status == models.LeaveApproved && spans(l.StartDate, l.EndDate, date) {
			count++
		}
	}
	return count, nil
}

func spans(start, end, date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	return !start.Truncate(24*time.Hour).After(day) && !end.Truncate(24*time.Hour).Before(day)
}

func (m *MemoryStore) PendingLeaveRequests(_ context.Context, limit int) ([]models.LeaveEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	var pending []MemoryLeave
	for _, l := range m.Leaves {
		if l.Status == models.LeavePending {
			pending = append(pending, l)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.After(pending[j].CreatedAt) })
	if len(pending) > limit {
		pending = pending[:limit]
	}
	leaves := make([]models.LeaveEntry, 0, len(pending))
	for _, l := range pending {
		leaves = append(leaves, l.LeaveEntry)
	}
	return leaves, nil
}

func (m *MemoryStore) CountLeaveRequestsByStatus(_ context.Context, status string) (int, error) {
	count := 0
	for _, l := range m.Leaves {
		if l.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) OpenJobs(_ context.Context) ([]models.JobOpening, error) {
	var jobs []models.JobOpening
	for _, j := range m.Jobs {
		if j.Status != models.JobOpen {
			continue
		}
		job := j.JobOpening
		job.ApplicationCount = 0
		for _, a := range m.Applications {
			if a.JobID == j.ID {
				job.ApplicationCount++
			}
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].PostedDate.After(jobs[j].PostedDate) })
	return jobs, nil
}

func (m *MemoryStore) CountJobsByStatus(_ context.Context, status string) (int, error) {
	count := 0
	for _, j := range m.Jobs {
		if j.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CountApplications(_ context.Context, status string) (int, error) {
	count := 0
	for _, a := range m.Applications {
		if status == "" || a.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) ApplicationStatusCounts(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range m.Applications {
		counts[a.Status]++
	}
	return counts, nil
}

func (m *MemoryStore) RecentApplications(_ context.Context, limit int) ([]models.ApplicationEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	apps := make([]models.ApplicationEntry, 0, len(m.Applications))
	for _, a := range m.Applications {
		apps = append(apps, a.ApplicationEntry)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].AppliedDate.After(apps[j].AppliedDate) })
	if len(apps) > limit {
		apps = apps[:limit]
	}
	return apps, nil
}
