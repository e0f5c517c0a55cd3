// internal/assistant/retrieve/retriever.go
package retrieve

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hr-assistant/internal/assistant/contexts"
	"hr-assistant/internal/assistant/intent"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
	"hr-assistant/internal/store"
)

const (
	// rosterCap bounds nurse/doctor rosters and the missing-attendance list.
	rosterCap = 20
	// recentCap bounds "most recent" listings.
	recentCap = 10

	departmentNotFound = "Department not found in query"
	placeholderNA      = "N/A"
	placeholderNoHead  = "Not Assigned"
)

const dateLayout = "2006-01-02"

// Retriever builds one bounded context snapshot per intent. The clock is
// sampled once per Retrieve call, so every store read for one query observes
// the same reference date.
type Retriever struct {
	store  store.Store
	now    func() time.Time
	logger logger.Logger
}

func New(s store.Store, now func() time.Time, log logger.Logger) *Retriever {
	return &Retriever{
		store:  s,
		now:    now,
		logger: log.With(map[string]interface{}{"component": "retriever"}),
	}
}

// Retrieve dispatches to the per-intent routine. Business "not found"
// conditions come back as data inside the context; an error here always
// means the record store itself failed.
func (r *Retriever) Retrieve(ctx context.Context, label intent.Intent, rawQuery string) (contexts.Context, error) {
	today := r.now()
	switch label {
	case intent.LeaveToday:
		return r.leaveToday(ctx, today)
	case intent.AbsentToday:
		return r.absentToday(ctx, today)
	case intent.AttendanceSummary:
		return r.attendanceSummary(ctx, today)
	case intent.DepartmentAttendance:
		return r.departmentAttendance(ctx, today, rawQuery)
	case intent.EmployeeCount:
		return r.employeeCount(ctx)
	case intent.DepartmentInfo:
		return r.departmentInfo(ctx)
	case intent.JobApplications:
		return r.jobApplications(ctx)
	case intent.OpenPositions:
		return r.openPositions(ctx)
	case intent.LeaveRequests:
		return r.leaveRequests(ctx)
	case intent.EmployeeByDepartment:
		return r.employeesByDepartment(ctx, rawQuery)
	case intent.Nurses:
		return r.nursingStaff(ctx, today)
	case intent.Doctors:
		return r.medicalStaff(ctx)
	default:
		return r.generalSummary(ctx, today)
	}
}

func orNA(s string) string {
	if s == "" {
		return placeholderNA
	}
	return s
}

// findDepartment scans active departments in listing order (name ascending)
// and returns the first whose name or code appears as a case-insensitive
// substring of the query. A short code can shadow another department whose
// name contains it; the first match wins. This mirrors the legacy lookup and
// is kept for compatibility even though it is likely unintended.
func findDepartment(departments []models.Department, query string) (models.Department, bool) {
	q := strings.ToLower(query)
	for _, d := range departments {
		if strings.Contains(q, strings.ToLower(d.Name)) || strings.Contains(q, strings.ToLower(d.Code)) {
			return d, true
		}
	}
	return models.Department{}, false
}

func (r *Retriever) leaveToday(ctx context.Context, today time.Time) (contexts.Context, error) {
	leaves, err := r.store.ApprovedLeavesSpanning(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("leave today: %w", err)
	}

	employees := make([]contexts.LeaveEmployee, 0, len(leaves))
	for _, l := range leaves {
		employees = append(employees, contexts.LeaveEmployee{
			EmployeeName: l.EmployeeName,
			EmployeeID:   l.EmployeeCode,
			Department:   orNA(l.Department),
			LeaveType:    models.LeaveTypeLabel(l.LeaveType),
			StartDate:    l.StartDate.Format(dateLayout),
			EndDate:      l.EndDate.Format(dateLayout),
		})
	}

	return &contexts.LeaveToday{
		Base:         contexts.Base{Type: contexts.TypeLeaveToday},
		Date:         today.Format(dateLayout),
		TotalOnLeave: len(employees),
		Employees:    employees,
	}, nil
}

func (r *Retriever) absentToday(ctx context.Context, today time.Time) (contexts.Context, error) {
	absent, err := r.store.AttendanceForDate(ctx, today, models.AttendanceAbsent)
	if err != nil {
		return nil, fmt.Errorf("absent today: %w", err)
	}

	absentList := make([]contexts.AbsentEmployee, 0, len(absent))
	for _, a := range absent {
		absentList = append(absentList, contexts.AbsentEmployee{
			EmployeeName: a.EmployeeName,
			EmployeeID:   a.EmployeeCode,
			Department:   orNA(a.Department),
			Designation:  a.Designation,
		})
	}

	marked, err := r.store.EmployeeIDsWithAttendance(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("absent today: %w", err)
	}
	markedSet := make(map[int64]bool, len(marked))
	for _, id := range marked {
		markedSet[id] = true
	}

	active, err := r.store.Employees(ctx, store.EmployeeFilter{Status: models.EmployeeActive})
	if err != nil {
		return nil, fmt.Errorf("absent today: %w", err)
	}

	// Employees with no attendance row are only potentially absent; the
	// list is capped to keep the payload bounded.
	var noRecord []contexts.AbsentEmployee
	for _, e := range active {
		if markedSet[e.ID] {
			continue
		}
		noRecord = append(noRecord, contexts.AbsentEmployee{
			EmployeeName: e.Name,
			EmployeeID:   e.EmployeeID,
			Department:   orNA(e.Department),
			Designation:  e.Designation,
		})
		if len(noRecord) == rosterCap {
			break
		}
	}

	return &contexts.AbsentToday{
		Base:                   contexts.Base{Type: contexts.TypeAbsentToday},
		Date:                   today.Format(dateLayout),
		MarkedAbsent:           len(absentList),
		AbsentEmployees:        absentList,
		NoAttendanceRecord:     len(noRecord),
		EmployeesWithoutRecord: noRecord,
	}, nil
}

func (r *Retriever) attendanceSummary(ctx context.Context, today time.Time) (contexts.Context, error) {
	counts, err := r.store.AttendanceStatusCounts(ctx, store.AttendanceFilter{Date: today})
	if err != nil {
		return nil, fmt.Errorf("attendance summary: %w", err)
	}

	totalActive, err := r.store.CountEmployees(ctx, models.EmployeeActive)
	if err != nil {
		return nil, fmt.Errorf("attendance summary: %w", err)
	}

	totalMarked := 0
	for _, c := range counts {
		totalMarked += c
	}

	return &contexts.AttendanceSummary{
		Base:                  contexts.Base{Type: contexts.TypeAttendanceSummary},
		Date:                  today.Format(dateLayout),
		TotalActiveEmployees:  totalActive,
		TotalAttendanceMarked: totalMarked,
		Present:               counts[models.AttendancePresent],
		Absent:                counts[models.AttendanceAbsent],
		Late:                  counts[models.AttendanceLate],
		HalfDay:               counts[models.AttendanceHalfDay],
		OnLeave:               counts[models.AttendanceOnLeave],
		NotMarked:             totalActive - totalMarked,
	}, nil
}

func (r *Retriever) departmentAttendance(ctx context.Context, today time.Time, rawQuery string) (contexts.Context, error) {
	departments, err := r.store.ActiveDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("department attendance: %w", err)
	}

	if dept, ok := findDepartment(departments, rawQuery); ok {
		counts, err := r.store.AttendanceStatusCounts(ctx, store.AttendanceFilter{
			Date:         today,
			DepartmentID: dept.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("department attendance: %w", err)
		}
		return &contexts.DepartmentAttendance{
			Base:       contexts.Base{Type: contexts.TypeDepartmentAttendance},
			Department: dept.Name,
			Date:       today.Format(dateLayout),
			TotalStaff: dept.StaffCount,
			Present:    counts[models.AttendancePresent],
			Absent:     counts[models.AttendanceAbsent],
			Late:       counts[models.AttendanceLate],
			OnLeave:    counts[models.AttendanceOnLeave],
		}, nil
	}

	// No department matched; fall back to the all-departments aggregate.
	stats := make([]contexts.DepartmentDayStats, 0, len(departments))
	for _, dept := range departments {
		counts, err := r.store.AttendanceStatusCounts(ctx, store.AttendanceFilter{
			Date:         today,
			DepartmentID: dept.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("department attendance: %w", err)
		}
		stats = append(stats, contexts.DepartmentDayStats{
			Department: dept.Name,
			TotalStaff: dept.StaffCount,
			Present:    counts[models.AttendancePresent],
			Absent:     counts[models.AttendanceAbsent],
		})
	}

	return &contexts.AllDepartmentsAttendance{
		Base:        contexts.Base{Type: contexts.TypeAllDepartmentsAttendance},
		Date:        today.Format(dateLayout),
		Departments: stats,
	}, nil
}

func (r *Retriever) employeeCount(ctx context.Context) (contexts.Context, error) {
	total, err := r.store.CountEmployees(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("employee count: %w", err)
	}
	active, err := r.store.CountEmployees(ctx, models.EmployeeActive)
	if err != nil {
		return nil, fmt.Errorf("employee count: %w", err)
	}
	onLeave, err := r.store.CountEmployees(ctx, models.EmployeeOnLeave)
	if err != nil {
		return nil, fmt.Errorf("employee count: %w", err)
	}
	byCategory, err := r.store.ActiveCountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("employee count: %w", err)
	}
	byDepartment, err := r.store.ActiveCountByDepartment(ctx, recentCap)
	if err != nil {
		return nil, fmt.Errorf("employee count: %w", err)
	}

	return &contexts.EmployeeCount{
		Base:            contexts.Base{Type: contexts.TypeEmployeeCount},
		TotalEmployees:  total,
		ActiveEmployees: active,
		OnLeave:         onLeave,
		ByCategory:      byCategory,
		ByDepartment:    byDepartment,
	}, nil
}

func (r *Retriever) departmentInfo(ctx context.Context) (contexts.Context, error) {
	departments, err := r.store.ActiveDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("department info: %w", err)
	}

	return &contexts.DepartmentInfo{
		Base:             contexts.Base{Type: contexts.TypeDepartmentInfo},
		TotalDepartments: len(departments),
		Departments:      departmentDetails(departments),
	}, nil
}

func departmentDetails(departments []models.Department) []contexts.DepartmentDetail {
	details := make([]contexts.DepartmentDetail, 0, len(departments))
	for _, d := range departments {
		head := d.HeadName
		if head == "" {
			head = placeholderNoHead
		}
		details = append(details, contexts.DepartmentDetail{
			Name:       d.Name,
			Code:       d.Code,
			Location:   models.LocationLabel(d.Location),
			Head:       head,
			StaffCount: d.StaffCount,
			TotalBeds:  d.TotalBeds,
		})
	}
	return details
}

func (r *Retriever) jobApplications(ctx context.Context) (contexts.Context, error) {
	total, err := r.store.CountApplications(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("job applications: %w", err)
	}
	statusCounts, err := r.store.ApplicationStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("job applications: %w", err)
	}
	recent, err := r.store.RecentApplications(ctx, recentCap)
	if err != nil {
		return nil, fmt.Errorf("job applications: %w", err)
	}

	byStatus := make([]contexts.StatusCount, 0, len(statusCounts))
	for status, count := range statusCounts {
		byStatus = append(byStatus, contexts.StatusCount{Status: status, Count: count})
	}
	sort.Slice(byStatus, func(i, j int) bool { return byStatus[i].Status < byStatus[j].Status })

	recentList := make([]contexts.RecentApplication, 0, len(recent))
	for _, a := range recent {
		recentList = append(recentList, contexts.RecentApplication{
			Applicant:   a.Applicant,
			Job:         a.JobTitle,
			Status:      models.StatusLabel(a.Status),
			AppliedDate: a.AppliedDate.Format(dateLayout),
		})
	}

	return &contexts.JobApplications{
		Base:               contexts.Base{Type: contexts.TypeJobApplications},
		TotalApplications:  total,
		ByStatus:           byStatus,
		RecentApplications: recentList,
	}, nil
}

func (r *Retriever) openPositions(ctx context.Context) (contexts.Context, error) {
	jobs, err := r.store.OpenJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("open positions: %w", err)
	}

	jobList := make([]contexts.OpenJob, 0, len(jobs))
	for _, j := range jobs {
		jobList = append(jobList, contexts.OpenJob{
			Title:        j.Title,
			Department:   orNA(j.Department),
			Vacancies:    j.Vacancies,
			Applications: j.ApplicationCount,
			PostedDate:   j.PostedDate.Format(dateLayout),
		})
	}

	return &contexts.OpenPositions{
		Base:          contexts.Base{Type: contexts.TypeOpenPositions},
		TotalOpenJobs: len(jobList),
		Jobs:          jobList,
	}, nil
}

func (r *Retriever) leaveRequests(ctx context.Context) (contexts.Context, error) {
	pending, err := r.store.CountLeaveRequestsByStatus(ctx, models.LeavePending)
	if err != nil {
		return nil, fmt.Errorf("leave requests: %w", err)
	}
	recent, err := r.store.PendingLeaveRequests(ctx, recentCap)
	if err != nil {
		return nil, fmt.Errorf("leave requests: %w", err)
	}

	requests := make([]contexts.PendingLeave, 0, len(recent))
	for _, l := range recent {
		requests = append(requests, contexts.PendingLeave{
			Employee:   l.EmployeeName,
			Department: orNA(l.Department),
			LeaveType:  models.LeaveTypeLabel(l.LeaveType),
			StartDate:  l.StartDate.Format(dateLayout),
			EndDate:    l.EndDate.Format(dateLayout),
			Days:       l.TotalDays,
		})
	}

	return &contexts.LeaveRequests{
		Base:            contexts.Base{Type: contexts.TypeLeaveRequests},
		TotalPending:    pending,
		PendingRequests: requests,
	}, nil
}

func (r *Retriever) employeesByDepartment(ctx context.Context, rawQuery string) (contexts.Context, error) {
	departments, err := r.store.ActiveDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("employees by department: %w", err)
	}

	dept, ok := findDepartment(departments, rawQuery)
	if !ok {
		// Not-found is data, not an error: the generator turns the marker
		// and the valid alternatives into a helpful message.
		names := make([]string, 0, len(departments))
		for _, d := range departments {
			names = append(names, d.Name)
		}
		return &contexts.EmployeesByDepartment{
			Base:                 contexts.Base{Type: contexts.TypeEmployeesByDepartment},
			Error:                departmentNotFound,
			AvailableDepartments: names,
		}, nil
	}

	employees, err := r.store.Employees(ctx, store.EmployeeFilter{
		Status:       models.EmployeeActive,
		DepartmentID: dept.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("employees by department: %w", err)
	}

	list := make([]contexts.DepartmentEmployee, 0, len(employees))
	for _, e := range employees {
		list = append(list, contexts.DepartmentEmployee{
			Name:        e.Name,
			EmployeeID:  e.EmployeeID,
			Designation: e.Designation,
			Category:    models.CategoryLabel(e.Category),
		})
	}

	return &contexts.EmployeesByDepartment{
		Base:           contexts.Base{Type: contexts.TypeEmployeesByDepartment},
		Department:     dept.Name,
		TotalEmployees: len(list),
		Employees:      list,
	}, nil
}

func (r *Retriever) nursingStaff(ctx context.Context, today time.Time) (contexts.Context, error) {
	nurses, err := r.store.Employees(ctx, store.EmployeeFilter{
		Status:   models.EmployeeActive,
		Category: models.CategoryNursing,
	})
	if err != nil {
		return nil, fmt.Errorf("nursing staff: %w", err)
	}

	roster := make([]contexts.NurseMember, 0, len(nurses))
	ids := make([]int64, 0, len(nurses))
	for _, n := range nurses {
		ids = append(ids, n.ID)
		if len(roster) < rosterCap {
			roster = append(roster, contexts.NurseMember{
				Name:        n.Name,
				EmployeeID:  n.EmployeeID,
				Department:  orNA(n.Department),
				Designation: n.Designation,
				Shift:       models.ShiftLabel(n.Shift),
			})
		}
	}

	// Attendance is counted over the full roster, not the capped listing.
	counts, err := r.store.AttendanceStatusCounts(ctx, store.AttendanceFilter{
		Date:        today,
		EmployeeIDs: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("nursing staff: %w", err)
	}

	return &contexts.NursingStaff{
		Base:        contexts.Base{Type: contexts.TypeNursingStaff},
		TotalNurses: len(nurses),
		Nurses:      roster,
		TodayAttendance: contexts.RosterAttendance{
			Present: counts[models.AttendancePresent],
			Absent:  counts[models.AttendanceAbsent],
			OnLeave: counts[models.AttendanceOnLeave],
		},
	}, nil
}

func (r *Retriever) medicalStaff(ctx context.Context) (contexts.Context, error) {
	doctors, err := r.store.Employees(ctx, store.EmployeeFilter{
		Status:   models.EmployeeActive,
		Category: models.CategoryMedical,
	})
	if err != nil {
		return nil, fmt.Errorf("medical staff: %w", err)
	}

	roster := make([]contexts.DoctorMember, 0, rosterCap)
	for _, d := range doctors {
		if len(roster) == rosterCap {
			break
		}
		roster = append(roster, contexts.DoctorMember{
			Name:           d.Name,
			EmployeeID:     d.EmployeeID,
			Department:     orNA(d.Department),
			Designation:    d.Designation,
			Specialization: d.Specialization,
		})
	}

	return &contexts.MedicalStaff{
		Base:         contexts.Base{Type: contexts.TypeMedicalStaff},
		TotalDoctors: len(doctors),
		Doctors:      roster,
	}, nil
}

func (r *Retriever) generalSummary(ctx context.Context, today time.Time) (contexts.Context, error) {
	departments, err := r.store.ActiveDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}

	total, err := r.store.CountEmployees(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	active, err := r.store.CountEmployees(ctx, models.EmployeeActive)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	onLeave, err := r.store.CountEmployees(ctx, models.EmployeeOnLeave)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	byDepartment, err := r.store.ActiveCountByDepartment(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	byCategory, err := r.store.ActiveCountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}

	attendance, err := r.store.AttendanceStatusCounts(ctx, store.AttendanceFilter{Date: today})
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	marked := 0
	for _, c := range attendance {
		marked += c
	}

	pendingLeaves, err := r.store.CountLeaveRequestsByStatus(ctx, models.LeavePending)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	approvedLeaves, err := r.store.CountLeaveRequestsByStatus(ctx, models.LeaveApproved)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	rejectedLeaves, err := r.store.CountLeaveRequestsByStatus(ctx, models.LeaveRejected)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	onLeaveToday, err := r.store.CountApprovedLeavesSpanning(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}

	openJobs, err := r.store.CountJobsByStatus(ctx, models.JobOpen)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	closedJobs, err := r.store.CountJobsByStatus(ctx, models.JobClosed)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	totalApplications, err := r.store.CountApplications(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	pendingApplications, err := r.store.CountApplications(ctx, models.ApplicationSubmitted)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	shortlisted, err := r.store.CountApplications(ctx, models.ApplicationShortlisted)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}
	rejectedApplications, err := r.store.CountApplications(ctx, models.ApplicationRejected)
	if err != nil {
		return nil, fmt.Errorf("general summary: %w", err)
	}

	return &contexts.GeneralSummary{
		Base: contexts.Base{Type: contexts.TypeGeneralSummary},
		Date: today.Format(dateLayout),
		Employees: contexts.EmployeeOverview{
			Total:        total,
			Active:       active,
			OnLeave:      onLeave,
			ByDepartment: byDepartment,
			ByCategory:   byCategory,
		},
		Departments: contexts.DepartmentOverview{
			Total: len(departments),
			List:  departmentDetails(departments),
		},
		AttendanceToday: contexts.AttendanceOverview{
			Marked:  marked,
			Present: attendance[models.AttendancePresent],
			Absent:  attendance[models.AttendanceAbsent],
			Late:    attendance[models.AttendanceLate],
			OnLeave: attendance[models.AttendanceOnLeave],
		},
		LeaveRequests: contexts.LeaveOverview{
			Pending:      pendingLeaves,
			Approved:     approvedLeaves,
			Rejected:     rejectedLeaves,
			OnLeaveToday: onLeaveToday,
		},
		Recruitment: contexts.RecruitmentOverview{
			OpenPositions:        openJobs,
			ClosedPositions:      closedJobs,
			TotalApplications:    totalApplications,
			PendingApplications:  pendingApplications,
			Shortlisted:          shortlisted,
			RejectedApplications: rejectedApplications,
		},
	}, nil
}
