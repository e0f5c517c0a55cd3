// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hr-assistant/internal/models"
)

// PostgresStore implements Store over the HR database schema.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const employeeNameExpr = "trim(u.first_name || ' ' || u.last_name)"

func (s *PostgresStore) ActiveDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.code, d.location,
		       COALESCE(trim(h.first_name || ' ' || h.last_name), '') AS head_name,
		       d.total_beds,
		       (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id AND e.status = 'active') AS staff_count
		FROM departments d
		LEFT JOIN users h ON h.id = d.head_id
		WHERE d.is_active = TRUE
		ORDER BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("query active departments: %w", err)
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.Location, &d.HeadName, &d.TotalBeds, &d.StaffCount); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		d.IsActive = true
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *PostgresStore) Employees(ctx context.Context, filter EmployeeFilter) ([]models.Employee, error) {
	query := `
		SELECT e.id, e.employee_code, ` + employeeNameExpr + ` AS name,
		       COALESCE(d.name, '') AS department,
		       e.category, e.designation, COALESCE(e.specialization, ''), e.shift, e.status
		FROM employees e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN departments d ON d.id = e.department_id`

	var conditions []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", len(args)))
	}
	if filter.DepartmentID != 0 {
		args = append(args, filter.DepartmentID)
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Department,
			&e.Category, &e.Designation, &e.Specialization, &e.Shift, &e.Status); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *PostgresStore) CountEmployees(ctx context.Context, status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE status = $1`, status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ActiveCountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS count
		FROM employees
		WHERE status = 'active'
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("count employees by category: %w", err)
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (s *PostgresStore) ActiveCountByDepartment(ctx context.Context, limit int) ([]models.DepartmentCount, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	query := `
		SELECT COALESCE(d.name, 'N/A') AS department, COUNT(*) AS count
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.status = 'active'
		GROUP BY d.name
		ORDER BY count DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count employees by department: %w", err)
	}
	defer rows.Close()

	var counts []models.DepartmentCount
	for rows.Next() {
		var c models.DepartmentCount
		if err := rows.Scan(&c.Department, &c.Count); err != nil {
			return nil, fmt.Errorf("scan department count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (s *PostgresStore) AttendanceForDate(ctx context.Context, date time.Time, status string) ([]models.AttendanceEntry, error) {
	query := `
		SELECT a.employee_id, e.employee_code, ` + employeeNameExpr + ` AS name,
		       COALESCE(d.name, '') AS department, e.designation, a.date, a.status
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		LEFT JOIN departments d ON d.id = a.department_id
		WHERE a.date = $1`
	args := []interface{}{date}
	if status != "" {
		query += " AND a.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	var entries []models.AttendanceEntry
	for rows.Next() {
		var a models.AttendanceEntry
		if err := rows.Scan(&a.EmployeeID, &a.EmployeeCode, &a.EmployeeName,
			&a.Department, &a.Designation, &a.Date, &a.Status); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) AttendanceStatusCounts(ctx context.Context, filter AttendanceFilter) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM attendance WHERE date = $1`
	args := []interface{}{filter.Date}
	if filter.DepartmentID != 0 {
		args = append(args, filter.DepartmentID)
		query += fmt.Sprintf(" AND department_id = $%d", len(args))
	}
	if filter.EmployeeIDs != nil {
		if len(filter.EmployeeIDs) == 0 {
			return map[string]int{}, nil
		}
		placeholders := make([]string, len(filter.EmployeeIDs))
		for i, id := range filter.EmployeeIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += " AND employee_id IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " GROUP BY status"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan attendance count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *PostgresStore) EmployeeIDsWithAttendance(ctx context.Context, date time.Time) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT employee_id FROM attendance WHERE date = $1`, date)
	if err != nil {
		return nil, fmt.Errorf("query attendance employee ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const leaveSelect = `
	SELECT ` + employeeNameExpr + ` AS name, e.employee_code,
	       COALESCE(d.name, '') AS department,
	       l.leave_type, l.start_date, l.end_date, l.total_days, l.status
	FROM leave_requests l
	JOIN employees e ON e.id = l.employee_id
	JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id`

func (s *PostgresStore) ApprovedLeavesSpanning(ctx context.Context, date time.Time) ([]models.LeaveEntry, error) {
	rows, err := s.db.QueryContext(ctx, leaveSelect+`
		WHERE l.status = 'approved' AND l.start_date <= $1 AND l.end_date >= $1
		ORDER BY name`, date)
	if err != nil {
		return nil, fmt.Errorf("query approved leaves: %w", err)
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (s *PostgresStore) CountApprovedLeavesSpanning(ctx context.Context, date time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM leave_requests
		WHERE status = 'approved' AND start_date <= $1 AND end_date >= $1`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count approved leaves: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) PendingLeaveRequests(ctx context.Context, limit int) ([]models.LeaveEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	rows, err := s.db.QueryContext(ctx, leaveSelect+`
		WHERE l.status = 'pending'
		ORDER BY l.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending leaves: %w", err)
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func scanLeaves(rows *sql.Rows) ([]models.LeaveEntry, error) {
	var leaves []models.LeaveEntry
	for rows.Next() {
		var l models.LeaveEntry
		if err := rows.Scan(&l.EmployeeName, &l.EmployeeCode, &l.Department,
			&l.LeaveType, &l.StartDate, &l.EndDate, &l.TotalDays, &l.Status); err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (s *PostgresStore) CountLeaveRequestsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count leave requests: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) OpenJobs(ctx context.Context) ([]models.JobOpening, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT j.title, COALESCE(d.name, '') AS department, j.vacancies,
		       (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count,
		       j.posted_date
		FROM jobs j
		LEFT JOIN departments d ON d.id = j.department_id
		WHERE j.status = 'open'
		ORDER BY j.posted_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query open jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.JobOpening
	for rows.Next() {
		var j models.JobOpening
		if err := rows.Scan(&j.Title, &j.Department, &j.Vacancies, &j.ApplicationCount, &j.PostedDate); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) CountJobsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountApplications(ctx context.Context, status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE status = $1`, status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ApplicationStatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan application count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *PostgresStore) RecentApplications(ctx context.Context, limit int) ([]models.ApplicationEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.applicant_name, j.title, a.status, a.applied_date
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		ORDER BY a.applied_date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent applications: %w", err)
	}
	defer rows.Close()

	var apps []models.ApplicationEntry
	for rows.Next() {
		var a models.ApplicationEntry
		if err := rows.Scan(&a.Applicant, &a.JobTitle, &a.Status, &a.AppliedDate); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
