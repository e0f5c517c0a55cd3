// internal/models/enums.go
package models

import "strings"

// Employee categories
const (
	CategoryMedical      = "medical"
	CategoryNursing      = "nursing"
	CategoryParamedical  = "paramedical"
	CategoryAdminSupport = "admin_support"
)

// Employee statuses
const (
	EmployeeActive     = "active"
	EmployeeOnLeave    = "on_leave"
	EmployeeSuspended  = "suspended"
	EmployeeResigned   = "resigned"
	EmployeeTerminated = "terminated"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceHalfDay = "half_day"
	AttendanceOnLeave = "on_leave"
)

// Leave request statuses
const (
	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

// Job statuses
const (
	JobOpen   = "open"
	JobClosed = "closed"
	JobOnHold = "on_hold"
)

// Application statuses
const (
	ApplicationSubmitted   = "submitted"
	ApplicationUnderReview = "under_review"
	ApplicationShortlisted = "shortlisted"
	ApplicationInterview   = "interview_scheduled"
	ApplicationSelected    = "selected"
	ApplicationRejected    = "rejected"
	ApplicationWithdrawn   = "withdrawn"
)

var categoryLabels = map[string]string{
	CategoryMedical:      "Medical Staff",
	CategoryNursing:      "Nursing Staff",
	CategoryParamedical:  "Paramedical & Technical",
	CategoryAdminSupport: "Admin & Support",
}

var leaveTypeLabels = map[string]string{
	"sick":      "Sick Leave",
	"casual":    "Casual Leave",
	"earned":    "Earned Leave",
	"maternity": "Maternity Leave",
	"paternity": "Paternity Leave",
	"emergency": "Emergency Leave",
}

var shiftLabels = map[string]string{
	"morning":   "Morning (6 AM - 2 PM)",
	"afternoon": "Afternoon (2 PM - 10 PM)",
	"night":     "Night (10 PM - 6 AM)",
	"general":   "General (9 AM - 5 PM)",
	"rotating":  "Rotating Shifts",
}

var locationLabels = map[string]string{
	"main_building":   "Main Building",
	"block_a":         "Block A",
	"block_b":         "Block B",
	"block_c":         "Block C",
	"emergency_wing":  "Emergency Wing",
	"research_center": "Research Center",
}

// CategoryLabel returns the display label for an employee category.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return titleize(category)
}

// LeaveTypeLabel returns the display label for a leave type.
func LeaveTypeLabel(leaveType string) string {
	if label, ok := leaveTypeLabels[leaveType]; ok {
		return label
	}
	return titleize(leaveType)
}

// ShiftLabel returns the display label for an employee shift.
func ShiftLabel(shift string) string {
	if label, ok := shiftLabels[shift]; ok {
		return label
	}
	return titleize(shift)
}

// LocationLabel returns the display label for a department location.
func LocationLabel(location string) string {
	if label, ok := locationLabels[location]; ok {
		return label
	}
	return titleize(location)
}

// StatusLabel turns a snake_case status into a display label, e.g.
// "under_review" -> "Under Review".
func StatusLabel(status string) string {
	return titleize(status)
}

func titleize(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
