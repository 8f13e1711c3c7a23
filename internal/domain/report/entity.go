package report

import "time"

// ReportStatus enum
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusApproved  ReportStatus = "approved"
)

// ClassStat holds one class's attendance and score statistics inside a
// monthly report.
type ClassStat struct {
	ClassID         string  `json:"class_id"`
	ClassName       string  `json:"class_name,omitempty"`
	TotalSessions   int     `json:"total_sessions"`
	PresentSessions int     `json:"present_sessions"`
	AttendanceRate  int     `json:"attendance_rate"` // percent, derived
	AverageScore    float64 `json:"average_score"`
}

// Report is a monthly progress report for one student. A student's report
// may arrive split per class; merging collapses the pieces into one record
// per (student, month) view.
//
// Workflow: draft -> submitted -> approved, or submitted -> draft on
// rejection (reason required, submission metadata cleared). Approval
// freezes the stat snapshot; there is no path from approved back to
// submitted; changed stats require a rejection first.
type Report struct {
	ID              string
	StudentID       string
	PeriodMonth     int
	PeriodYear      int
	ClassIDs        []string
	ClassNames      []string
	Stats           []ClassStat
	Comment         string
	Status          ReportStatus
	SubmittedAt     *time.Time
	SubmittedBy     *string
	ApprovedAt      *time.Time
	ApprovedBy      *string
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	StudentName *string
}
