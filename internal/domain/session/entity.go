package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Session is one attendance-taking event for a class on a given date.
// Start/end times are wall-clock strings ("H:MM" or "HH:MM") the way the
// front desk enters them.
type Session struct {
	ID        string
	ClassID   string
	TeacherID *string // substitute teacher for this session only
	Date      time.Time
	StartTime string
	EndTime   string
	Records   []StudentRecord
	Locked    bool // set once a paid invoice snapshots this session
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	ClassName *string
}

// StudentRecord is one student's attendance entry within a session.
type StudentRecord struct {
	StudentID     string           `json:"student_id"`
	Present       bool             `json:"present"`
	Excused       bool             `json:"excused"`
	Late          bool             `json:"late"`
	HomeworkDone  int              `json:"homework_done"` // percent, 0-100
	TestName      *string          `json:"test_name,omitempty"`
	TestScore     *float64         `json:"test_score,omitempty"`
	BonusPoints   int              `json:"bonus_points"`
	Note          *string          `json:"note,omitempty"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

// Billable reports whether the record counts toward tuition.
func (r StudentRecord) Billable() bool {
	return r.Present || r.Excused
}

// RecordFor returns the attendance record for the student, if any.
func (s Session) RecordFor(studentID string) (StudentRecord, bool) {
	for _, r := range s.Records {
		if r.StudentID == studentID {
			return r, true
		}
	}
	return StudentRecord{}, false
}

// DurationMinutes computes the session length from its clock strings.
func (s Session) DurationMinutes() (int, error) {
	start, err := parseClock(s.StartTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", s.StartTime, err)
	}
	end, err := parseClock(s.EndTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", s.EndTime, err)
	}
	if end < start {
		return 0, fmt.Errorf("end time %q before start time %q", s.EndTime, s.StartTime)
	}
	return end - start, nil
}

// parseClock converts "H:MM" / "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected H:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute")
	}
	return h*60 + m, nil
}
