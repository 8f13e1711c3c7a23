package salary

import (
	"fmt"
	"sort"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/salary"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/shopspring/decimal"
)

// sessionTeacher resolves who is paid for a session. The class's assigned
// teacher takes precedence; the per-session teacher field only matters for
// classes with no standing assignment.
func sessionTeacher(s session.Session, c class.Class) string {
	if c.TeacherID != nil && *c.TeacherID != "" {
		return *c.TeacherID
	}
	if s.TeacherID != nil {
		return *s.TeacherID
	}
	return ""
}

// BuildSalary aggregates one teacher's sessions for a period into a pay
// statement. Per session the class rate is added once, the travel
// allowance once, and the wall-clock duration accumulated in minutes.
// Sessions of classes with no configured teacher rate are skipped
// entirely; they never produce a zero-amount breakdown row.
func BuildSalary(teacherID string, month, year int, sessions []session.Session, classes map[string]class.Class) (salary.Salary, error) {
	result := salary.Salary{
		TeacherID:            teacherID,
		PeriodMonth:          month,
		PeriodYear:           year,
		TotalSalary:          decimal.Zero,
		TotalTravelAllowance: decimal.Zero,
		Status:               salary.SalaryStatusUnpaid,
	}

	byClass := make(map[string]*salary.ClassBreakdown)
	for _, s := range sessions {
		c, ok := classes[s.ClassID]
		if !ok {
			continue
		}
		if sessionTeacher(s, c) != teacherID {
			continue
		}
		if !c.TeacherRate.IsPositive() {
			continue
		}

		minutes, err := s.DurationMinutes()
		if err != nil {
			return salary.Salary{}, fmt.Errorf("session %s: %w", s.ID, err)
		}

		b, ok := byClass[c.ID]
		if !ok {
			b = &salary.ClassBreakdown{
				ClassID:   c.ID,
				ClassName: c.Name,
				Rate:      c.TeacherRate,
				Amount:    decimal.Zero,
			}
			byClass[c.ID] = b
		}
		b.Sessions++
		b.Amount = b.Amount.Add(c.TeacherRate)

		result.TotalSessions++
		result.TotalSalary = result.TotalSalary.Add(c.TeacherRate)
		result.TotalTravelAllowance = result.TotalTravelAllowance.Add(c.TravelAllowance)
		result.DurationMinutes += minutes
	}

	result.Breakdown = make([]salary.ClassBreakdown, 0, len(byClass))
	for _, b := range byClass {
		result.Breakdown = append(result.Breakdown, *b)
	}
	sort.Slice(result.Breakdown, func(i, j int) bool {
		return result.Breakdown[i].ClassID < result.Breakdown[j].ClassID
	})

	return result, nil
}

// teachersOf collects every teacher owed for at least one session, in
// first-seen order. Classes without a rate contribute no one.
func teachersOf(sessions []session.Session, classes map[string]class.Class) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range sessions {
		c, ok := classes[s.ClassID]
		if !ok || !c.TeacherRate.IsPositive() {
			continue
		}
		id := sessionTeacher(s, c)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
