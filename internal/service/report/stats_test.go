package report

import (
	"testing"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func statSession(classID string, d int, records ...session.StudentRecord) session.Session {
	return session.Session{
		ID:      classID + "-" + time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC).Format("02"),
		ClassID: classID,
		Date:    time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC),
		Records: records,
	}
}

func TestBuildClassStat(t *testing.T) {
	sessions := []session.Session{
		statSession("c1", 4, session.StudentRecord{StudentID: "s1", Present: true, TestScore: floatPtr(8.5)}),
		statSession("c1", 11, session.StudentRecord{StudentID: "s1", Present: true}),
		statSession("c1", 18, session.StudentRecord{StudentID: "s1", Excused: true, TestScore: floatPtr(7.5)}),
		statSession("c1", 25, session.StudentRecord{StudentID: "s2", Present: true}), // other student
		statSession("c2", 5, session.StudentRecord{StudentID: "s1", Present: true}),  // other class
	}

	stat := BuildClassStat("s1", "c1", "Toán 9A", sessions)
	assert.Equal(t, "c1", stat.ClassID)
	assert.Equal(t, "Toán 9A", stat.ClassName)
	assert.Equal(t, 3, stat.TotalSessions, "sessions with a record count, attended or not")
	assert.Equal(t, 2, stat.PresentSessions, "excused is billable but not present")
	assert.Equal(t, 67, stat.AttendanceRate)
	assert.Equal(t, 8.0, stat.AverageScore)
}

func TestBuildClassStat_NoSessions(t *testing.T) {
	stat := BuildClassStat("s1", "c1", "Toán 9A", nil)
	assert.Equal(t, 0, stat.TotalSessions)
	assert.Equal(t, 0, stat.AttendanceRate)
	assert.Equal(t, 0.0, stat.AverageScore)
}

func TestStudentClasses(t *testing.T) {
	sessions := []session.Session{
		statSession("c2", 4,
			session.StudentRecord{StudentID: "s1"},
			session.StudentRecord{StudentID: "s2"},
		),
		statSession("c1", 5, session.StudentRecord{StudentID: "s1"}),
		statSession("c2", 11, session.StudentRecord{StudentID: "s1"}),
	}

	byStudent := studentClasses(sessions)
	assert.Equal(t, []string{"c2", "c1"}, byStudent["s1"], "first-seen order, no duplicates")
	assert.Equal(t, []string{"c2"}, byStudent["s2"])
}
