package report

import (
	"math"

	"github.com/classtrack/center-backend-go/internal/domain/report"
	"github.com/classtrack/center-backend-go/internal/domain/session"
)

// BuildClassStat derives one class's monthly statistics for a student
// from the attendance sessions. A session counts toward the total when
// the student has a record in it, present or not; the rate is the share
// of those where the student actually showed up. The average score covers
// scored tests only.
func BuildClassStat(studentID, classID, className string, sessions []session.Session) report.ClassStat {
	stat := report.ClassStat{
		ClassID:   classID,
		ClassName: className,
	}

	scoreSum, scoreCount := 0.0, 0
	for _, s := range sessions {
		if s.ClassID != classID {
			continue
		}
		rec, ok := s.RecordFor(studentID)
		if !ok {
			continue
		}
		stat.TotalSessions++
		if rec.Present {
			stat.PresentSessions++
		}
		if rec.TestScore != nil {
			scoreSum += *rec.TestScore
			scoreCount++
		}
	}

	if stat.TotalSessions > 0 {
		stat.AttendanceRate = int(math.Round(float64(stat.PresentSessions) / float64(stat.TotalSessions) * 100))
	}
	if scoreCount > 0 {
		stat.AverageScore = scoreSum / float64(scoreCount)
	}
	return stat
}

// studentClasses maps each student to the classes they have attendance
// records in, preserving first-seen order per student.
func studentClasses(sessions []session.Session) map[string][]string {
	byStudent := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, s := range sessions {
		for _, rec := range s.Records {
			if seen[rec.StudentID] == nil {
				seen[rec.StudentID] = make(map[string]bool)
			}
			if seen[rec.StudentID][s.ClassID] {
				continue
			}
			seen[rec.StudentID][s.ClassID] = true
			byStudent[rec.StudentID] = append(byStudent[rec.StudentID], s.ClassID)
		}
	}
	return byStudent
}
