package report

import (
	"math"
	"strings"

	"github.com/classtrack/center-backend-go/internal/domain/report"
)

// commentSeparator joins narrative blocks from different per-class pieces
// in a merged view.
const commentSeparator = "\n---\n"

// Merged is a single consolidated view of a student's per-class report
// pieces for one month, with the attendance rate and average score
// recomputed across the unioned stat set.
type Merged struct {
	Report         report.Report
	TotalSessions  int
	AttendanceRate int
	AverageScore   float64
}

// MergeReports collapses the per-class pieces for one (student, month)
// into exactly one record. The result does not depend on piece order
// beyond first-occurrence tie-breaks:
//   - class ids, names and stats are unioned by class id, first wins;
//   - comments concatenate with a separator, skipping blocks already
//     contained in the accumulated text;
//   - submitted dominates approved, so a merged report goes back through
//     review whenever any contributing piece is awaiting it.
func MergeReports(pieces []report.Report) (Merged, bool) {
	if len(pieces) == 0 {
		return Merged{}, false
	}

	merged := pieces[0]
	merged.ClassIDs = nil
	merged.ClassNames = nil
	merged.Stats = nil
	merged.Comment = ""

	seen := make(map[string]bool)
	for _, p := range pieces {
		for i, classID := range p.ClassIDs {
			if seen[classID] {
				continue
			}
			seen[classID] = true
			merged.ClassIDs = append(merged.ClassIDs, classID)
			if i < len(p.ClassNames) {
				merged.ClassNames = append(merged.ClassNames, p.ClassNames[i])
			}
		}
	}

	statSeen := make(map[string]bool)
	for _, p := range pieces {
		for _, st := range p.Stats {
			if statSeen[st.ClassID] {
				continue
			}
			statSeen[st.ClassID] = true
			merged.Stats = append(merged.Stats, st)
		}
	}

	for _, p := range pieces {
		merged.Comment = appendComment(merged.Comment, p.Comment)
	}

	merged.Status = mergedStatus(pieces)
	stampWorkflowFrom(&merged, pieces)

	total, rate, avg := overallStats(merged.Stats)
	return Merged{
		Report:         merged,
		TotalSessions:  total,
		AttendanceRate: rate,
		AverageScore:   avg,
	}, true
}

// overallStats recomputes the headline numbers across a stat set. The
// attendance rate comes from the summed counts, never from averaging the
// per-class rates, and classes with no scored tests do not drag the
// average score down.
func overallStats(stats []report.ClassStat) (totalSessions, attendanceRate int, averageScore float64) {
	present := 0
	scoreSum, scoreCount := 0.0, 0
	for _, st := range stats {
		totalSessions += st.TotalSessions
		present += st.PresentSessions
		if st.AverageScore != 0 {
			scoreSum += st.AverageScore
			scoreCount++
		}
	}
	if totalSessions > 0 {
		attendanceRate = int(math.Round(float64(present) / float64(totalSessions) * 100))
	}
	if scoreCount > 0 {
		averageScore = scoreSum / float64(scoreCount)
	}
	return totalSessions, attendanceRate, averageScore
}

// appendComment adds block to acc unless the block is empty or its text is
// already contained in the accumulated comment.
func appendComment(acc, block string) string {
	block = strings.TrimSpace(block)
	if block == "" {
		return acc
	}
	if acc == "" {
		return block
	}
	if strings.Contains(acc, block) {
		return acc
	}
	return acc + commentSeparator + block
}

// mergedStatus ranks contributing statuses: any submitted piece forces the
// merged record back into review; otherwise any unfinished draft keeps it
// a draft; only a fully approved set merges as approved.
func mergedStatus(pieces []report.Report) report.ReportStatus {
	anyDraft := false
	for _, p := range pieces {
		switch p.Status {
		case report.ReportStatusSubmitted:
			return report.ReportStatusSubmitted
		case report.ReportStatusDraft:
			anyDraft = true
		}
	}
	if anyDraft {
		return report.ReportStatusDraft
	}
	return report.ReportStatusApproved
}

// stampWorkflowFrom copies the workflow metadata of the first piece that
// carries the merged status, so the merged view shows who acted on it.
func stampWorkflowFrom(merged *report.Report, pieces []report.Report) {
	merged.SubmittedAt = nil
	merged.SubmittedBy = nil
	merged.ApprovedAt = nil
	merged.ApprovedBy = nil
	merged.RejectionReason = nil
	for _, p := range pieces {
		if p.Status != merged.Status {
			continue
		}
		merged.SubmittedAt = p.SubmittedAt
		merged.SubmittedBy = p.SubmittedBy
		merged.ApprovedAt = p.ApprovedAt
		merged.ApprovedBy = p.ApprovedBy
		merged.RejectionReason = p.RejectionReason
		return
	}
}
