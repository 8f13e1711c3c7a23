package invoice

import (
	"fmt"
	"sort"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/invoice"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/classtrack/center-backend-go/internal/service/pricing"
)

// BuildLines turns a student's billable attendance into invoice lines.
// One line per session the student was present or excused for; absent
// records produce nothing. Pricing follows the resolver: per-record
// override first, then class price, then course catalog, with the class
// discount applied on the resolved path.
func BuildLines(studentID string, sessions []session.Session, classes map[string]class.Class, courses []class.Course, resolver *pricing.Resolver) ([]invoice.Line, error) {
	var lines []invoice.Line
	for _, s := range sessions {
		rec, ok := s.RecordFor(studentID)
		if !ok || !rec.Billable() {
			continue
		}

		c, ok := classes[s.ClassID]
		if !ok {
			return nil, fmt.Errorf("session %s references unknown class %s", s.ID, s.ClassID)
		}

		price, err := resolver.SessionPrice(rec.PriceOverride, c, courses)
		if err != nil {
			return nil, fmt.Errorf("session %s on %s: %w", s.ID, s.Date.Format("2006-01-02"), invoice.ErrMissingPrice)
		}

		lines = append(lines, invoice.Line{
			SessionID: s.ID,
			ClassID:   s.ClassID,
			Date:      s.Date,
			Price:     price,
		})
	}

	sortLines(lines)
	return lines, nil
}

// MergeLines folds freshly aggregated lines into an existing unpaid
// invoice's lines. Two lines are the same billing event when they share
// (date, class); for those the fresh line wins, so edited attendance or
// corrected prices flow into the invoice. Existing lines with no fresh
// counterpart are kept, which preserves manually reconciled entries whose
// source session is gone.
func MergeLines(existing, fresh []invoice.Line) []invoice.Line {
	merged := make(map[string]invoice.Line, len(existing)+len(fresh))
	for _, l := range existing {
		merged[lineKey(l)] = l
	}
	for _, l := range fresh {
		merged[lineKey(l)] = l
	}

	lines := make([]invoice.Line, 0, len(merged))
	for _, l := range merged {
		lines = append(lines, l)
	}
	sortLines(lines)
	return lines
}

func lineKey(l invoice.Line) string {
	return l.Date.Format("2006-01-02") + "|" + l.ClassID
}

func sortLines(lines []invoice.Line) {
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		return lines[i].ClassID < lines[j].ClassID
	})
}

// classIDsOf returns the distinct class ids referenced by the lines,
// sorted for stable storage and comparison.
func classIDsOf(lines []invoice.Line) []string {
	seen := make(map[string]bool, len(lines))
	var ids []string
	for _, l := range lines {
		if !seen[l.ClassID] {
			seen[l.ClassID] = true
			ids = append(ids, l.ClassID)
		}
	}
	sort.Strings(ids)
	return ids
}
