package salary

import (
	"testing"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func strPtr(s string) *string { return &s }

func taughtSession(id, classID string, d int, start, end string) session.Session {
	return session.Session{
		ID:        id,
		ClassID:   classID,
		Date:      time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
	}
}

func classMap(classes ...class.Class) map[string]class.Class {
	m := make(map[string]class.Class, len(classes))
	for _, c := range classes {
		m[c.ID] = c
	}
	return m
}

func TestBuildSalary_TwoClasses(t *testing.T) {
	classes := classMap(
		class.Class{ID: "c1", Name: "Toán 9A", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
		class.Class{ID: "c2", Name: "Lý 9A", TeacherID: strPtr("t1"), TeacherRate: dec(150000)},
	)
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "8:00", "9:30"),
		taughtSession("se2", "c1", 11, "8:00", "9:30"),
		taughtSession("se3", "c1", 18, "8:00", "9:30"),
		taughtSession("se4", "c2", 5, "14:00", "15:30"),
		taughtSession("se5", "c2", 12, "14:00", "15:30"),
	}

	got, err := BuildSalary("t1", 3, 2024, sessions, classes)
	require.NoError(t, err)

	assert.Equal(t, 5, got.TotalSessions)
	assert.True(t, got.TotalSalary.Equal(dec(900000)), "3x200000 + 2x150000, got %s", got.TotalSalary)
	assert.Equal(t, 5*90, got.DurationMinutes)

	require.Len(t, got.Breakdown, 2)
	assert.Equal(t, "c1", got.Breakdown[0].ClassID)
	assert.Equal(t, 3, got.Breakdown[0].Sessions)
	assert.True(t, got.Breakdown[0].Amount.Equal(dec(600000)))
	assert.Equal(t, "c2", got.Breakdown[1].ClassID)
	assert.True(t, got.Breakdown[1].Amount.Equal(dec(300000)))

	hours, minutes := got.Hours()
	assert.Equal(t, 7, hours)
	assert.Equal(t, 30, minutes)
}

func TestBuildSalary_TravelAllowancePerSession(t *testing.T) {
	classes := classMap(
		class.Class{ID: "c1", TeacherID: strPtr("t1"), TeacherRate: dec(200000), TravelAllowance: dec(30000)},
	)
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "8:00", "9:00"),
		taughtSession("se2", "c1", 11, "8:00", "9:00"),
	}

	got, err := BuildSalary("t1", 3, 2024, sessions, classes)
	require.NoError(t, err)
	assert.True(t, got.TotalTravelAllowance.Equal(dec(60000)), "allowance accrues per session, got %s", got.TotalTravelAllowance)
}

func TestBuildSalary_SkipsUnratedClasses(t *testing.T) {
	classes := classMap(
		class.Class{ID: "c1", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
		class.Class{ID: "c2", TeacherID: strPtr("t1"), TeacherRate: decimal.Zero},
	)
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "8:00", "9:00"),
		taughtSession("se2", "c2", 5, "8:00", "9:00"),
	}

	got, err := BuildSalary("t1", 3, 2024, sessions, classes)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalSessions)
	require.Len(t, got.Breakdown, 1, "unrated class must not produce a zero-amount row")
	assert.Equal(t, "c1", got.Breakdown[0].ClassID)
}

func TestBuildSalary_ClassTeacherPrecedence(t *testing.T) {
	classes := classMap(
		class.Class{ID: "c1", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
	)
	// The session names a substitute, but the class has a standing teacher:
	// the standing teacher is paid.
	sub := taughtSession("se1", "c1", 4, "8:00", "9:00")
	sub.TeacherID = strPtr("t2")
	sessions := []session.Session{sub}

	got, err := BuildSalary("t1", 3, 2024, sessions, classes)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalSessions)

	got, err = BuildSalary("t2", 3, 2024, sessions, classes)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalSessions)
}

func TestBuildSalary_SessionTeacherWhenClassUnassigned(t *testing.T) {
	classes := classMap(
		class.Class{ID: "c1", TeacherRate: dec(200000)},
	)
	s := taughtSession("se1", "c1", 4, "8:00", "9:00")
	s.TeacherID = strPtr("t2")

	got, err := BuildSalary("t2", 3, 2024, []session.Session{s}, classes)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalSessions)
	assert.True(t, got.TotalSalary.Equal(dec(200000)))
}

func TestBuildSalary_BadClockFails(t *testing.T) {
	classes := classMap(
		class.Class{ID: "c1", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
	)
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "9:30", "8:00"),
	}

	_, err := BuildSalary("t1", 3, 2024, sessions, classes)
	assert.Error(t, err)
}

func TestTeachersOf(t *testing.T) {
	classes := classMap(
		class.Class{ID: "c1", TeacherID: strPtr("t2"), TeacherRate: dec(200000)},
		class.Class{ID: "c2", TeacherID: strPtr("t1"), TeacherRate: dec(150000)},
		class.Class{ID: "c3", TeacherID: strPtr("t3")}, // no rate
	)
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "8:00", "9:00"),
		taughtSession("se2", "c2", 5, "8:00", "9:00"),
		taughtSession("se3", "c1", 11, "8:00", "9:00"),
		taughtSession("se4", "c3", 12, "8:00", "9:00"),
	}

	assert.Equal(t, []string{"t2", "t1"}, teachersOf(sessions, classes))
}
