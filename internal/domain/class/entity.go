package class

import (
	"time"

	"github.com/shopspring/decimal"
)

// Class is a running course offering with an enrolled student list.
// Pricing: SessionPrice wins when set; otherwise the course catalog is
// consulted by (grade, subject). Discount follows the center's convention:
// values up to 100 are a percentage, larger values are an absolute amount
// per session.
type Class struct {
	ID              string
	Name            string
	Grade           int
	Subject         string
	SessionPrice    *decimal.Decimal
	Discount        decimal.Decimal
	TeacherID       *string
	TeacherRate     decimal.Decimal
	TravelAllowance decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time

	// Joined fields
	TeacherName *string
	Enrollments []Enrollment
}

// Enrollment ties a student to a class with the date tuition starts.
type Enrollment struct {
	StudentID  string
	EnrolledAt time.Time

	StudentName *string
}

// Course is a per-session price template keyed by (grade, subject), used as
// the pricing fallback for classes without an explicit session price.
type Course struct {
	ID        string
	Grade     int
	Subject   string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudentIDs returns the enrolled student ids in enrollment order.
func (c Class) StudentIDs() []string {
	ids := make([]string, 0, len(c.Enrollments))
	for _, e := range c.Enrollments {
		ids = append(ids, e.StudentID)
	}
	return ids
}

// HasStudent reports whether the student is enrolled in the class.
func (c Class) HasStudent(studentID string) bool {
	for _, e := range c.Enrollments {
		if e.StudentID == studentID {
			return true
		}
	}
	return false
}
