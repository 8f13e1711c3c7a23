package session

import (
	"testing"
)

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
		wantErr    bool
	}{
		{"8:00", "9:30", 90, false},
		{"08:00", "09:30", 90, false},
		{"17:45", "19:15", 90, false},
		{"9:00", "9:00", 0, false},
		{"14:00", "16:00", 120, false},
		{"9:30", "8:00", 0, true}, // end before start
		{"", "9:00", 0, true},
		{"8:00", "", 0, true},
		{"25:00", "9:00", 0, true},
		{"8:61", "9:00", 0, true},
		{"8", "9:00", 0, true},
	}
	for _, c := range cases {
		s := Session{StartTime: c.start, EndTime: c.end}
		got, err := s.DurationMinutes()
		if c.wantErr {
			if err == nil {
				t.Errorf("DurationMinutes(%q, %q) expected error, got %d", c.start, c.end, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DurationMinutes(%q, %q) unexpected error: %v", c.start, c.end, err)
			continue
		}
		if got != c.want {
			t.Errorf("DurationMinutes(%q, %q) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestBillable(t *testing.T) {
	cases := []struct {
		rec  StudentRecord
		want bool
	}{
		{StudentRecord{Present: true}, true},
		{StudentRecord{Excused: true}, true},
		{StudentRecord{Present: true, Excused: true}, true},
		{StudentRecord{}, false},
		{StudentRecord{Late: true}, false},
	}
	for _, c := range cases {
		if got := c.rec.Billable(); got != c.want {
			t.Errorf("Billable(%+v) = %v, want %v", c.rec, got, c.want)
		}
	}
}

func TestRecordFor(t *testing.T) {
	s := Session{Records: []StudentRecord{
		{StudentID: "s1", Present: true},
		{StudentID: "s2"},
	}}

	rec, ok := s.RecordFor("s2")
	if !ok || rec.StudentID != "s2" {
		t.Errorf("RecordFor(s2) = %+v, %v", rec, ok)
	}
	if _, ok := s.RecordFor("s3"); ok {
		t.Error("RecordFor(s3) found a record, want none")
	}
}
