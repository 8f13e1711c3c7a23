package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"0912345678", "0912 345 678", "84912345678", "+84912345678", "+84 912-345-678"}
	invalid := []string{"", "091234567", "09123456789", "12345678", "+8491234567", "abcdefghij"}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"8:00", "08:00", "17:30", "0:05", "23:59"}
	invalid := []string{"", "24:00", "8:60", "8", "8:0", "8:5", "aa:bb", "-1:00"}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	cases := []struct {
		month, year int
		want        bool
	}{
		{1, 2024, true},
		{12, 2020, true},
		{0, 2024, false},
		{13, 2024, false},
		{6, 2019, false},
	}
	for _, c := range cases {
		got := IsValidPeriod(c.month, c.year)
		if got != c.want {
			t.Errorf("IsValidPeriod(%d, %d) = %v, want %v", c.month, c.year, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-03-15"); !ok {
		t.Error("IsValidDate(2024-03-15) = false, want true")
	}
	for _, s := range []string{"", "15-03-2024", "2024-13-01", "2024-03-32"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "phone", Message: "is invalid"},
	}
	want := "name: is required; phone: is invalid"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	m := errs.ToMap()
	if m["name"] != "is required" || m["phone"] != "is invalid" {
		t.Errorf("ToMap() = %v", m)
	}
}
