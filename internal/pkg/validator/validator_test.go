package validator

import (
	"testing"
	"time"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsWeekEndingDate(t *testing.T) {
	fridays := []string{"2026-02-06", "2026-01-02", "2025-12-26"}
	for _, s := range fridays {
		if _, ok := IsWeekEndingDate(s); !ok {
			t.Errorf("IsWeekEndingDate(%q) = false, want true", s)
		}
	}

	rejected := []string{
		"2026-02-05", // Thursday
		"2026-02-07", // Saturday
		"2026-02-09", // Monday
		"not-a-date",
		"2026-13-01",
		"",
	}
	for _, s := range rejected {
		if _, ok := IsWeekEndingDate(s); ok {
			t.Errorf("IsWeekEndingDate(%q) = true, want false", s)
		}
	}
}

func TestWeekEnding(t *testing.T) {
	friday := time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		input time.Time
		want  time.Time
	}{
		{time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC), friday},                                      // Monday
		{time.Date(2026, 2, 6, 23, 59, 0, 0, time.UTC), friday},                                     // Friday itself
		{time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)}, // Saturday rolls forward
	}
	for _, c := range cases {
		got := WeekEnding(c.input)
		if !got.Equal(c.want) {
			t.Errorf("WeekEnding(%v) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidRating(t *testing.T) {
	for rating := 1; rating <= 10; rating++ {
		if !IsValidRating(rating) {
			t.Errorf("IsValidRating(%d) = false, want true", rating)
		}
	}
	for _, rating := range []int{0, -1, 11, 100} {
		if IsValidRating(rating) {
			t.Errorf("IsValidRating(%d) = true, want false", rating)
		}
	}
}

func TestIsValidTenantSlug(t *testing.T) {
	valid := []string{"acme", "acme-corp", "a1b", "team-42"}
	invalid := []string{"", "ab", "-leading", "UPPER", "has space", "has_underscore"}
	for _, slug := range valid {
		if !IsValidTenantSlug(slug) {
			t.Errorf("IsValidTenantSlug(%q) = false, want true", slug)
		}
	}
	for _, slug := range invalid {
		if IsValidTenantSlug(slug) {
			t.Errorf("IsValidTenantSlug(%q) = true, want false", slug)
		}
	}
}
