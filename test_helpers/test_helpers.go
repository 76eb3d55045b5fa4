package test_helpers

import (
	"testing"
	"time"
)

func AssertBoolean(t *testing.T, got bool, want bool) {
	t.Helper()
	if got != want {
		t.Errorf("got '%t' want '%t'\n", got, want)
	}
}

func AssertString(t *testing.T, got string, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got '%s' want '%s'\n", got, want)
	}
}

func AssertInt(t *testing.T, got int, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got '%d' want '%d'\n", got, want)
	}
}

func AssertTime(t *testing.T, got time.Time, want time.Time) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("got '%s' want '%s'\n", got.Format(time.RFC3339), want.Format(time.RFC3339))
	}
}

func AdjustTime(now time.Time, d string) time.Time {
	duration, _ := time.ParseDuration(d)
	return now.Add(duration)
}
