package presenter

import (
	"testing"
	"time"

	"github.com/F3NN3X/vbz-departures-service/model"
	"github.com/F3NN3X/vbz-departures-service/test_helpers"
)

func Test_Enrich_DelayComputation(t *testing.T) {
	p := &Presenter{}
	now := time.Date(2024, 3, 15, 9, 55, 0, 0, time.UTC)
	scheduled := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("should not be late when the estimate equals the schedule", func(t *testing.T) {
		estimated := scheduled
		got := p.Enrich(now, model.Departure{ScheduledTime: scheduled, EstimatedTime: &estimated})

		test_helpers.AssertBoolean(t, got.IsRealtime, true)
		test_helpers.AssertBoolean(t, got.IsLate, false)
	})

	t.Run("should be late at exactly three minutes of delay", func(t *testing.T) {
		estimated := scheduled.Add(3 * time.Minute)
		got := p.Enrich(now, model.Departure{ScheduledTime: scheduled, EstimatedTime: &estimated})

		test_helpers.AssertBoolean(t, got.IsLate, true)
	})

	t.Run("should not be late one second under the threshold", func(t *testing.T) {
		estimated := scheduled.Add(2*time.Minute + 59*time.Second)
		got := p.Enrich(now, model.Departure{ScheduledTime: scheduled, EstimatedTime: &estimated})

		test_helpers.AssertBoolean(t, got.IsLate, false)
	})

	t.Run("should never flag a scheduled-only departure as late", func(t *testing.T) {
		got := p.Enrich(now, model.Departure{ScheduledTime: scheduled})

		test_helpers.AssertBoolean(t, got.IsRealtime, false)
		test_helpers.AssertBoolean(t, got.IsLate, false)
	})
}

func Test_Enrich_DisplayTime(t *testing.T) {
	p := &Presenter{}
	now := time.Date(2024, 3, 15, 9, 55, 0, 0, time.UTC)
	scheduled := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("should display the estimate when present", func(t *testing.T) {
		estimated := scheduled.Add(time.Minute)
		got := p.Enrich(now, model.Departure{ScheduledTime: scheduled, EstimatedTime: &estimated})

		test_helpers.AssertTime(t, got.DisplayTime, estimated)
	})

	t.Run("should fall back to the scheduled time", func(t *testing.T) {
		got := p.Enrich(now, model.Departure{ScheduledTime: scheduled})

		test_helpers.AssertTime(t, got.DisplayTime, scheduled)
	})

	t.Run("should leave the display time blank when no time was parsed", func(t *testing.T) {
		got := p.Enrich(now, model.Departure{})

		test_helpers.AssertBoolean(t, got.DisplayTime.IsZero(), true)
		test_helpers.AssertString(t, got.Countdown, "")
	})
}

func Test_Enrich_Countdown(t *testing.T) {
	p := &Presenter{}
	now := time.Date(2024, 3, 15, 9, 55, 0, 0, time.UTC)

	countdownFor := func(estimatedIn string) string {
		estimated := test_helpers.AdjustTime(now, estimatedIn)
		scheduled := estimated
		return p.Enrich(now, model.Departure{ScheduledTime: scheduled, EstimatedTime: &estimated}).Countdown
	}

	t.Run("should show Approaching under one minute", func(t *testing.T) {
		test_helpers.AssertString(t, countdownFor("59s"), "Approaching")
	})

	t.Run("should show Approaching for an overdue estimate", func(t *testing.T) {
		test_helpers.AssertString(t, countdownFor("-2m"), "Approaching")
	})

	t.Run("should show singular at one minute", func(t *testing.T) {
		test_helpers.AssertString(t, countdownFor("1m"), "1 min")
	})

	t.Run("should show plural above one minute", func(t *testing.T) {
		test_helpers.AssertString(t, countdownFor("6m30s"), "6 mins")
	})

	t.Run("should show the clock time for a scheduled-only departure", func(t *testing.T) {
		scheduled := time.Date(2024, 3, 15, 12, 34, 56, 0, time.UTC)
		got := p.Enrich(now, model.Departure{ScheduledTime: scheduled})

		test_helpers.AssertString(t, got.Countdown, "12:34")
	})
}

func Test_Enrich_LineColors(t *testing.T) {
	p := &Presenter{}
	now := time.Date(2024, 3, 15, 9, 55, 0, 0, time.UTC)

	t.Run("should resolve a mapped line to its fixed pair", func(t *testing.T) {
		got := p.Enrich(now, model.Departure{Line: "2"})

		test_helpers.AssertString(t, got.LineBackgroundColor, "#EC1C24")
		test_helpers.AssertString(t, got.LineTextColor, "#FFFFFF")
	})

	t.Run("should default an unmapped line to white on black text", func(t *testing.T) {
		got := p.Enrich(now, model.Departure{Line: "N99"})

		test_helpers.AssertString(t, got.LineBackgroundColor, DefaultBackgroundColor)
		test_helpers.AssertString(t, got.LineTextColor, DefaultTextColor)
	})

	t.Run("should not partially match line identifiers", func(t *testing.T) {
		background, text := LineColors("22")

		test_helpers.AssertString(t, background, DefaultBackgroundColor)
		test_helpers.AssertString(t, text, DefaultTextColor)
	})
}
