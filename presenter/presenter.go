package presenter

import (
	"strconv"
	"time"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/F3NN3X/vbz-departures-service/model"
)

// lateThreshold is the delay at which a departure is flagged late. A
// real-time estimate exactly three minutes behind schedule counts as late.
const lateThreshold = 3 * time.Minute

// Presenter derives the display-ready fields of a parsed departure: the
// display time, the late flag, the countdown string and the line colours.
// Scheduled-only departures are never late.
type Presenter struct {
	Logger dlog.Logger
}

// Enrich returns a copy of dep with all derived fields populated. It is a
// pure function of the departure and the supplied clock instant.
func (p *Presenter) Enrich(now time.Time, dep model.Departure) model.Departure {
	dlog.OrNop(p.Logger).Debugf("enrich departure: line %s to %s", dep.Line, dep.Destination)

	if dep.EstimatedTime != nil {
		dep.DisplayTime = *dep.EstimatedTime
		dep.IsRealtime = true
		dep.IsLate = dep.EstimatedTime.Sub(dep.ScheduledTime) >= lateThreshold
	} else {
		dep.DisplayTime = dep.ScheduledTime
		dep.IsRealtime = false
		dep.IsLate = false
	}

	dep.Countdown = p.transformDepartureTime(now, dep)
	dep.LineBackgroundColor, dep.LineTextColor = LineColors(dep.Line)

	return dep
}

// transformDepartureTime renders the relative departure time. Real-time
// departures count down in whole minutes; scheduled-only departures show
// the clock time instead, since a countdown would suggest a precision the
// data does not have.
func (p *Presenter) transformDepartureTime(now time.Time, dep model.Departure) string {
	depTime, isRealTime := dep.DepartureTime()

	if depTime.IsZero() {
		return ""
	}

	if isRealTime {
		wait := int(depTime.Sub(now).Truncate(time.Minute).Minutes())

		if wait <= 0 {
			return "Approaching"
		}

		mins := "min"

		if wait != 1 {
			mins += "s"
		}

		return strconv.Itoa(wait) + " " + mins
	}

	return depTime.Format("15:04")
}
