package marketdata

import "time"

// daysPerYear is the fixed year length of the lookback window. Leap days
// are not compensated, so a ten year window is exactly 3650 days.
const daysPerYear = 365

// LookbackWindow returns the request window ending at now and starting
// years*365 calendar days earlier.
func LookbackWindow(now time.Time, years int) (start time.Time, end time.Time) {
	return now.AddDate(0, 0, -years*daysPerYear), now
}
