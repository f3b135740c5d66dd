package services

import "time"

// DateAtLocation truncates a timestamp to the start of its calendar day in
// the given location. All per-day rows (activity logs, daily challenges)
// are keyed on this value, so "consecutive day" means consecutive calendar
// days in the service's configured timezone.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
