// Package timezone holds the zone used to decide what "today" is for
// attendance dates, schedule housekeeping and cron.
package timezone

import "time"

const DefaultTimezone = "UTC"

var current = time.UTC

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Set changes the process zone. Call it once at startup.
func Set(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return err
	}
	current = loc
	return nil
}

func Location() *time.Location {
	return current
}

func Now() time.Time {
	return time.Now().In(current)
}
