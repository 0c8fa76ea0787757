package types

import "time"

// IST is the default fixed civil zone (UTC+05:30).
var IST = time.FixedZone("IST", 19800)

// CivilDate truncates t to midnight of its calendar day in loc.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
