package interfaces

import "time"

// HolidayCalendar answers whether a civil date is an exchange holiday.
type HolidayCalendar interface {
	Lookup(date time.Time) (description string, ok bool)
}
