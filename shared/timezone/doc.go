// Package timezone pins clock and calendar arithmetic to APP_TIMEZONE (Asia/Colombo by default).
//
// Booking, availability and offer dates are calendar days, not instants:
//
//	start, err := timezone.ParseDate("2026-03-01") // local midnight
//	day := timezone.CalendarDay(row.StartDate)     // DATE column read back without a UTC shift
//	if day.Before(timezone.Today()) { ... }
//
// Timestamps (created_at, last_login) use Now and ToAppTime. The zone is loaded once at
// import time; an unknown IANA name falls back to UTC with an error log.
package timezone
