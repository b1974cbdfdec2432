package util

import (
	"time"
)

const layout = "2006-01-02"

// VET is the exchange's local time zone (Venezuela, UTC-4, no DST).
var VET = time.FixedZone("VET", -4*60*60)

// SameVETDay reports whether two instants fall on the same calendar day
// in the exchange's local time zone.
func SameVETDay(t1, t2 time.Time) bool {
	return t1.In(VET).Format(layout) == t2.In(VET).Format(layout)
}

// IsMarketHours reports whether the exchange is plausibly trading at t.
// BVC trades weekday mornings; the window is kept a little wide on both
// ends.
func IsMarketHours(t time.Time) bool {
	local := t.In(VET)
	if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
		return false
	}
	return local.Hour() >= 8 && local.Hour() < 14
}
