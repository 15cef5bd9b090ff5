// Package orderid builds and checks the human-readable order identifiers
// handed out by the order service.
//
// An identifier is the day key of the order (YYYYMMDD) followed by the
// per-day sequence value, zero padded to at least four digits:
//
//	20251112-0001
//	20251112-0012
//	20251112-10000
package orderid

import (
	"fmt"
	"regexp"
	"time"
)

// DayKeyLayout is the time layout of a day key.
const DayKeyLayout = "20060102"

// MinSeqWidth is the minimum width of the sequence part. It is a minimum,
// never a cap.
const MinSeqWidth = 4

var idRE = regexp.MustCompile(`^\d{8}-\d{4,}$`)

// DayKey returns the 8-digit calendar date of t in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// Format composes an order identifier from a day key and a sequence value.
func Format(dayKey string, seq int64) string {
	return fmt.Sprintf("%s-%0*d", dayKey, MinSeqWidth, seq)
}

// Valid reports whether id has the day-key/sequence shape.
func Valid(id string) bool {
	return idRE.MatchString(id)
}

// Clock yields "today" for order creation in a fixed location.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock returns a wall clock pinned to loc. A nil loc means time.Local.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// DayKey computes today's key. Call it once per request and reuse the
// value for the whole transaction.
func (c Clock) DayKey() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return DayKey(now().In(loc))
}
