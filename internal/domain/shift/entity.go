package shift

import "time"

const MinutesPerDay = 24 * 60

// Shift is one scheduled work block on one calendar day. A block that
// crosses midnight is stored as two rows sharing a GroupID: the lead row
// on the start date up to 24:00 and a continuation row on the next day
// from 00:00. The continuation row is never edited or deleted directly;
// every user action targets the lead row and cascades by group.
type Shift struct {
	ID                  string
	GroupID             string
	StoreID             string
	EmployeeID          string
	Date                time.Time // calendar day, time-of-day parts zero
	StartMinutes        int       // minutes from local midnight
	EndMinutes          int       // exclusive, at most 1440
	BreakMinutes        int       // carried on the lead row of a pair
	IsFixed             bool
	IsNightContinuation bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (s Shift) SpanMinutes() int {
	return s.EndMinutes - s.StartMinutes
}

// Span is one calendar-day slice of a requested work block.
type Span struct {
	Date         time.Time
	StartMinutes int
	EndMinutes   int
	Continuation bool
}

// SplitSpan slices a requested start/end into per-day spans. When end <=
// start the block crosses midnight and yields two spans whose combined
// length equals the requested duration, the second on the following day
// flagged as the continuation.
func SplitSpan(date time.Time, startMinutes, endMinutes int) []Span {
	if endMinutes > startMinutes {
		return []Span{{Date: date, StartMinutes: startMinutes, EndMinutes: endMinutes}}
	}
	return []Span{
		{Date: date, StartMinutes: startMinutes, EndMinutes: MinutesPerDay},
		{Date: date.AddDate(0, 0, 1), StartMinutes: 0, EndMinutes: endMinutes, Continuation: true},
	}
}

// Overlaps reports whether two half-open same-day minute ranges intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
