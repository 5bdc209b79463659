package booking

import (
	"fmt"
	"time"

	"salon-booking-api/internal/model"
)

type Slot struct {
	Start time.Time
	End   time.Time
}

// ParseSlot reads a YYYY-MM-DD date and HH:MM time as wall clock in loc.
// Impossible dates such as 2024-02-30 are rejected, and so are times that
// do not exist in loc because of a daylight saving jump.
func ParseSlot(date, clock string, loc *time.Location, length time.Duration) (Slot, error) {
	const layout = model.DateLayout + " " + model.TimeLayout

	start, err := time.ParseInLocation(layout, date+" "+clock, loc)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %v", ErrInvalidDateTime, err)
	}

	wall, _ := time.Parse(layout, date+" "+clock)
	if start.Format(layout) != wall.Format(layout) {
		return Slot{}, fmt.Errorf("%w: %s %s does not exist in %s", ErrInvalidDateTime, date, clock, loc)
	}
	return Slot{Start: start, End: start.Add(length)}, nil
}

func (s Slot) Date() string { return s.Start.Format(model.DateLayout) }

func (s Slot) Time() string { return s.Start.Format(model.TimeLayout) }

// EndTime wraps past midnight: 23:45 + 30m is 00:15.
func (s Slot) EndTime() string { return s.End.Format(model.TimeLayout) }

func (s Slot) ID() string { return model.SlotID(s.Date(), s.Time()) }
