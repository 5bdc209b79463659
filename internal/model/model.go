package model

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	StatusReserved = "reserved"
)

type Appointment struct {
	ID         string
	Date       string
	Time       string
	ClientName string
	Phone      string
	Status     string
	CreatedAt  time.Time
}

// SlotID is the document identity of the appointment booked at date/time.
// Two bookings of the same slot share an id, so the store rejects the second.
func SlotID(date, clock string) string {
	return fmt.Sprintf("%s_%s", date, clock)
}

// CalendarEvent is the mirror of an appointment in the external calendar.
type CalendarEvent struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}
