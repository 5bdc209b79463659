package booking

import "errors"

var (
	ErrShopClosed      = errors.New("the shop is currently closed, bookings are not accepted")
	ErrMissingData     = errors.New("missing data")
	ErrInvalidDateTime = errors.New("invalid date or time format")
	ErrSlotTaken       = errors.New("slot already booked")
)
