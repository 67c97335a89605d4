package domain

import "errors"

var (
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrInvalidRecurrence   = errors.New("invalid recurrence kind")
	ErrInvalidWeekday      = errors.New("invalid weekday")
	ErrWeekdaysRequired    = errors.New("weekly recurrence requires weekdays")
	ErrWindowStartRequired = errors.New("recurrence window start required")
	ErrInvalidWindow       = errors.New("invalid recurrence window")
	ErrInvalidTimezone     = errors.New("invalid timezone")
)
