package freight

import "errors"

var (
	// ErrInvalidRateTables is returned when a rate table holds a negative or non-finite rate.
	ErrInvalidRateTables = errors.New("rate tables must contain finite, non-negative rates")
	// ErrUnknownRegion is returned when an air express row names an unknown zone.
	ErrUnknownRegion = errors.New("unknown air express zone")
)
