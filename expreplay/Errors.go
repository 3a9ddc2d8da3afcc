package expreplay

import (
	"errors"
	"fmt"
)

// InsufficientDataError is returned when a buffer is asked for more
// transitions than it holds
type InsufficientDataError struct {
	Op        string
	Len       int
	Requested int
}

// Error satisfies the error interface
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%v: buffer holds %v transitions but %v were "+
		"requested", e.Op, e.Len, e.Requested)
}

// IsInsufficientData returns whether or not an error reports that
// there are too few transitions in the buffer to draw a sample
func IsInsufficientData(err error) bool {
	var dataErr *InsufficientDataError
	return errors.As(err, &dataErr)
}
