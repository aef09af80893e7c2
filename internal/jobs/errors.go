package jobs

import "errors"

var (
	ErrNotFound      = errors.New("job not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("status must be either OPEN or CLOSED")
)
