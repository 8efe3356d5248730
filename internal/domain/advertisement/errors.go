package advertisement

import "errors"

var (
	ErrAdNotFound  = errors.New("advertisement not found")
	ErrInvalidDate = errors.New("invalid date format, expected ISO-8601")
)
