package schedule

import "errors"

// Schedule domain errors
var (
	ErrNoScheduleRule    = errors.New("job has no schedule rule to generate from")
	ErrInvalidRecurrence = errors.New("invalid recurrence type")
)
