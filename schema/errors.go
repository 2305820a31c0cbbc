package schema

import "errors"

// Engine errors. Callers match them with errors.Is.
var (
	// ErrInvalidConfiguration is returned for an unknown metric, a threshold outside (0,1],
	// an unknown grouping mode, or a directory depth below 1.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMissingRequiredField is returned when trend analysis receives records without dates.
	ErrMissingRequiredField = errors.New("missing required field")
)
