package person

import "errors"

var (
	ErrUnknownField           = errors.New("unknown logical field")
	ErrMissingRequiredMapping = errors.New("first_name and last_name columns must be mapped")
)
