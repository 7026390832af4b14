package identifier

import "errors"

var (
	ErrMissingRequiredField = errors.New("first name and last name are required")
	ErrRowExtraction        = errors.New("failed to extract row fields")
	ErrApplyBatch           = errors.New("failed to apply batch")
)
