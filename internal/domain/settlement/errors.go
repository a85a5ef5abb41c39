package settlement

import "errors"

var (
	ErrRunNotFound    = errors.New("settlement run not found")
	ErrAlreadySettled = errors.New("period already settled for this mess")
	ErrPeriodOpen     = errors.New("period has not ended yet")
)
