package ledger

import "errors"

var (
	ErrEmptyBatch      = errors.New("entries are required")
	ErrNegativeUnits   = errors.New("meal units cannot be negative")
	ErrInvalidUnits    = errors.New("meal units must be finite")
	ErrNegativeAmount  = errors.New("deposit amount cannot be negative")
	ErrInvalidAmount   = errors.New("deposit amount must be finite")
	ErrMemberNotInMess = errors.New("member does not belong to this mess")
	ErrRecordNotFound  = errors.New("meal record not found")
)
