package bills

import "errors"

var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrEmptyRoster     = errors.New("mess has no members")
	ErrInvalidAmount   = errors.New("bill amount must be positive")
	ErrMemberNotOnBill = errors.New("member not on this bill")
	ErrAccessDenied    = errors.New("bill belongs to another mess")
)
