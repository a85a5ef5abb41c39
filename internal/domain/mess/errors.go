package mess

import "errors"

var (
	ErrMessNotFound         = errors.New("mess not found")
	ErrMessCodeNotFound     = errors.New("mess code not found")
	ErrAlreadyInMess        = errors.New("already in a mess")
	ErrNotInMess            = errors.New("not in a mess")
	ErrMemberNotFound       = errors.New("member not found")
	ErrAdminRequired        = errors.New("admin access required")
	ErrCannotRemoveSelf     = errors.New("cannot remove yourself")
	ErrCannotDemoteSelf     = errors.New("cannot demote yourself")
	ErrMemberNotAdmin       = errors.New("member is not an admin")
	ErrCodeGenerationFailed = errors.New("mess code generation failed")
)
