package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrSlotUnavailable  = errors.New("slot is not available")
	ErrInvalidStartTime = errors.New("start time is not on the slot grid")
	ErrInvalidCategory  = errors.New("unknown lesson category")
	ErrNotCancellable   = errors.New("booking can no longer be cancelled")
	ErrStoreUnavailable = errors.New("booking store unavailable")
)
