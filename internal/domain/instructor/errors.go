package instructor

import "errors"

var (
	ErrNotFound       = errors.New("instructor not found")
	ErrWindowNotFound = errors.New("availability window not found")
	ErrWindowOverlap  = errors.New("window overlaps an existing active window")
	ErrInvalidWindow  = errors.New("window end must be after start")
)
