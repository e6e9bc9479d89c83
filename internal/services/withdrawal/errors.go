package withdrawal

import "errors"

// Service errors
var (
	ErrUnknownTargetStatus = errors.New("unknown target status")
	ErrMissingReason       = errors.New("a rejection reason is required to decline")
	ErrTransitionRefused   = errors.New("transition refused")
)
