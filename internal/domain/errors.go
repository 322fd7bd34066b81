package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidConfig     = "invalid simulation config"
	ErrMsgUnknownStrategy   = "unknown strategy"
	ErrMsgEmptyBatch        = "empty batch"
	ErrMsgSweepNotFound     = "sweep not found"
	ErrMsgIndexOutOfRange   = "probability index out of range"
	ErrMsgPresetNotFound    = "preset not found"
	ErrMsgUnsupportedFormat = "unsupported report format"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidConfig     = errors.New(ErrMsgInvalidConfig)
	ErrUnknownStrategy   = errors.New(ErrMsgUnknownStrategy)
	ErrEmptyBatch        = errors.New(ErrMsgEmptyBatch)
	ErrSweepNotFound     = errors.New(ErrMsgSweepNotFound)
	ErrIndexOutOfRange   = errors.New(ErrMsgIndexOutOfRange)
	ErrPresetNotFound    = errors.New(ErrMsgPresetNotFound)
	ErrUnsupportedFormat = errors.New(ErrMsgUnsupportedFormat)
)
