package preset

import "errors"

// ErrDuplicatePreset is returned when two presets share a name
var ErrDuplicatePreset = errors.New("duplicate preset name")

// Error message formats
const (
	ErrMsgReadPresetsFailed  = "failed to read presets file: %w"
	ErrMsgParsePresetsFailed = "failed to parse presets: %w"
)
