package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgMissingSweepID        = "Missing sweep ID"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgUnknownError           = "Unknown error"
	ErrMsgInvalidConfigError     = "Invalid simulation settings"
	ErrMsgUnknownStrategyError   = "Unknown strategy. Use bold, flat or kelly."
	ErrMsgIndexOutOfRangeError   = "Probability index must be between 0 and 48"
	ErrMsgUnsupportedFormatError = "Unsupported report format. Use csv or markdown."
	ErrMsgSweepNotFoundError     = "Sweep not found. It may have expired; run it again."
	ErrMsgPresetNotFoundError    = "Preset not found"
	ErrMsgSweepAbandonedError    = "Sweep was abandoned before it finished"
	ErrMsgSweepBudgetExceeded    = "Sweep budget exhausted. Try a smaller sweep or wait for the window to reset."
)

// Operation names used in logs
const (
	OpCreateSweep     = "Create sweep"
	OpGetSweep        = "Get sweep"
	OpGetDistribution = "Get distribution"
	OpGetReport       = "Get report"
)

// Log messages
const (
	LogMsgFormCorrected  = "Form value replaced"
	LogMsgReadyzFailed   = "Readiness check failed"
	LogMsgSweepThrottled = "Sweep refused: budget exhausted"
)
