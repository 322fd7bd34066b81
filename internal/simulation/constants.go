package simulation

import "time"

// batchCheckInterval is how many players run between context checks
const batchCheckInterval = 256

// Result cache defaults
const (
	DefaultStoreSize = 64
	DefaultStoreTTL  = 15 * time.Minute
)

// StoreSchemaVersion invalidates cached sweeps when the result layout changes
const StoreSchemaVersion = "1.0"

// Log messages
const (
	LogMsgSweepStarted   = "Sweep started"
	LogMsgSweepCompleted = "Sweep completed"
	LogMsgSweepFailed    = "Sweep failed"
	LogMsgBatchCompleted = "Batch completed"
)
