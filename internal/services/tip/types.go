package tip

import "time"

// TransferRequest represents a tip from SenderID to the owner of VideoID
type TransferRequest struct {
	SenderID string
	VideoID  string
	Amount   int64
	// IdempotencyKey makes retries of the same request return the first tip
	IdempotencyKey string
}

// Config holds tip policy
type Config struct {
	AllowSelfTip bool
	// Now is the ledger clock; defaults to time.Now
	Now func() time.Time
}

// Operation names used for metrics
const (
	OpTransfer  = "transfer"
	OpList      = "list"
	OpSummarize = "summarize"
)
