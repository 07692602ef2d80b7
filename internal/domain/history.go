package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the textual shape of a history record timestamp
const TimestampLayout = "2006-01-02 15:04:05"

// TransactionKind represents the kind of movement a record captures
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "DEPOSIT"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
)

// TransactionRecord represents one completed movement on an account
type TransactionRecord struct {
	Kind   TransactionKind
	Amount decimal.Decimal // Always positive
	Date   time.Time       // Second precision, local wall clock
}

// Timestamp renders the record date as YYYY-MM-DD HH:MM:SS
func (r TransactionRecord) Timestamp() string {
	return r.Date.Format(TimestampLayout)
}

// History is the append-only log of records owned by a single account
type History struct {
	mu      sync.RWMutex
	now     func() time.Time
	records []TransactionRecord
}

func newHistory(now func() time.Time) *History {
	if now == nil {
		now = time.Now
	}
	return &History{now: now}
}

// append records a movement that the owning account has already applied
func (h *History) append(kind TransactionKind, amount decimal.Decimal) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, TransactionRecord{
		Kind:   kind,
		Amount: amount,
		Date:   h.now().Truncate(time.Second),
	})
}

// Records returns a copy of the log in insertion order
func (h *History) Records() []TransactionRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]TransactionRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of records in the log
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}
