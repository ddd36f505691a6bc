package domain

import "time"

type StockEventKind string

const (
	StockReserved  StockEventKind = "reserved"
	StockConfirmed StockEventKind = "confirmed"
	StockCancelled StockEventKind = "cancelled"
)

// StockEvent notifies downstream services about a finished stock operation.
// Publishing is best-effort and never blocks the protocol outcome.
type StockEvent struct {
	ReservationID string
	ProductID     string
	Quantity      int
	Kind          StockEventKind
	OccurredAt    time.Time
}
