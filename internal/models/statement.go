package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatementDeposit  = "deposit"
	StatementWithdraw = "withdraw"
)

// Statement is a single ledger entry. Amount is always a non negative
// magnitude, the direction is carried by Kind.
type Statement struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
