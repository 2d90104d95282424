package models

import (
	"github.com/shopspring/decimal"
)

// Balance is a derived view over the user's statements. It is recomputed on
// every query and never stored, so it can't drift from the statement log.
type Balance struct {
	Current    decimal.Decimal
	Statements []Statement
}
