package statement

import (
	"github.com/shopspring/decimal"

	"github.com/nordveil/finapi/internal/models"
)

// Sum folds statements into the net balance: deposits add, withdrawals
// subtract. Pure function, safe to call from anywhere.
func Sum(statements []models.Statement) decimal.Decimal {
	total := decimal.Zero

	for _, s := range statements {
		switch s.Kind {
		case models.StatementDeposit:
			total = total.Add(s.Amount)
		case models.StatementWithdraw:
			total = total.Sub(s.Amount)
		}
	}

	return total
}
