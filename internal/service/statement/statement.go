// Package statement holds the ledger core: recording deposit and withdraw
// statements and reading derived balances.
package statement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/repository"
)

type CreateStatementRequest struct {
	UserID      uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Description string
}

// Service creates statements. Reads are served by Query.
type Service struct {
	storage repository.Storage
	locks   *userLocks
}

func NewService(storage repository.Storage) *Service {
	return &Service{
		storage: storage,
		locks:   newUserLocks(),
	}
}

// CreateStatement records a new statement for the user.
// Returns apperrors.ErrUserNotFound if the user does not exist and
// apperrors.ErrInsufficientFunds if a withdrawal exceeds the current balance.
// A withdrawal of exactly the current balance is allowed.
func (s *Service) CreateStatement(ctx context.Context, req CreateStatementRequest) (models.Statement, error) {
	var created models.Statement

	if req.Kind != models.StatementDeposit && req.Kind != models.StatementWithdraw {
		return created, fmt.Errorf("%w: unknown kind %q", apperrors.ErrStatementInvalid, req.Kind)
	}
	if req.Amount.IsNegative() {
		return created, fmt.Errorf("%w: amount must not be negative", apperrors.ErrStatementInvalid)
	}

	// The balance check and the insert must not interleave with another
	// create for the same user, otherwise two withdrawals could both pass
	// against the same stale balance
	unlock := s.locks.lock(req.UserID)
	defer unlock()

	err := s.storage.InTx(ctx, func(store repository.Storage) error {
		if _, err := store.User().GetUserByID(ctx, req.UserID); err != nil {
			return err
		}

		if req.Kind == models.StatementWithdraw {
			statements, err := store.Statement().ListUserStatements(ctx, req.UserID)
			if err != nil {
				return err
			}

			if Sum(statements).LessThan(req.Amount) {
				return apperrors.ErrInsufficientFunds
			}
		}

		var err error
		created, err = store.Statement().CreateStatement(ctx, repository.CreateStatementParams{
			UserID:      req.UserID,
			Kind:        req.Kind,
			Amount:      req.Amount,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		return models.Statement{}, err
	}

	return created, nil
}
