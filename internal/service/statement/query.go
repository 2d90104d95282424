package statement

import (
	"context"

	"github.com/google/uuid"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/repository"
)

// Query serves the read side: balances and single statement lookups
type Query struct {
	storage repository.Storage
}

func NewQuery(storage repository.Storage) *Query {
	return &Query{storage: storage}
}

// GetBalance returns the folded balance together with the statements it was
// computed from
func (q *Query) GetBalance(ctx context.Context, userID uuid.UUID) (models.Balance, error) {
	if _, err := q.storage.User().GetUserByID(ctx, userID); err != nil {
		return models.Balance{}, err
	}

	statements, err := q.storage.Statement().ListUserStatements(ctx, userID)
	if err != nil {
		return models.Balance{}, err
	}

	return models.Balance{
		Current:    Sum(statements),
		Statements: statements,
	}, nil
}

// GetStatement returns one statement of the user.
// A statement that exists but belongs to another user yields the same
// apperrors.ErrStatementNotFound as a missing one, so statement ids don't
// leak across users.
func (q *Query) GetStatement(ctx context.Context, userID uuid.UUID, statementID uuid.UUID) (models.Statement, error) {
	if _, err := q.storage.User().GetUserByID(ctx, userID); err != nil {
		return models.Statement{}, err
	}

	statement, err := q.storage.Statement().GetStatement(ctx, statementID)
	if err != nil {
		return models.Statement{}, err
	}

	if statement.UserID != userID {
		return models.Statement{}, apperrors.ErrStatementNotFound
	}

	return statement, nil
}
