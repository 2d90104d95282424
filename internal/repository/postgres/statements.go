package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/repository"
)

type StatementRepo struct {
	DB DBTX
}

const createStatement = `-- name: CreateStatement
INSERT INTO statements (id, user_id, kind, amount, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
RETURNING id, user_id, kind, amount, description, created_at, updated_at
`

func (r *StatementRepo) CreateStatement(ctx context.Context, arg repository.CreateStatementParams) (models.Statement, error) {
	rows, _ := r.DB.Query(ctx, createStatement, uuid.New(), arg.UserID, arg.Kind, arg.Amount, arg.Description)
	statement, err := pgx.CollectOneRow(rows, rowToStatement)

	if err != nil {
		return statement, fmt.Errorf("db error: %w", err)
	}

	return statement, nil
}

const getStatement = `-- name: GetStatement
SELECT id, user_id, kind, amount, description, created_at, updated_at FROM statements
WHERE id = $1
`

func (r *StatementRepo) GetStatement(ctx context.Context, id uuid.UUID) (models.Statement, error) {
	rows, _ := r.DB.Query(ctx, getStatement, id)
	statement, err := pgx.CollectOneRow(rows, rowToStatement)

	switch {
	case err == nil:
		return statement, nil
	case errors.Is(err, pgx.ErrNoRows):
		return statement, apperrors.ErrStatementNotFound
	default:
		return statement, fmt.Errorf("db error: %w", err)
	}
}

// Insertion order is restored by (created_at, id): created_at alone may collide
// within one timestamp resolution, id breaks the tie deterministically
const listUserStatements = `-- name: ListUserStatements
SELECT id, user_id, kind, amount, description, created_at, updated_at FROM statements
WHERE user_id = $1
ORDER BY created_at, id
`

func (r *StatementRepo) ListUserStatements(ctx context.Context, userID uuid.UUID) ([]models.Statement, error) {
	rows, _ := r.DB.Query(ctx, listUserStatements, userID)
	statements, err := pgx.CollectRows(rows, rowToStatement)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return statements, nil
}

func rowToStatement(row pgx.CollectableRow) (models.Statement, error) {
	var s models.Statement
	err := row.Scan(&s.ID, &s.UserID, &s.Kind, &s.Amount, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
