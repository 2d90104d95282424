package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nordveil/finapi/internal/models"
)

type CreateUserParams struct {
	Name           string
	Email          string
	HashedPassword string
}

// User directory interface
type UserRepo interface {
	// Create user
	// If user with the email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type CreateStatementParams struct {
	UserID      uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Description string
}

// Statement ledger interface
// The ledger is append only: statements are never updated or deleted
type StatementRepo interface {
	// Store new statement: assign id and timestamps, return the stored record
	CreateStatement(ctx context.Context, arg CreateStatementParams) (models.Statement, error)

	// Get statement by id
	// If statement not found must return apperrors.ErrStatementNotFound
	GetStatement(ctx context.Context, id uuid.UUID) (models.Statement, error)

	// List all statements of the user in insertion order
	// The order must be stable so balance folds are reproducible
	ListUserStatements(ctx context.Context, userID uuid.UUID) ([]models.Statement, error)
}

// Storage aggregates every repository over one backend
type Storage interface {
	User() UserRepo
	Statement() StatementRepo

	// Run fn within a single transaction
	// Every repo called on the Storage passed to fn shares that transaction
	InTx(ctx context.Context, fn func(Storage) error) error
}
