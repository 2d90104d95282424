package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/repository"
)

type StatementRepo struct {
	state *state
}

func (r *StatementRepo) CreateStatement(ctx context.Context, arg repository.CreateStatementParams) (models.Statement, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	now := time.Now()
	statement := models.Statement{
		ID:          uuid.New(),
		UserID:      arg.UserID,
		Kind:        arg.Kind,
		Amount:      arg.Amount,
		Description: arg.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.state.statements[statement.ID] = statement
	r.state.userStatements[arg.UserID] = append(r.state.userStatements[arg.UserID], statement.ID)

	return statement, nil
}

func (r *StatementRepo) GetStatement(ctx context.Context, id uuid.UUID) (models.Statement, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	statement, ok := r.state.statements[id]
	if !ok {
		return models.Statement{}, apperrors.ErrStatementNotFound
	}

	return statement, nil
}

func (r *StatementRepo) ListUserStatements(ctx context.Context, userID uuid.UUID) ([]models.Statement, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	ids := r.state.userStatements[userID]
	statements := make([]models.Statement, 0, len(ids))
	for _, id := range ids {
		statements = append(statements, r.state.statements[id])
	}

	return statements, nil
}
