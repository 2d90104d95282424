// Package memory keeps every record in process memory. It backs the service
// and handler tests and lets the server run without a database.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/repository"
)

// state is shared between the repos of one Storage
type state struct {
	mu sync.Mutex

	users        map[uuid.UUID]models.User
	usersByEmail map[string]uuid.UUID

	statements map[uuid.UUID]models.Statement
	// per user statement ids in insertion order
	userStatements map[uuid.UUID][]uuid.UUID
}

type Storage struct {
	state *state

	// serializes InTx calls, see comment there
	txMu *sync.Mutex
}

func NewStorage() repository.Storage {
	return &Storage{
		state: &state{
			users:          map[uuid.UUID]models.User{},
			usersByEmail:   map[string]uuid.UUID{},
			statements:     map[uuid.UUID]models.Statement{},
			userStatements: map[uuid.UUID][]uuid.UUID{},
		},
		txMu: &sync.Mutex{},
	}
}

func (s *Storage) User() repository.UserRepo {
	return &UserRepo{state: s.state}
}

func (s *Storage) Statement() repository.StatementRepo {
	return &StatementRepo{state: s.state}
}

// InTx runs fn with all other transactions excluded. Unlike the postgres
// backend there is no rollback: callers must order writes so the state stays
// consistent if fn fails (the services do a single write as the last step).
func (s *Storage) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(s)
}
