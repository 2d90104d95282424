package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/repository"
)

type UserRepo struct {
	state *state
}

func (r *UserRepo) CreateUser(ctx context.Context, arg repository.CreateUserParams) (models.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if _, ok := r.state.usersByEmail[arg.Email]; ok {
		return models.User{}, apperrors.ErrUserAlreadyExists
	}

	user := models.User{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		Name:           arg.Name,
		Email:          arg.Email,
		HashedPassword: arg.HashedPassword,
	}

	r.state.users[user.ID] = user
	r.state.usersByEmail[user.Email] = user.ID

	return user, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	user, ok := r.state.users[userID]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}

	return user, nil
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	userID, ok := r.state.usersByEmail[email]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}

	return r.state.users[userID], nil
}
