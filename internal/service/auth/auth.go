package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/service/auth/tokenmanager"
)

type userService interface {
	CreateUser(ctx context.Context, name string, email string, password string) (models.User, error)
	Authenticate(ctx context.Context, email string, password string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

// Session is what a successful register or login yields
type Session struct {
	User  models.User
	Token models.IssuedToken
}

type AuthService struct {
	token *tokenmanager.TokenManager
	users userService
}

func NewService(token *tokenmanager.TokenManager, users userService) (*AuthService, error) {
	if token == nil || users == nil {
		return nil, fmt.Errorf("token manager and user service must not be nil")
	}

	return &AuthService{
		token: token,
		users: users,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, name string, email string, password string) (Session, error) {
	user, err := s.users.CreateUser(ctx, name, email, password)
	if err != nil {
		return Session{}, err
	}

	return s.newSession(user)
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (Session, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	return s.newSession(user)
}

// GetUserFromRequest authenticates the request by its bearer token
func (s *AuthService) GetUserFromRequest(ctx context.Context, r *http.Request) (models.User, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return models.User{}, apperrors.ErrTokenInvalid
	}

	userID, err := s.token.Parse(token)
	if err != nil {
		return models.User{}, apperrors.ErrTokenInvalid
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, apperrors.ErrTokenInvalid
	}

	return user, nil
}

func (s *AuthService) newSession(user models.User) (Session, error) {
	token, err := s.token.Generate(user)
	if err != nil {
		return Session{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return Session{User: user, Token: token}, nil
}
