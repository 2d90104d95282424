package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/nordveil/finapi/internal/handlers/middleware"
	"github.com/nordveil/finapi/internal/logger"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/service/auth"
	"github.com/nordveil/finapi/internal/service/statement"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	statementService statementService,
	statementQuery statementQuery,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	apiv1 := http.NewServeMux()

	apiv1.Handle("POST /users", handleRegister(authService, logger))
	apiv1.Handle("POST /sessions", handleLogin(authService, logger))

	apiv1.Handle("GET /profile", withAuth(handleProfile()))

	apiv1.Handle("POST /statements/deposit", withAuth(handleCreateStatement(statementService, models.StatementDeposit, logger)))
	apiv1.Handle("POST /statements/withdraw", withAuth(handleCreateStatement(statementService, models.StatementWithdraw, logger)))
	apiv1.Handle("GET /statements/balance", withAuth(handleBalance(statementQuery, logger)))
	apiv1.Handle("GET /statements/{statementID}", withAuth(handleGetStatement(statementQuery, logger)))

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", apiv1))

	handler := chain(root,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type authService interface {
	// Register new user and start a session
	// Has to return apperrors.ErrUserAlreadyExists if the email is taken
	Register(ctx context.Context, name string, email string, password string) (auth.Session, error)

	// Login user with email and password
	// Has to return apperrors.ErrUserNotFound on unknown email or wrong password
	Login(ctx context.Context, email string, password string) (auth.Session, error)

	// Get request and return user if it authenticated or error
	GetUserFromRequest(ctx context.Context, r *http.Request) (models.User, error)
}

type statementService interface {
	CreateStatement(ctx context.Context, req statement.CreateStatementRequest) (models.Statement, error)
}

type statementQuery interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (models.Balance, error)
	GetStatement(ctx context.Context, userID uuid.UUID, statementID uuid.UUID) (models.Statement, error)
}
