package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/handlers/render"
	"github.com/nordveil/finapi/internal/logger"
	"github.com/nordveil/finapi/internal/service/auth"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func toSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		User: userResponse{
			ID:        s.User.ID,
			Name:      s.User.Name,
			Email:     s.User.Email,
			CreatedAt: s.User.CreatedAt,
		},
		Token: s.Token.Value,
	}
}

func handleRegister(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		session, err := authService.Register(r.Context(), data.Name, data.Email, data.Password)

		switch {
		case err == nil:
			render.JSONWithStatus(w, toSessionResponse(session), http.StatusCreated)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusConflict)
		default:
			l.Error("Failed to register user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleLogin(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		session, err := authService.Login(r.Context(), data.Email, data.Password)

		switch {
		case err == nil:
			render.JSON(w, toSessionResponse(session))
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "Incorrect email or password", http.StatusUnauthorized)
		default:
			l.Error("Failed to login user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
