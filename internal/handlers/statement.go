package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nordveil/finapi/internal/apperrors"
	"github.com/nordveil/finapi/internal/handlers/render"
	"github.com/nordveil/finapi/internal/handlers/userctx"
	"github.com/nordveil/finapi/internal/logger"
	"github.com/nordveil/finapi/internal/models"
	"github.com/nordveil/finapi/internal/service/statement"
)

type statementResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toStatementResponse(s models.Statement) statementResponse {
	amount, _ := s.Amount.Float64()
	return statementResponse{
		ID:          s.ID,
		Kind:        s.Kind,
		Amount:      amount,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func handleCreateStatement(statementService statementService, kind string, l logger.Logger) http.Handler {
	type request struct {
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		if !data.Amount.IsPositive() {
			render.ServiceError(w, "Amount must be positive", http.StatusBadRequest)
			return
		}

		created, err := statementService.CreateStatement(r.Context(), statement.CreateStatementRequest{
			UserID:      user.ID,
			Kind:        kind,
			Amount:      data.Amount,
			Description: data.Description,
		})

		switch {
		case err == nil:
			render.JSONWithStatus(w, toStatementResponse(created), http.StatusCreated)
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			render.ServiceError(w, "Insufficient funds", http.StatusPaymentRequired)
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrStatementInvalid):
			render.ServiceError(w, "Invalid statement", http.StatusBadRequest)
		default:
			l.Error("Failed to create statement", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleBalance(statementQuery statementQuery, l logger.Logger) http.Handler {
	type response struct {
		Balance    float64             `json:"balance"`
		Statements []statementResponse `json:"statements"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		balance, err := statementQuery.GetBalance(r.Context(), user.ID)

		switch {
		case err == nil:
			current, _ := balance.Current.Float64()
			statements := make([]statementResponse, 0, len(balance.Statements))
			for _, s := range balance.Statements {
				statements = append(statements, toStatementResponse(s))
			}
			render.JSON(w, response{Balance: current, Statements: statements})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to get balance", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleGetStatement(statementQuery statementQuery, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		statementID, err := uuid.Parse(r.PathValue("statementID"))
		if err != nil {
			render.ServiceError(w, "Invalid statement id", http.StatusBadRequest)
			return
		}

		found, err := statementQuery.GetStatement(r.Context(), user.ID, statementID)

		switch {
		case err == nil:
			render.JSON(w, toStatementResponse(found))
		case errors.Is(err, apperrors.ErrStatementNotFound):
			render.ServiceError(w, "Statement not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to get statement", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
