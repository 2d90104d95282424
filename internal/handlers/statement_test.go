package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type statementBody struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

type balanceBody struct {
	Balance    float64         `json:"balance"`
	Statements []statementBody `json:"statements"`
}

// sendJSON performs a request with bearer token and returns status code with raw body
func sendJSON(t *testing.T, method string, url string, token string, data string) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if data != "" {
		reqBody = strings.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, body
}

func Test_StatementHandlers(t *testing.T) {
	t.Parallel()

	t.Run("deposit ok", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": 100.50, "description": "Salary"}`)

		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))

		var statement statementBody
		require.NoError(t, json.Unmarshal(body, &statement))
		require.NotEmpty(t, statement.ID)
		require.Equal(t, "deposit", statement.Kind)
		require.InDelta(t, 100.50, statement.Amount, 0.0001)
		require.Equal(t, "Salary", statement.Description)
		require.NotEmpty(t, statement.CreatedAt)
	})

	t.Run("deposit negative amount fails", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": -10, "description": "Sneaky"}`)

		require.Equalf(t, http.StatusBadRequest, code, "not expected code. Body: %s", string(body))
		require.JSONEq(t, `
			{
				"error": "service_error",
				"message": "Amount must be positive"
			}`, string(body))
	})

	t.Run("deposit without description fails", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": 10}`)

		require.Equalf(t, http.StatusBadRequest, code, "not expected code. Body: %s", string(body))
		require.Contains(t, string(body), "validation_failed")
	})

	t.Run("deposit without token fails", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", "",
			`{"amount": 10, "description": "No auth"}`)

		require.Equalf(t, http.StatusUnauthorized, code, "not expected code. Body: %s", string(body))
	})

	t.Run("withdraw insufficient funds fails", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": 100, "description": "Salary"}`)
		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))

		code, body = sendJSON(t, "POST", srv.URL+"/api/v1/statements/withdraw", session.Token.Value,
			`{"amount": 100.01, "description": "Too much"}`)

		require.Equalf(t, http.StatusPaymentRequired, code, "not expected code. Body: %s", string(body))
		require.JSONEq(t, `
			{
				"error": "service_error",
				"message": "Insufficient funds"
			}`, string(body))
	})

	t.Run("withdraw whole balance ok", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": 100, "description": "Salary"}`)
		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))

		code, body = sendJSON(t, "POST", srv.URL+"/api/v1/statements/withdraw", session.Token.Value,
			`{"amount": 100, "description": "All of it"}`)
		require.Equalf(t, http.StatusCreated, code, "withdraw equal to balance should pass. Body: %s", string(body))

		code, body = sendJSON(t, "GET", srv.URL+"/api/v1/statements/balance", session.Token.Value, "")
		require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", string(body))

		var balance balanceBody
		require.NoError(t, json.Unmarshal(body, &balance))
		require.InDelta(t, 0, balance.Balance, 0.0001)
	})

	t.Run("balance folds statements in order", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": 100, "description": "Salary"}`)
		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))
		code, body = sendJSON(t, "POST", srv.URL+"/api/v1/statements/withdraw", session.Token.Value,
			`{"amount": 40, "description": "Groceries"}`)
		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))
		code, body = sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": 15.25, "description": "Refund"}`)
		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))

		code, body = sendJSON(t, "GET", srv.URL+"/api/v1/statements/balance", session.Token.Value, "")
		require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", string(body))

		var balance balanceBody
		require.NoError(t, json.Unmarshal(body, &balance))
		require.InDelta(t, 75.25, balance.Balance, 0.0001)
		require.Len(t, balance.Statements, 3)
		require.Equal(t, "Salary", balance.Statements[0].Description)
		require.Equal(t, "Groceries", balance.Statements[1].Description)
		require.Equal(t, "Refund", balance.Statements[2].Description)
	})

	t.Run("get statement ok", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", session.Token.Value,
			`{"amount": 100, "description": "Salary"}`)
		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))

		var created statementBody
		require.NoError(t, json.Unmarshal(body, &created))

		code, body = sendJSON(t, "GET", srv.URL+"/api/v1/statements/"+created.ID, session.Token.Value, "")
		require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", string(body))

		var got statementBody
		require.NoError(t, json.Unmarshal(body, &got))
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, "deposit", got.Kind)
		require.Equal(t, "Salary", got.Description)
	})

	t.Run("get statement of another user fails", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		owner, err := authService.Register(t.Context(), "Owner", "owner@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)
		other, err := authService.Register(t.Context(), "Other", "other@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "POST", srv.URL+"/api/v1/statements/deposit", owner.Token.Value,
			`{"amount": 100, "description": "Salary"}`)
		require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", string(body))

		var created statementBody
		require.NoError(t, json.Unmarshal(body, &created))

		code, body = sendJSON(t, "GET", srv.URL+"/api/v1/statements/"+created.ID, other.Token.Value, "")

		require.Equalf(t, http.StatusNotFound, code, "foreign statement should look missing. Body: %s", string(body))
		require.JSONEq(t, `
			{
				"error": "service_error",
				"message": "Statement not found"
			}`, string(body))
	})

	t.Run("get statement with malformed id fails", func(t *testing.T) {
		t.Parallel()
		srv, authService := newTestServer(t)
		session, err := authService.Register(t.Context(), "Nord Veil", "nord@veil.dev", "StrongEnoughPassword")
		require.NoError(t, err)

		code, body := sendJSON(t, "GET", srv.URL+"/api/v1/statements/not-a-uuid", session.Token.Value, "")

		require.Equalf(t, http.StatusBadRequest, code, "not expected code. Body: %s", string(body))
		require.JSONEq(t, `
			{
				"error": "service_error",
				"message": "Invalid statement id"
			}`, string(body))
	})
}
