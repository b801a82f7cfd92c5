package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmarket/market-api/internal/application/account"
	"github.com/freshmarket/market-api/internal/application/identity"
	"github.com/freshmarket/market-api/internal/domain"
	"github.com/freshmarket/market-api/internal/domain/entity"
	apphttp "github.com/freshmarket/market-api/internal/interfaces/http"
	"github.com/freshmarket/market-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

type memHistoryRepo struct{}

func (memHistoryRepo) Append(_ context.Context, _ *entity.PasswordHistory) error { return nil }
func (memHistoryRepo) ListByUser(_ context.Context, _ string, _ int) ([]*entity.PasswordHistory, error) {
	return nil, nil
}

type memNotifier struct{}

func (memNotifier) Enqueue(_ context.Context, _, _, _ string) error { return nil }

// buildAccountApp wires the real handler over the real orchestrator with
// in-memory stores, mounted on the public account routes.
func buildAccountApp(t *testing.T) (*fiber.App, *memUserRepo) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "confirmation_email.html"), []byte("{{confirmationLink}}"), 0o644))

	users := &memUserRepo{byEmail: map[string]*entity.User{}}
	idn := identity.NewService(users, memHistoryRepo{}, identity.Config{
		Secret:             testJWTSecret,
		Issuer:             testIssuer,
		SessionExpMinutes:  testExpMin,
		EmailTokenExpHours: 24,
	})
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := account.NewUseCase(idn, users, memNotifier{}, account.Config{
		PublicURL:   "http://localhost:3000",
		FrontendURL: "http://localhost:5173",
		TemplateDir: dir,
	}, account.Options{AssignRole: true, SendConfirmationEmail: true}, log)

	h := apphttp.NewAccountHandler(uc)
	app := fiber.New()
	accounts := app.Group("/api/accounts")
	accounts.Post("/register", h.Register)
	accounts.Get("/confirmemail", h.ConfirmEmail)
	accounts.Post("/login", h.Login)
	accounts.Post("/forgotpassword", h.ForgotPassword)
	accounts.Post("/resetpassword", h.ResetPassword)
	return app, users
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Status mapping per failure class
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountRoutes_RegisterSuccess_200(t *testing.T) {
	app, _ := buildAccountApp(t)
	resp := postJSON(t, app, "/api/accounts/register", map[string]string{
		"username": "shopper",
		"email":    "shopper@freshmarket.test",
		"password": "Abc123!x",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, account.MsgRegistered, body["message"])
}

func TestAccountRoutes_RegisterWeakPassword_400WithErrorList(t *testing.T) {
	app, _ := buildAccountApp(t)
	resp := postJSON(t, app, "/api/accounts/register", map[string]string{
		"username": "shopper",
		"email":    "shopper@freshmarket.test",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok, "validation failures respond with an errors array")
	assert.Len(t, errs, 4)
}

func TestAccountRoutes_LoginUnknownEmail_401(t *testing.T) {
	app, _ := buildAccountApp(t)
	resp := postJSON(t, app, "/api/accounts/login", map[string]string{
		"email":    "nobody@freshmarket.test",
		"password": "Abc123!x",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, account.MsgCredentialsInvalid, body["message"])
}

func TestAccountRoutes_LoginUnconfirmed_401(t *testing.T) {
	app, _ := buildAccountApp(t)
	resp := postJSON(t, app, "/api/accounts/register", map[string]string{
		"username": "shopper",
		"email":    "shopper@freshmarket.test",
		"password": "Abc123!x",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/accounts/login", map[string]string{
		"email":    "shopper@freshmarket.test",
		"password": "Abc123!x",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, account.MsgEmailNotConfirmed, body["message"])
}

func TestAccountRoutes_ConfirmEmailMissingParams_400(t *testing.T) {
	app, _ := buildAccountApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/accounts/confirmemail", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, account.MsgEmailTokenRequired, body["message"])
}

func TestAccountRoutes_ForgotPasswordUnknownEmail_400SameAsUnconfirmed(t *testing.T) {
	app, _ := buildAccountApp(t)
	resp := postJSON(t, app, "/api/accounts/forgotpassword", map[string]string{
		"email": "nobody@freshmarket.test",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, account.MsgForgotFailed, body["message"])
}

func TestAccountRoutes_MalformedJSON_400(t *testing.T) {
	app, _ := buildAccountApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/accounts/login", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
