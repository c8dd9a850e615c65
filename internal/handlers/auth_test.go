package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"DTR_BACK-END/internal/config"
	"DTR_BACK-END/internal/dto"
	"DTR_BACK-END/internal/facerec"
	"DTR_BACK-END/internal/logging"
	"DTR_BACK-END/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{QueryTimeout: time.Second},
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			SessionTTL: time.Hour,
			CookieName: "authToken",
		},
	}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// The validation paths below are rejected before any query runs, so the
// handlers are constructed without a database.
func newTestAuthHandler() *AuthHandler {
	return NewAuthHandler(nil, testConfig(), testLogger())
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterValidation(t *testing.T) {
	h := newTestAuthHandler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			"malformed json",
			`{"username":`,
			http.StatusBadRequest,
		},
		{
			"missing fields",
			`{"username":"ann","email":"ann@example.com"}`,
			http.StatusBadRequest,
		},
		{
			"missing face descriptor",
			`{"username":"ann","email":"ann@example.com","password":"secret1","confirmPassword":"secret1"}`,
			http.StatusBadRequest,
		},
		{
			"password mismatch",
			`{"username":"ann","email":"ann@example.com","password":"secret1","confirmPassword":"secret2","faceDescriptor":"[0.1]"}`,
			http.StatusBadRequest,
		},
		{
			"password too short",
			`{"username":"ann","email":"ann@example.com","password":"abc","confirmPassword":"abc","faceDescriptor":"[0.1]"}`,
			http.StatusBadRequest,
		},
		{
			"descriptor wrong length",
			`{"username":"ann","email":"ann@example.com","password":"secret1","confirmPassword":"secret1","faceDescriptor":"[0.1,0.2]"}`,
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/api/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRegisterRejectsGet(t *testing.T) {
	h := newTestAuthHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/register", nil)
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	h := newTestAuthHandler()

	rec := postJSON(t, h.Login, "/api/auth/login", `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Login, "/api/auth/login", `{"email": 42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newTestAuthHandler()

	rec := postJSON(t, h.Logout, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "authToken", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGetProfileWithoutSession(t *testing.T) {
	h := newTestAuthHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func registerBody(t *testing.T) string {
	t.Helper()
	descriptor := make(facerec.Descriptor, facerec.DescriptorSize)
	body, err := json.Marshal(dto.RegisterRequest{
		Username:        "ann",
		Email:           "ann@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FaceDescriptor:  descriptor.String(),
	})
	require.NoError(t, err)
	return string(body)
}

func TestRegisterNewUser(t *testing.T) {
	h := NewAuthHandler(&fakeDB{}, testConfig(), testLogger())

	rec := postJSON(t, h.Register, "/api/auth/register", registerBody(t))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration successful")
}

func TestRegisterExistingUserConflict(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(string, ...any) pgx.Row {
			return scanRow{fill: func(dest ...any) error {
				*(dest[0].(*uuid.UUID)) = uuid.New()
				return nil
			}}
		},
	}
	h := NewAuthHandler(db, testConfig(), testLogger())

	rec := postJSON(t, h.Register, "/api/auth/register", registerBody(t))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestRegisterLookupFailure(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(string, ...any) pgx.Row {
			return errRow{errors.New("connection refused")}
		},
	}
	h := NewAuthHandler(db, testConfig(), testLogger())

	rec := postJSON(t, h.Register, "/api/auth/register", registerBody(t))

	// a store failure is not a conflict
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

// loginDB serves one stored account keyed by email.
func loginDB(t *testing.T, email, password string) *fakeDB {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()
	return &fakeDB{
		queryRowFunc: func(_ string, args ...any) pgx.Row {
			if args[0] != email {
				return errRow{pgx.ErrNoRows}
			}
			return scanRow{fill: func(dest ...any) error {
				*(dest[0].(*uuid.UUID)) = id
				*(dest[1].(*string)) = "ann"
				*(dest[2].(*string)) = email
				*(dest[3].(*string)) = string(hash)
				return nil
			}}
		},
	}
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	h := NewAuthHandler(loginDB(t, "ann@example.com", "secret1"), testConfig(), testLogger())

	rec := postJSON(t, h.Login, "/api/auth/login", `{"email":"ann@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ann")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "authToken", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	h := NewAuthHandler(loginDB(t, "ann@example.com", "secret1"), testConfig(), testLogger())

	unknownEmail := postJSON(t, h.Login, "/api/auth/login", `{"email":"bob@example.com","password":"secret1"}`)
	wrongPassword := postJSON(t, h.Login, "/api/auth/login", `{"email":"ann@example.com","password":"nope999"}`)

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestLoginLookupFailure(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(string, ...any) pgx.Row {
			return errRow{errors.New("pool exhausted")}
		},
	}
	h := NewAuthHandler(db, testConfig(), testLogger())

	rec := postJSON(t, h.Login, "/api/auth/login", `{"email":"ann@example.com","password":"secret1"}`)

	// a store failure must not masquerade as bad credentials
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "incorrect")
}

func TestGetProfileLookupFailure(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(string, ...any) pgx.Row {
			return errRow{errors.New("connection refused")}
		},
	}
	h := NewAuthHandler(db, testConfig(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req = req.WithContext(utils.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
