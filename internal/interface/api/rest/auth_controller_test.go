package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pdf-collab-api/internal/application/services"
	domain "pdf-collab-api/internal/domain/user"
	userDB "pdf-collab-api/internal/infrastructure/db/postgres/user"
	"pdf-collab-api/internal/interface/api/rest/dto/auth"
)

type fakeAuthService struct {
	SignupFunc func(ctx context.Context, name, email, password string) (*domain.User, error)
	LoginFunc  func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if f.SignupFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SignupFunc(ctx, name, email, password)
}
func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.LoginFunc == nil {
		return "", nil, errors.New("not used")
	}
	return f.LoginFunc(ctx, email, password)
}

func newAuthRouter(t *testing.T, as *fakeAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	ac := &AuthController{
		logger:      zap.NewNop(),
		authService: as,
	}
	r.POST("/signup", ac.SignupHandler)
	r.POST("/login", ac.LoginHandler)
	return r
}

func doPOST(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var b []byte
	switch v := body.(type) {
	case string:
		b = []byte(v)
	default:
		var err error
		b, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

func TestAuthController_SignupHandler(t *testing.T) {
	okService := &fakeAuthService{
		SignupFunc: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			return &domain.User{UUID: uuid.New(), Name: name, Email: email}, nil
		},
	}

	tests := []struct {
		name     string
		body     any
		service  *fakeAuthService
		wantCode int
		wantMsg  string
	}{
		{
			name:     "invalid JSON",
			body:     "{bad json",
			service:  okService,
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid json",
		},
		{
			name:     "missing name",
			body:     auth.SignupRequest{Email: "a@x.com", Password: "p"},
			service:  okService,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Missing fields",
		},
		{
			name:     "missing email",
			body:     auth.SignupRequest{Name: "A", Password: "p"},
			service:  okService,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Missing fields",
		},
		{
			name:     "missing password",
			body:     auth.SignupRequest{Name: "A", Email: "a@x.com"},
			service:  okService,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Missing fields",
		},
		{
			name:     "duplicate email",
			body:     auth.SignupRequest{Name: "A", Email: "a@x.com", Password: "p"},
			service: &fakeAuthService{
				SignupFunc: func(ctx context.Context, name, email, password string) (*domain.User, error) {
					return nil, userDB.ErrEmailAlreadyExists
				},
			},
			wantCode: http.StatusConflict,
			wantMsg:  "User already exists",
		},
		{
			name:     "created",
			body:     auth.SignupRequest{Name: "A", Email: "a@x.com", Password: "p"},
			service:  okService,
			wantCode: http.StatusCreated,
			wantMsg:  "User created successfully",
		},
		{
			name:     "repository failure",
			body:     auth.SignupRequest{Name: "A", Email: "a@x.com", Password: "p"},
			service: &fakeAuthService{
				SignupFunc: func(ctx context.Context, name, email, password string) (*domain.User, error) {
					return nil, errors.New("db down")
				},
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(t, tt.service)
			rr := doPOST(t, r, "/signup", tt.body)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, rr)["message"])
		})
	}
}

func TestAuthController_SignupHandler_NormalizesEmail(t *testing.T) {
	var gotEmail string
	as := &fakeAuthService{
		SignupFunc: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			gotEmail = email
			return &domain.User{UUID: uuid.New()}, nil
		},
	}

	r := newAuthRouter(t, as)
	rr := doPOST(t, r, "/signup", auth.SignupRequest{Name: "A", Email: "  A@X.Com ", Password: "p"})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "a@x.com", gotEmail)
}

func TestAuthController_LoginHandler(t *testing.T) {
	known := &domain.User{UUID: uuid.New(), Name: "A", Email: "a@x.com"}

	t.Run("success returns token, name and email", func(t *testing.T) {
		as := &fakeAuthService{
			LoginFunc: func(ctx context.Context, email, password string) (string, *domain.User, error) {
				return "signed-token", known, nil
			},
		}
		r := newAuthRouter(t, as)
		rr := doPOST(t, r, "/login", auth.LoginRequest{Email: "a@x.com", Password: "p"})

		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "signed-token", body["token"])
		assert.Equal(t, "A", body["name"])
		assert.Equal(t, "a@x.com", body["email"])
	})

	t.Run("bad credentials yield one indistinguishable body", func(t *testing.T) {
		as := &fakeAuthService{
			LoginFunc: func(ctx context.Context, email, password string) (string, *domain.User, error) {
				return "", nil, services.ErrInvalidCredentials
			},
		}
		r := newAuthRouter(t, as)

		wrongPass := doPOST(t, r, "/login", auth.LoginRequest{Email: "a@x.com", Password: "nope"})
		noUser := doPOST(t, r, "/login", auth.LoginRequest{Email: "ghost@x.com", Password: "p"})

		require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		require.Equal(t, http.StatusUnauthorized, noUser.Code)
		assert.Equal(t, wrongPass.Body.String(), noUser.Body.String())
		assert.Equal(t, "Invalid email or password", decodeBody(t, wrongPass)["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		r := newAuthRouter(t, &fakeAuthService{})
		rr := doPOST(t, r, "/login", auth.LoginRequest{Email: "a@x.com"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		as := &fakeAuthService{
			LoginFunc: func(ctx context.Context, email, password string) (string, *domain.User, error) {
				return "", nil, errors.New("db down")
			},
		}
		r := newAuthRouter(t, as)
		rr := doPOST(t, r, "/login", auth.LoginRequest{Email: "a@x.com", Password: "p"})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
