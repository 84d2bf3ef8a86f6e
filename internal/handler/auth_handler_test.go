package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/odwoodruff/pet-training-service/internal/dto"
	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn func(ctx context.Context, in service.RegisterInput) (*service.Profile, error)
	loginFn    func(ctx context.Context, email, password string) (*service.Profile, *models.AuthSession, error)
	logoutFn   func(ctx context.Context, token string) error
	getFn      func(ctx context.Context, id uint) (*service.Profile, error)
	updateFn   func(ctx context.Context, id uint, in service.UpdateProfileInput) (*service.Profile, error)
	deleteFn   func(ctx context.Context, id uint) error
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.Profile, error) {
	return m.registerFn(ctx, in)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.Profile, *models.AuthSession, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.logoutFn(ctx, token)
}
func (m *mockAuthService) GetProfile(ctx context.Context, id uint) (*service.Profile, error) {
	return m.getFn(ctx, id)
}
func (m *mockAuthService) UpdateProfile(ctx context.Context, id uint, in service.UpdateProfileInput) (*service.Profile, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockAuthService) DeleteProfile(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

func sampleProfile() *service.Profile {
	return &service.Profile{
		Customer: &models.Customer{
			ID:        1,
			FirstName: "Ada",
			Email:     "a@x.com",
		},
		Role: service.RoleCustomer,
	}
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

// --- Tests ---

func TestRegister_Handler_Created(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in service.RegisterInput) (*service.Profile, error) {
			assert.Equal(t, "a@x.com", in.Email)
			return sampleProfile(), nil
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"first_name":"Ada","email":"a@x.com","password":"pw1"}`)
	c := e.NewContext(req, rec)

	err := NewAuthHandler(svc).Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.User.ID)
	assert.Equal(t, service.RoleCustomer, resp.User.Role)
	assert.Empty(t, resp.Token)
	// The credential never appears in the response body.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_Handler_Conflict(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in service.RegisterInput) (*service.Profile, error) {
			return nil, service.ErrEmailTaken
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"first_name":"Ada","email":"a@x.com","password":"pw1"}`)
	c := e.NewContext(req, rec)

	err := NewAuthHandler(svc).Register(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLogin_Handler_Success(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*service.Profile, *models.AuthSession, error) {
			return sampleProfile(), &models.AuthSession{
				Token:      "11111111-2222-3333-4444-555555555555",
				CustomerID: 1,
				ExpiresAt:  expires,
			}, nil
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"pw1"}`)
	c := e.NewContext(req, rec)

	err := NewAuthHandler(svc).Login(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
}

func TestLogin_Handler_Unauthorized(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*service.Profile, *models.AuthSession, error) {
			return nil, nil, service.ErrInvalidCredentials
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"wrong"}`)
	c := e.NewContext(req, rec)

	err := NewAuthHandler(svc).Login(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "invalid email or password", he.Message)
}

func TestGetProfile_Handler_NotFound(t *testing.T) {
	svc := &mockAuthService{
		getFn: func(ctx context.Context, id uint) (*service.Profile, error) {
			return nil, service.ErrCustomerNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := NewAuthHandler(svc).GetProfile(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestUpdateProfile_Handler_PartialBody(t *testing.T) {
	svc := &mockAuthService{
		updateFn: func(ctx context.Context, id uint, in service.UpdateProfileInput) (*service.Profile, error) {
			assert.Equal(t, uint(1), id)
			require.NotNil(t, in.Phone)
			assert.Equal(t, "555-0199", *in.Phone)
			assert.Nil(t, in.Email)
			assert.Nil(t, in.Password)
			return sampleProfile(), nil
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPut, "/api/auth/profile/1", `{"phone":"555-0199"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := NewAuthHandler(svc).UpdateProfile(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
