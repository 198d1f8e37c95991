package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerCalls int
	loginCalls    int
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	s.registerCalls++
	return &dto.RegisterResponse{Email: req.Email, FullName: req.FullName}, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	s.loginCalls++
	return &dto.LoginResponse{}, nil
}

func (s *stubAuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	return &dto.RefreshTokenResponse{}, nil
}

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

func newAuthTestApp(authService *stubAuthService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(testLogger{}))

	api := app.Group("/api")
	NewUserController(authService).RegisterRoutes(api)
	NewAuthController(authService).RegisterRoutes(api)

	return app
}

func TestRegister_MalformedBodyRejected(t *testing.T) {
	svc := &stubAuthService{}
	app := newAuthTestApp(svc)

	req := httptest.NewRequest("POST", "/api/users", strings.NewReader("{not-json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.registerCalls)

	var body serverutils.Response[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
}

func TestLogin_MalformedBodyRejected(t *testing.T) {
	svc := &stubAuthService{}
	app := newAuthTestApp(svc)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.loginCalls)
}

func TestRegister_ValidBodyAccepted(t *testing.T) {
	svc := &stubAuthService{}
	app := newAuthTestApp(svc)

	payload := `{"email":"a@x.com","password":"password1","fullName":"A"}`
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, svc.registerCalls)
}
