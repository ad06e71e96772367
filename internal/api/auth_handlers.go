package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/librasys/librasys-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Authenticates an account and returns access and refresh tokens",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register",
		Description: "Creates a client account and logs it in immediately",
		Tags:        []string{"Authentication"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Exchanges a refresh token for new tokens",
		Tags:        []string{"Authentication"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Revokes the session behind the given refresh token",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentAccount",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/me",
		Summary:     "Get current account",
		Description: "Returns the authenticated account",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentAccount)
}

// === DTOs ===

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" doc:"Account username"`
	Password string `json:"password" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Username        string `json:"username" doc:"Desired username"`
	Password        string `json:"password" doc:"Password"`
	ConfirmPassword string `json:"confirm_password" doc:"Password, repeated"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" doc:"Refresh token"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body RefreshRequest
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body RefreshRequest
}

// AccountResponse contains account information in API responses.
type AccountResponse struct {
	Username    string    `json:"username" doc:"Username"`
	Role        string    `json:"role" doc:"Account role: client, admin, or superadmin"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation timestamp"`
	LastLoginAt time.Time `json:"last_login_at,omitzero" doc:"Last login timestamp"`
}

// AuthResponse contains authentication tokens and account info.
type AuthResponse struct {
	AccessToken  string          `json:"access_token" doc:"PASETO access token"`
	RefreshToken string          `json:"refresh_token" doc:"Refresh token"`
	TokenType    string          `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresIn    int64           `json:"expires_in" doc:"Access token expiry in seconds"`
	Account      AccountResponse `json:"account" doc:"Authenticated account"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// AccountOutput wraps a single account for Huma.
type AccountOutput struct {
	Body AccountResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username:        input.Body.Username,
		Password:        input.Body.Password,
		ConfirmPassword: input.Body.ConfirmPassword,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Refresh(ctx, service.RefreshRequest{
		RefreshToken: input.Body.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Logged out"}}, nil
}

func (s *Server) handleGetCurrentAccount(ctx context.Context, input *AuthenticatedInput) (*AccountOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	account, err := s.store.GetAccount(ctx, actor.Username)
	if err != nil {
		return nil, err
	}

	return &AccountOutput{Body: mapAccountResponse(account)}, nil
}

func mapAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    resp.ExpiresIn,
		Account:      mapAccountResponse(resp.Account),
	}
}
