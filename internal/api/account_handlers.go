package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/librasys/librasys-server/internal/domain"
	"github.com/librasys/librasys-server/internal/service"
)

func (s *Server) registerAccountRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAccounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns all accounts. Requires super admin rights.",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAccounts)

	huma.Register(s.api, huma.Operation{
		OperationID: "createAccount",
		Method:      http.MethodPost,
		Path:        "/api/v1/accounts",
		Summary:     "Create account",
		Description: "Creates an account with any role. Requires super admin rights.",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateAccount)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAccount",
		Method:      http.MethodDelete,
		Path:        "/api/v1/accounts/{username}",
		Summary:     "Delete account",
		Description: "Removes an account and its sessions. You cannot delete your own account. Requires super admin rights.",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteAccount)
}

// === DTOs ===

// CreateAccountRequest is the request body for admin account creation.
type CreateAccountRequest struct {
	Username string `json:"username" doc:"Username"`
	Password string `json:"password" doc:"Password"`
	Role     string `json:"role" doc:"Role: client, admin, or superadmin"`
}

// CreateAccountInput wraps the create account request for Huma.
type CreateAccountInput struct {
	AuthenticatedInput
	Body CreateAccountRequest
}

// AccountUsernameInput identifies an account by path parameter.
type AccountUsernameInput struct {
	AuthenticatedInput
	Username string `path:"username" doc:"Username"`
}

// AccountListOutput wraps a list of accounts for Huma.
type AccountListOutput struct {
	Body struct {
		Accounts []AccountResponse `json:"accounts" doc:"All accounts"`
		Total    int               `json:"total" doc:"Number of accounts"`
	}
}

// === Handlers ===

func (s *Server) handleListAccounts(ctx context.Context, input *AuthenticatedInput) (*AccountListOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	accounts, err := s.services.Account.List(ctx, actor)
	if err != nil {
		return nil, err
	}

	out := &AccountListOutput{}
	out.Body.Accounts = make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out.Body.Accounts = append(out.Body.Accounts, mapAccountResponse(account))
	}
	out.Body.Total = len(out.Body.Accounts)
	return out, nil
}

func (s *Server) handleCreateAccount(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	account, err := s.services.Account.Create(ctx, actor, service.CreateAccountRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
		Role:     domain.Role(input.Body.Role),
	})
	if err != nil {
		return nil, err
	}

	return &AccountOutput{Body: mapAccountResponse(account)}, nil
}

func (s *Server) handleDeleteAccount(ctx context.Context, input *AccountUsernameInput) (*MessageOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Account.Delete(ctx, actor, input.Username); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Account deleted"}}, nil
}

func mapAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		Username:    account.Username,
		Role:        string(account.Role),
		CreatedAt:   account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
	}
}
