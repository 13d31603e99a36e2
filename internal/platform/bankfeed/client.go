package bankfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Client lists linked bank accounts from the bank aggregation feed:
// GET {baseURL}/accounts with the user's access token as a bearer credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client implements the BankLinkProvider port
var _ portssvc.BankLinkProvider = (*Client)(nil)

// NewClient creates a bank feed client. timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type feedAccount struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Type    string           `json:"type"`
	Subtype string           `json:"subtype"`
	Mask    string           `json:"mask"`
	Balance *decimal.Decimal `json:"balance"`
}

type accountsResponse struct {
	Accounts []feedAccount `json:"accounts"`
}

// ListLinkedAccounts returns the accounts behind the user's bank connection.
func (c *Client) ListLinkedAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bank feed request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: bank feed request failed: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: bank feed returned status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	var body accountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode bank feed response: %v", apperrors.ErrExternalService, err)
	}

	accounts := make([]domain.BankAccount, len(body.Accounts))
	for i, a := range body.Accounts {
		accounts[i] = domain.BankAccount{
			ID:      a.ID,
			Name:    a.Name,
			Type:    a.Type,
			Subtype: a.Subtype,
			Mask:    a.Mask,
			Balance: a.Balance,
		}
	}
	return accounts, nil
}

// SandboxProvider serves a fixed set of bank accounts for local development
// when no feed URL is configured.
type SandboxProvider struct{}

var _ portssvc.BankLinkProvider = (*SandboxProvider)(nil)

func (SandboxProvider) ListLinkedAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error) {
	if accessToken == "" {
		return nil, apperrors.ErrBankNotLinked
	}
	checking := decimal.NewFromFloat(2543.55)
	savings := decimal.NewFromFloat(11250.00)
	return []domain.BankAccount{
		{ID: "sandbox-checking", Name: "Sandbox Checking", Type: "depository", Subtype: "checking", Mask: "0000", Balance: &checking},
		{ID: "sandbox-savings", Name: "Sandbox Savings", Type: "depository", Subtype: "savings", Mask: "1111", Balance: &savings},
	}, nil
}
