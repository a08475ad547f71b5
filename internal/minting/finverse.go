package minting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/fkhayef/popbarter/internal/config"
	"github.com/fkhayef/popbarter/internal/popcap"
)

var finverseScopes = []string{"accounts", "transactions"}

// FinverseClient pulls account transactions through Finverse's OAuth flow.
// The client secret never leaves the server.
type FinverseClient struct {
	oauth      *oauth2.Config
	baseURL    string
	httpClient *http.Client
}

// NewFinverseClient creates a Finverse client. A nil httpClient uses http.DefaultClient.
func NewFinverseClient(cfg config.FinverseConfig, httpClient *http.Client) *FinverseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &FinverseClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       finverseScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/auth/authorize",
				TokenURL:  base + "/auth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		baseURL:    base,
		httpClient: httpClient,
	}
}

// AuthURL returns the consent screen URL the user is sent to
func (c *FinverseClient) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

type finverseAccounts struct {
	Accounts []json.RawMessage `json:"accounts"`
}

type finverseTransactions struct {
	Transactions []popcap.Transaction `json:"transactions"`
}

// AccountTransactions exchanges code for a token and reads the first account's transactions.
// The account is returned as Finverse sent it.
func (c *FinverseClient) AccountTransactions(ctx context.Context, code string) (json.RawMessage, []popcap.Transaction, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("exchange code: %w", err)
	}
	client := c.oauth.Client(ctx, token)

	var accounts finverseAccounts
	if err := c.getJSON(ctx, client, c.baseURL+"/accounts", &accounts); err != nil {
		return nil, nil, fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts.Accounts) == 0 {
		return nil, nil, ErrNoAccounts
	}
	account := accounts.Accounts[0]

	var ref struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(account, &ref); err != nil || ref.ID == "" {
		return nil, nil, fmt.Errorf("account has no id")
	}

	var txs finverseTransactions
	path := c.baseURL + "/accounts/" + url.PathEscape(ref.ID) + "/transactions"
	if err := c.getJSON(ctx, client, path, &txs); err != nil {
		return nil, nil, fmt.Errorf("list transactions: %w", err)
	}

	return account, txs.Transactions, nil
}

func (c *FinverseClient) getJSON(ctx context.Context, client *http.Client, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus("finverse", resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
