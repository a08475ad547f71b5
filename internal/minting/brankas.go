package minting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fkhayef/popbarter/internal/config"
	"github.com/fkhayef/popbarter/internal/popcap"
)

// StatementRequest identifies the bank statement to pull
type StatementRequest struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

// BrankasClient reads bank statements from the Brankas Statement API
type BrankasClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBrankasClient creates a Brankas client. A nil httpClient uses http.DefaultClient.
func NewBrankasClient(cfg config.BrankasConfig, httpClient *http.Client) *BrankasClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BrankasClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// Statement fetches the transactions for an account over a date range
func (c *BrankasClient) Statement(ctx context.Context, sr StatementRequest) ([]popcap.Transaction, error) {
	body, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("encode statement request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/statement", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus("brankas", resp); err != nil {
		return nil, err
	}

	var statement struct {
		Transactions []popcap.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&statement); err != nil {
		return nil, fmt.Errorf("decode statement: %w", err)
	}
	return statement.Transactions, nil
}
