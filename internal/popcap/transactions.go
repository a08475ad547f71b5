package popcap

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// ConservativeModifier is the haircut applied to transaction-derived caps.
var ConservativeModifier = decimal.RequireFromString("0.7")

// Transaction is one signed ledger movement from an external data source.
// Inflows are positive, outflows negative. Amount is kept raw so a single
// malformed entry can be skipped instead of failing the whole payload.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date,omitempty"`
	Amount      json.RawMessage `json:"amount"`
}

// NewTransaction builds a well-formed transaction for amount.
func NewTransaction(amount decimal.Decimal) Transaction {
	return Transaction{Amount: json.RawMessage(amount.String())}
}

// ParsedAmount decodes Amount. Missing, null and non-numeric values report false.
// Quoted numerals ("12.50") are accepted since several banking APIs send them.
func (t Transaction) ParsedAmount() (decimal.Decimal, bool) {
	raw := bytes.TrimSpace(t.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, false
	}
	text := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return decimal.Zero, false
		}
		text = unquoted
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Derivation is the breakdown behind a transaction-derived cap.
type Derivation struct {
	PeriodDays    int64           `json:"periodDays"`
	Sales         decimal.Decimal `json:"sales"`
	Costs         decimal.Decimal `json:"costs"`
	AvgDailySales decimal.Decimal `json:"avgDailySales"`
	AvgDailyCost  decimal.Decimal `json:"avgDailyCost"`
	Skipped       int             `json:"skipped"`
	PopTokenCap   int64           `json:"popTokenCap"`
}

// CapFromTransactions derives round((avgDailySales - avgDailyCost) * D * 0.7),
// clamped at 0. D is forced to 1 for an empty list or a non-positive period.
func CapFromTransactions(txs []Transaction, periodDays int) int64 {
	return Derive(txs, periodDays).PopTokenCap
}

// Derive computes the full cap breakdown for txs over periodDays.
func Derive(txs []Transaction, periodDays int) Derivation {
	days := int64(periodDays)
	if len(txs) == 0 || days < 1 {
		days = 1
	}
	d := decimal.NewFromInt(days)

	sales, costs := decimal.Zero, decimal.Zero
	skipped := 0
	for _, tx := range txs {
		amount, ok := tx.ParsedAmount()
		if !ok {
			skipped++
			continue
		}
		switch amount.Sign() {
		case 1:
			sales = sales.Add(amount)
		case -1:
			costs = costs.Add(amount.Abs())
		}
	}

	// (sales/D - costs/D) * D reduces to sales - costs; computing it from the
	// sums keeps the result exact instead of inheriting division precision.
	tokenCap := sales.Sub(costs).Mul(ConservativeModifier).Round(0).IntPart()
	if tokenCap < 0 {
		tokenCap = 0
	}

	return Derivation{
		PeriodDays:    days,
		Sales:         sales,
		Costs:         costs,
		AvgDailySales: sales.Div(d),
		AvgDailyCost:  costs.Div(d),
		Skipped:       skipped,
		PopTokenCap:   tokenCap,
	}
}
