package popcap

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
)

func tx(amount string) Transaction {
	return Transaction{Amount: json.RawMessage(amount)}
}

func TestCapFromPresetFormula(t *testing.T) {
	tests := []struct {
		netValue float64
		want     int64
	}{
		{16000, 4800},
		{3100, 930},
		{45000, 13500},
		{2700, 810},
		{3400, 1020},
		{10, 3},
		{1, 0},
		{0, 0},
		{-500, 0},
	}
	for _, tt := range tests {
		if got := CapFromPreset(Preset{NetValue: tt.netValue}); got != tt.want {
			t.Errorf("netValue %v: expected %d, got %d", tt.netValue, tt.want, got)
		}
	}
}

func TestCapFromPresetIgnoresModifier(t *testing.T) {
	a := CapFromPreset(Preset{NetValue: 3400, PopModifier: 0.85})
	b := CapFromPreset(Preset{NetValue: 3400, PopModifier: 0.90})
	if a != b {
		t.Fatalf("modifier should not change the cap: %d vs %d", a, b)
	}
}

func TestDefaultCatalogMatchesFormula(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	all := c.All()
	if len(all) != 13 {
		t.Fatalf("expected 13 presets, got %d", len(all))
	}
	for _, p := range all {
		want := int64(math.Floor(p.NetValue * 0.9 / 3))
		if p.PopTokenCap != want {
			t.Errorf("%s: expected cap %d, got %d", p.Name, want, p.PopTokenCap)
		}
		if p.PopTokenCap < 0 {
			t.Errorf("%s: negative cap", p.Name)
		}
	}
}

func TestCatalogLookupFirstDuplicateWins(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	p, ok := c.Lookup("Food Stall at Mall (Singapore)")
	if !ok {
		t.Fatal("expected preset to be found")
	}
	if p.NetValue != 3100 {
		t.Fatalf("expected first entry (netValue 3100), got %v", p.NetValue)
	}
	if got, ok := c.CapFor("Coffee Cart (Singapore)"); !ok || got != 810 {
		t.Fatalf("expected coffee cart cap 810, got %d (%v)", got, ok)
	}
	if _, ok := c.Lookup("Unknown Business"); ok {
		t.Fatal("did not expect unknown preset to resolve")
	}
}

func TestCatalogLookupIsExact(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	for _, name := range []string{" Coffee Cart (Singapore)", "Coffee Cart (Singapore) ", "coffee cart (singapore)"} {
		if _, ok := c.Lookup(name); ok {
			t.Errorf("Lookup(%q) matched; lookup must be by exact name", name)
		}
	}
}

func TestParseCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "presets: []"},
		{"missing name", "presets:\n  - netValue: 10\n    popModifier: 0.9"},
		{"modifier out of range", "presets:\n  - name: A\n    netValue: 10\n    popModifier: 1.5"},
		{"bad yaml", "presets: [:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCapFromTransactionsEmpty(t *testing.T) {
	for _, days := range []int{-3, 0, 1, 90} {
		d := Derive(nil, days)
		if d.PopTokenCap != 0 {
			t.Errorf("days %d: expected 0, got %d", days, d.PopTokenCap)
		}
		if d.PeriodDays != 1 {
			t.Errorf("days %d: expected period forced to 1, got %d", days, d.PeriodDays)
		}
	}
}

func TestCapFromTransactions(t *testing.T) {
	txs := []Transaction{tx("1000"), tx("-200"), tx("500.5"), tx("-100.5")}
	// (1500.5 - 300.5) * 0.7 = 840
	if got := CapFromTransactions(txs, 90); got != 840 {
		t.Fatalf("expected 840, got %d", got)
	}

	d := Derive(txs, 10)
	if !d.AvgDailySales.Equal(decimal.RequireFromString("150.05")) {
		t.Fatalf("unexpected avg daily sales %s", d.AvgDailySales)
	}
	if !d.AvgDailyCost.Equal(decimal.RequireFromString("30.05")) {
		t.Fatalf("unexpected avg daily cost %s", d.AvgDailyCost)
	}
}

func TestCapFromTransactionsRoundsHalfUp(t *testing.T) {
	// 5 * 0.7 = 3.5 -> 4
	if got := CapFromTransactions([]Transaction{tx("5")}, 1); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestCapFromTransactionsClampsAtZero(t *testing.T) {
	txs := []Transaction{tx("100"), tx("-1000")}
	if got := CapFromTransactions(txs, 30); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestCapFromTransactionsSkipsMalformed(t *testing.T) {
	txs := []Transaction{
		tx("100"),
		tx(`"abc"`),
		tx("null"),
		{},
		tx("true"),
		tx(`"50"`),
		tx("-10"),
	}
	d := Derive(txs, 5)
	// (150 - 10) * 0.7 = 98
	if d.PopTokenCap != 98 {
		t.Fatalf("expected 98, got %d", d.PopTokenCap)
	}
	if d.Skipped != 4 {
		t.Fatalf("expected 4 skipped entries, got %d", d.Skipped)
	}
}

func TestCapFromTransactionsOrderInvariant(t *testing.T) {
	txs := []Transaction{
		tx("1200.10"), tx("-340.25"), tx("88"), tx("-12.75"), tx("4000"),
		tx("-999.99"), tx(`"x"`), tx("0"), tx("17.3"), tx("-5"),
	}
	want := CapFromTransactions(txs, 30)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 25; i++ {
		shuffled := append([]Transaction(nil), txs...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := CapFromTransactions(shuffled, 30); got != want {
			t.Fatalf("shuffle %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestTransactionJSONDecodeKeepsMalformedAmount(t *testing.T) {
	var txs []Transaction
	payload := `[{"id":"1","amount":12.5},{"id":"2","amount":"oops"},{"id":"3"}]`
	if err := json.Unmarshal([]byte(payload), &txs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if _, ok := txs[1].ParsedAmount(); ok {
		t.Fatal("expected malformed amount to be rejected")
	}
	if v, ok := txs[0].ParsedAmount(); !ok || !v.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected amount %s (%v)", v, ok)
	}
}

func TestNewTransaction(t *testing.T) {
	got, ok := NewTransaction(decimal.NewFromInt(-42)).ParsedAmount()
	if !ok || got.IntPart() != -42 {
		t.Fatalf("unexpected amount %s (%v)", got, ok)
	}
}
