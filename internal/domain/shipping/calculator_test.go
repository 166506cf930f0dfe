package shipping

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeCEP(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01310-100", "01310-100"},
		{"01310100", "01310-100"},
		{" 69900-062 ", "69900-062"},
	}
	for _, tc := range cases {
		got, err := NormalizeCEP(tc.in)
		if err != nil {
			t.Errorf("NormalizeCEP(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeCEP(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "abc", "1234-567", "013101000", "01310_100"} {
		if _, err := NormalizeCEP(bad); !errors.Is(err, ErrInvalidCEP) {
			t.Errorf("NormalizeCEP(%q): esperava ErrInvalidCEP, obteve %v", bad, err)
		}
	}
}

func TestQuoteLinearCost(t *testing.T) {
	c := NewCalculator()

	// 14.90 + 4.50 * 2kg = 23.90
	q, err := c.Quote("01310-100", 2, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.Cost.Equal(decimal.NewFromFloat(23.90)) {
		t.Errorf("custo = %s, esperava 23.9", q.Cost)
	}
	if q.Free {
		t.Error("frete abaixo do limite marcado como grátis")
	}
	if q.DeadlineDays != 3 {
		t.Errorf("prazo para CEP de São Paulo = %d, esperava 3", q.DeadlineDays)
	}
}

func TestQuoteFreeShippingThreshold(t *testing.T) {
	c := NewCalculator()

	q, err := c.Quote("01310-100", 5, decimal.NewFromInt(250))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.Free || !q.Cost.IsZero() {
		t.Errorf("subtotal no limite deveria zerar o frete, obteve %s", q.Cost)
	}

	q, err = c.Quote("01310-100", 5, decimal.NewFromFloat(249.99))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Free {
		t.Error("subtotal abaixo do limite não deveria ser grátis")
	}
}

func TestQuoteDeadlineByRegion(t *testing.T) {
	c := NewCalculator()

	cases := map[string]int{
		"01310-100": 3,  // São Paulo
		"20040-020": 5,  // Rio de Janeiro
		"40020-000": 7,  // Bahia
		"80010-000": 6,  // Paraná
		"69900-062": 9,  // Acre
		"90010-150": 10, // Rio Grande do Sul
	}
	for cep, want := range cases {
		q, err := c.Quote(cep, 1, decimal.NewFromInt(50))
		if err != nil {
			t.Fatalf("Quote(%s): %v", cep, err)
		}
		if q.DeadlineDays != want {
			t.Errorf("prazo para %s = %d, esperava %d", cep, q.DeadlineDays, want)
		}
	}
}

func TestQuoteRejectsInvalidInputs(t *testing.T) {
	c := NewCalculator()

	if _, err := c.Quote("abc", 1, decimal.NewFromInt(50)); !errors.Is(err, ErrInvalidCEP) {
		t.Errorf("esperava ErrInvalidCEP, obteve %v", err)
	}
	if _, err := c.Quote("01310-100", 0, decimal.NewFromInt(50)); !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("esperava ErrInvalidWeight, obteve %v", err)
	}
}
