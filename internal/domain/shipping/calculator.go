package shipping

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCEP    = errors.New("CEP inválido")
	ErrInvalidWeight = errors.New("peso deve ser maior que zero")
)

var cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

// Quote representa uma cotação de frete
type Quote struct {
	CEP          string          `json:"cep"`
	Cost         decimal.Decimal `json:"cost"`
	DeadlineDays int             `json:"deadline_days"`
	Free         bool            `json:"free"`
}

// Calculator calcula frete por fórmula linear sobre o peso, com faixa de
// prazo derivada da região do CEP. Não há integração com transportadora
type Calculator struct {
	BaseCost  decimal.Decimal
	CostPerKg decimal.Decimal
	FreeAbove decimal.Decimal // subtotal a partir do qual o frete é grátis
}

// NewCalculator cria um calculador com os valores padrão da loja
func NewCalculator() *Calculator {
	return &Calculator{
		BaseCost:  decimal.NewFromFloat(14.90),
		CostPerKg: decimal.NewFromFloat(4.50),
		FreeAbove: decimal.NewFromInt(250),
	}
}

// deadlineByRegion mapeia o primeiro dígito do CEP para o prazo em dias
// úteis. Faixas partem de São Paulo (0-1) até Norte (6-9)
var deadlineByRegion = map[byte]int{
	'0': 3, '1': 3, '2': 5, '3': 5, '4': 7,
	'5': 8, '6': 9, '7': 9, '8': 6, '9': 10,
}

// Quote calcula a cotação de frete para um CEP, peso total em kg e
// subtotal do carrinho
func (c *Calculator) Quote(cep string, weightKg float64, subtotal decimal.Decimal) (*Quote, error) {
	normalized, err := NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}
	if weightKg <= 0 {
		return nil, ErrInvalidWeight
	}

	deadline := deadlineByRegion[normalized[0]]

	if subtotal.GreaterThanOrEqual(c.FreeAbove) {
		return &Quote{CEP: normalized, Cost: decimal.Zero, DeadlineDays: deadline, Free: true}, nil
	}

	cost := c.BaseCost.Add(c.CostPerKg.Mul(decimal.NewFromFloat(weightKg))).Round(2)
	return &Quote{CEP: normalized, Cost: cost, DeadlineDays: deadline}, nil
}

// NormalizeCEP valida e normaliza um CEP para o formato 00000-000
func NormalizeCEP(cep string) (string, error) {
	trimmed := strings.TrimSpace(cep)
	if !cepPattern.MatchString(trimmed) {
		return "", ErrInvalidCEP
	}
	digits := strings.ReplaceAll(trimmed, "-", "")
	return digits[:5] + "-" + digits[5:], nil
}
