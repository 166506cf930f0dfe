package dto

import (
	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/shipping"
)

// ShippingQuoteRequest representa os dados para cotação de frete
type ShippingQuoteRequest struct {
	CEP      string          `json:"cep" binding:"required"`
	WeightKg float64         `json:"weight_kg" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ShippingQuoteResponse representa uma cotação de frete
type ShippingQuoteResponse struct {
	CEP          string          `json:"cep"`
	Cost         decimal.Decimal `json:"cost"`
	DeadlineDays int             `json:"deadline_days"`
	Free         bool            `json:"free"`
}

// ToShippingQuoteResponse converte uma cotação para ShippingQuoteResponse
func ToShippingQuoteResponse(q *shipping.Quote) ShippingQuoteResponse {
	return ShippingQuoteResponse{
		CEP:          q.CEP,
		Cost:         q.Cost,
		DeadlineDays: q.DeadlineDays,
		Free:         q.Free,
	}
}
