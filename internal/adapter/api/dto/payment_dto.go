package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

// PaymentStatusResponse representa o status de um pagamento consultado no gateway
type PaymentStatusResponse struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	Gateway           string          `json:"gateway"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ProvidersResponse representa os provedores de pagamento disponíveis
type ProvidersResponse struct {
	Default   string   `json:"default"`
	Providers []string `json:"providers"`
}

// MercadoPagoWebhookRequest representa o corpo da notificação do Mercado Pago
type MercadoPagoWebhookRequest struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PagarMeWebhookRequest representa o corpo da notificação do Pagar.me
type PagarMeWebhookRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ToPaymentStatusResponse converte uma resposta do gateway para PaymentStatusResponse
func ToPaymentStatusResponse(resp *payment.Response) PaymentStatusResponse {
	return PaymentStatusResponse{
		ID:                resp.ID,
		Status:            string(resp.Status),
		TransactionAmount: resp.TransactionAmount,
		Gateway:           resp.Gateway,
		CreatedAt:         resp.CreatedAt,
	}
}
