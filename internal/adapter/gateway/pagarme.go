package gateway

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

const pagarMeBaseURL = "https://api.pagar.me/core/v5"

// PagarMe é o adaptador do gateway Pagar.me. O provedor trabalha com
// valores em centavos: a conversão acontece exclusivamente na borda, com
// aritmética decimal, para não acumular erro de ponto flutuante
type PagarMe struct {
	apiKey    string
	simulated bool
	policy    SimulationPolicy
	client    *http.Client
	baseURL   string
}

// NewPagarMe cria o adaptador. Com simulated=true nenhuma chamada de rede
// é feita e os resultados seguem a política de simulação
func NewPagarMe(apiKey string, simulated bool, policy SimulationPolicy, timeout time.Duration) *PagarMe {
	return &PagarMe{
		apiKey:    apiKey,
		simulated: simulated,
		policy:    policy,
		client:    &http.Client{Timeout: timeout},
		baseURL:   pagarMeBaseURL,
	}
}

// Name retorna o identificador do provedor
func (g *PagarMe) Name() string {
	return ProviderPagarMe
}

// toCents converte um valor em reais para centavos inteiros
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// fromCents converte centavos inteiros para reais
func fromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

type pmItem struct {
	Amount      int64  `json:"amount"` // centavos
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type pmCustomer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	Type     string `json:"type"` // individual | company
}

type pmCard struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	CVV        string `json:"cvv"`
}

type pmCreditCard struct {
	Installments int    `json:"installments,omitempty"`
	Card         pmCard `json:"card"`
}

type pmPix struct {
	ExpiresIn int `json:"expires_in"` // segundos
}

type pmPayment struct {
	PaymentMethod string        `json:"payment_method"`
	CreditCard    *pmCreditCard `json:"credit_card,omitempty"`
	DebitCard     *pmCreditCard `json:"debit_card,omitempty"`
	Pix           *pmPix        `json:"pix,omitempty"`
}

// pmOrderRequest é o pedido de cobrança no formato de fio do Pagar.me
type pmOrderRequest struct {
	Items    []pmItem          `json:"items"`
	Customer pmCustomer        `json:"customer"`
	Payments []pmPayment       `json:"payments"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// pmOrderResponse é a resposta nativa do Pagar.me
type pmOrderResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Charges   []struct {
		ID              string `json:"id"`
		Status          string `json:"status"`
		PaymentMethod   string `json:"payment_method"`
		LastTransaction struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
			Installments int    `json:"installments"`
		} `json:"last_transaction"`
	} `json:"charges"`
}

// pmStatusTable traduz o vocabulário de status do Pagar.me para os
// estados canônicos. Status desconhecidos caem em pending, nunca em
// approved
var pmStatusTable = map[string]payment.Status{
	"paid":            payment.StatusApproved,
	"pending":         payment.StatusPending,
	"processing":      payment.StatusPending,
	"waiting_payment": payment.StatusPending,
	"authorized":      payment.StatusPending,
	"failed":          payment.StatusRejected,
	"refused":         payment.StatusRejected,
	"canceled":        payment.StatusCancelled,
	"voided":          payment.StatusCancelled,
	"refunded":        payment.StatusCancelled,
	"chargedback":     payment.StatusCancelled,
}

func pmMapStatus(native string) payment.Status {
	if s, ok := pmStatusTable[native]; ok {
		return s
	}
	return payment.StatusPending
}

// ProcessPayment submete uma nova cobrança. A requisição canônica não é
// modificada
func (g *PagarMe) ProcessPayment(ctx context.Context, req *payment.Request) (*payment.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if g.simulated {
		return simulatePayment(ProviderPagarMe, g.policy, req), nil
	}

	wire := g.translateRequest(req)
	var native pmOrderResponse
	if err := doJSON(ctx, g.client, ProviderPagarMe, http.MethodPost, g.baseURL+"/orders", g.authHeaders(), wire, &native); err != nil {
		return nil, err
	}
	return g.translateResponse(&native), nil
}

// GetPaymentStatus consulta o estado atual de um pagamento já criado
func (g *PagarMe) GetPaymentStatus(ctx context.Context, paymentID string) (*payment.Response, error) {
	if g.simulated {
		return simulateStatus(ProviderPagarMe, paymentID), nil
	}

	var native pmOrderResponse
	if err := doJSON(ctx, g.client, ProviderPagarMe, http.MethodGet, g.baseURL+"/orders/"+paymentID, g.authHeaders(), nil, &native); err != nil {
		return nil, err
	}
	return g.translateResponse(&native), nil
}

func (g *PagarMe) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(g.apiKey+":")),
	}
}

// translateRequest monta a cobrança no formato do Pagar.me, com valores
// em centavos
func (g *PagarMe) translateRequest(req *payment.Request) *pmOrderRequest {
	items := make([]pmItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, pmItem{
			Amount:      toCents(it.UnitPrice),
			Description: it.Title,
			Quantity:    it.Quantity,
		})
	}
	if len(items) == 0 {
		items = append(items, pmItem{Amount: toCents(req.Amount), Description: "Compra CreatinaMax", Quantity: 1})
	}

	customerType := "individual"
	if documentType(req.Customer.Document) == "CNPJ" {
		customerType = "company"
	}

	pay := pmPayment{PaymentMethod: string(req.Method.Type)}
	switch req.Method.Type {
	case payment.MethodPix:
		pay.Pix = &pmPix{ExpiresIn: 3600}
	case payment.MethodCreditCard:
		pay.CreditCard = g.translateCard(req)
	case payment.MethodDebitCard:
		pay.DebitCard = g.translateCard(req)
	}

	return &pmOrderRequest{
		Items: items,
		Customer: pmCustomer{
			Name:     req.Customer.Name,
			Email:    req.Customer.Email,
			Document: req.Customer.Document,
			Type:     customerType,
		},
		Payments: []pmPayment{pay},
		Metadata: req.Metadata,
	}
}

func (g *PagarMe) translateCard(req *payment.Request) *pmCreditCard {
	return &pmCreditCard{
		Installments: req.Method.Installments,
		Card: pmCard{
			Number:     req.Card.Number,
			HolderName: req.Card.HolderName,
			ExpMonth:   req.Card.ExpMonth,
			ExpYear:    req.Card.ExpYear,
			CVV:        req.Card.CVV,
		},
	}
}

// translateResponse converte a resposta nativa para o contrato canônico,
// trazendo os centavos de volta para reais
func (g *PagarMe) translateResponse(native *pmOrderResponse) *payment.Response {
	createdAt := native.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	resp := &payment.Response{
		ID:                native.ID,
		Status:            pmMapStatus(native.Status),
		TransactionAmount: fromCents(native.Amount),
		Gateway:           ProviderPagarMe,
		GatewayPaymentID:  native.ID,
		CreatedAt:         createdAt,
	}
	if len(native.Charges) > 0 {
		charge := native.Charges[0]
		resp.PaymentMethodID = charge.PaymentMethod
		resp.PixQRCode = charge.LastTransaction.QRCode
		resp.PixQRCodeBase64 = charge.LastTransaction.QRCodeBase64
		resp.Installments = charge.LastTransaction.Installments
	}
	return resp
}
