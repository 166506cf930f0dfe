package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

const mercadoPagoBaseURL = "https://api.mercadopago.com"

// MercadoPago é o adaptador do gateway Mercado Pago. Traduz o contrato
// canônico para o formato do provedor e o vocabulário de status do
// provedor de volta para os quatro estados canônicos
type MercadoPago struct {
	accessToken string
	simulated   bool
	policy      SimulationPolicy
	client      *http.Client
	baseURL     string
}

// NewMercadoPago cria o adaptador. Com simulated=true nenhuma chamada de
// rede é feita e os resultados seguem a política de simulação
func NewMercadoPago(accessToken string, simulated bool, policy SimulationPolicy, timeout time.Duration) *MercadoPago {
	return &MercadoPago{
		accessToken: accessToken,
		simulated:   simulated,
		policy:      policy,
		client:      &http.Client{Timeout: timeout},
		baseURL:     mercadoPagoBaseURL,
	}
}

// Name retorna o identificador do provedor
func (g *MercadoPago) Name() string {
	return ProviderMercadoPago
}

// mpPayer é o pagador no formato do Mercado Pago
type mpPayer struct {
	Email          string           `json:"email"`
	FirstName      string           `json:"first_name,omitempty"`
	LastName       string           `json:"last_name,omitempty"`
	Identification mpIdentification `json:"identification"`
}

type mpIdentification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type mpCard struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	ExpMonth   int    `json:"expiration_month"`
	ExpYear    int    `json:"expiration_year"`
	CVV        string `json:"security_code"`
}

// mpPaymentRequest é a cobrança no formato de fio do Mercado Pago. O
// valor vai em unidade monetária principal
type mpPaymentRequest struct {
	TransactionAmount float64           `json:"transaction_amount"`
	Description       string            `json:"description"`
	PaymentMethodID   string            `json:"payment_method_id"`
	Installments      int               `json:"installments,omitempty"`
	Payer             mpPayer           `json:"payer"`
	Card              *mpCard           `json:"card,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// mpPaymentResponse é a resposta nativa do Mercado Pago
type mpPaymentResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	StatusDetail       string      `json:"status_detail"`
	PaymentMethodID    string      `json:"payment_method_id"`
	TransactionAmount  float64     `json:"transaction_amount"`
	Installments       int         `json:"installments"`
	DateCreated        time.Time   `json:"date_created"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

// mpStatusTable traduz o vocabulário de status do Mercado Pago para os
// estados canônicos. Status desconhecidos caem em pending, nunca em
// approved
var mpStatusTable = map[string]payment.Status{
	"approved":     payment.StatusApproved,
	"authorized":   payment.StatusPending,
	"pending":      payment.StatusPending,
	"in_process":   payment.StatusPending,
	"in_mediation": payment.StatusPending,
	"rejected":     payment.StatusRejected,
	"cancelled":    payment.StatusCancelled,
	"refunded":     payment.StatusCancelled,
	"charged_back": payment.StatusCancelled,
}

func mpMapStatus(native string) payment.Status {
	if s, ok := mpStatusTable[native]; ok {
		return s
	}
	return payment.StatusPending
}

// ProcessPayment submete uma nova cobrança. A requisição canônica não é
// modificada
func (g *MercadoPago) ProcessPayment(ctx context.Context, req *payment.Request) (*payment.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if g.simulated {
		return simulatePayment(ProviderMercadoPago, g.policy, req), nil
	}

	wire := g.translateRequest(req)
	var native mpPaymentResponse
	headers := map[string]string{
		"Authorization":     "Bearer " + g.accessToken,
		"X-Idempotency-Key": uuid.New().String(),
	}
	if err := doJSON(ctx, g.client, ProviderMercadoPago, http.MethodPost, g.baseURL+"/v1/payments", headers, wire, &native); err != nil {
		return nil, err
	}
	return g.translateResponse(&native), nil
}

// GetPaymentStatus consulta o estado atual de um pagamento já criado
func (g *MercadoPago) GetPaymentStatus(ctx context.Context, paymentID string) (*payment.Response, error) {
	if g.simulated {
		return simulateStatus(ProviderMercadoPago, paymentID), nil
	}

	var native mpPaymentResponse
	headers := map[string]string{"Authorization": "Bearer " + g.accessToken}
	if err := doJSON(ctx, g.client, ProviderMercadoPago, http.MethodGet, g.baseURL+"/v1/payments/"+paymentID, headers, nil, &native); err != nil {
		return nil, err
	}
	return g.translateResponse(&native), nil
}

// translateRequest monta a cobrança no formato do Mercado Pago
func (g *MercadoPago) translateRequest(req *payment.Request) *mpPaymentRequest {
	amount, _ := req.Amount.Round(2).Float64()
	firstName, lastName := splitName(req.Customer.Name)

	description := "Compra CreatinaMax"
	if len(req.Items) > 0 {
		description = req.Items[0].Title
	}

	wire := &mpPaymentRequest{
		TransactionAmount: amount,
		Description:       description,
		PaymentMethodID:   string(req.Method.Type),
		Installments:      req.Method.Installments,
		Payer: mpPayer{
			Email:     req.Customer.Email,
			FirstName: firstName,
			LastName:  lastName,
			Identification: mpIdentification{
				Type:   documentType(req.Customer.Document),
				Number: req.Customer.Document,
			},
		},
		Metadata: req.Metadata,
	}
	if req.Card != nil {
		wire.Card = &mpCard{
			Number:     req.Card.Number,
			HolderName: req.Card.HolderName,
			ExpMonth:   req.Card.ExpMonth,
			ExpYear:    req.Card.ExpYear,
			CVV:        req.Card.CVV,
		}
	}
	return wire
}

// translateResponse converte a resposta nativa para o contrato canônico
func (g *MercadoPago) translateResponse(native *mpPaymentResponse) *payment.Response {
	createdAt := native.DateCreated
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &payment.Response{
		ID:                native.ID.String(),
		Status:            mpMapStatus(native.Status),
		PaymentMethodID:   native.PaymentMethodID,
		TransactionAmount: decimal.NewFromFloat(native.TransactionAmount),
		PixQRCode:         native.PointOfInteraction.TransactionData.QRCode,
		PixQRCodeBase64:   native.PointOfInteraction.TransactionData.QRCodeBase64,
		Installments:      native.Installments,
		Gateway:           ProviderMercadoPago,
		GatewayPaymentID:  native.ID.String(),
		CreatedAt:         createdAt,
	}
}

// splitName separa nome e sobrenome para o formato do provedor
func splitName(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// documentType deduz o tipo de documento pelo tamanho: 11 dígitos CPF,
// 14 CNPJ
func documentType(document string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, document)
	if len(digits) > 11 {
		return "CNPJ"
	}
	return "CPF"
}
