package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status representa o estado canônico de um pagamento, independente do
// vocabulário usado pelo provedor
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// MethodType define o tipo de meio de pagamento
type MethodType string

const (
	MethodPix        MethodType = "pix"
	MethodCreditCard MethodType = "credit_card"
	MethodDebitCard  MethodType = "debit_card"
)

// RequiresCard indica se o meio de pagamento exige dados de cartão
func (m MethodType) RequiresCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

// IsValid verifica se o tipo de meio de pagamento é conhecido
func (m MethodType) IsValid() bool {
	switch m {
	case MethodPix, MethodCreditCard, MethodDebitCard:
		return true
	}
	return false
}

// Method representa o meio de pagamento escolhido pelo cliente
type Method struct {
	Type         MethodType `json:"type"`
	Installments int        `json:"installments,omitempty"`
}

// Address representa o endereço do pagador
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"` // CEP
}

// Customer representa o pagador
type Customer struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Document string  `json:"document"` // CPF/CNPJ
	Address  Address `json:"address"`
}

// Card contém os dados do cartão. Nunca é persistido; vive apenas durante
// a chamada ao provedor
type Card struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	CVV        string `json:"cvv"`
}

// Item representa um item da cobrança
type Item struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Request é o contrato canônico de cobrança enviado aos adaptadores de
// gateway. O valor é sempre em unidade monetária principal (reais);
// conversão para centavos é responsabilidade de cada adaptador
type Request struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Method   Method            `json:"payment_method"`
	Customer Customer          `json:"customer"`
	Card     *Card             `json:"card,omitempty"`
	Items    []Item            `json:"items"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Response é o contrato canônico de resposta dos adaptadores de gateway
type Response struct {
	ID                string          `json:"id"`
	Status            Status          `json:"status"`
	PaymentMethodID   string          `json:"payment_method_id,omitempty"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	PixQRCode         string          `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64   string          `json:"pix_qr_code_base64,omitempty"`
	Installments      int             `json:"installments,omitempty"`
	Gateway           string          `json:"gateway"`
	GatewayPaymentID  string          `json:"gateway_payment_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Validate verifica se a requisição de pagamento está completa para o meio
// de pagamento escolhido. Executa antes de qualquer I/O
func (r *Request) Validate() error {
	if !r.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: "valor deve ser maior que zero"}
	}
	if r.Currency == "" {
		return &ValidationError{Field: "currency", Message: "moeda não informada"}
	}
	if !r.Method.Type.IsValid() {
		return &ValidationError{Field: "payment_method.type", Message: "meio de pagamento desconhecido"}
	}
	if r.Method.Installments < 0 {
		return &ValidationError{Field: "payment_method.installments", Message: "parcelas inválidas"}
	}
	if r.Customer.Name == "" {
		return &ValidationError{Field: "customer.name", Message: "nome do cliente não informado"}
	}
	if r.Customer.Email == "" {
		return &ValidationError{Field: "customer.email", Message: "email do cliente não informado"}
	}
	if r.Customer.Document == "" {
		return &ValidationError{Field: "customer.document", Message: "documento do cliente não informado"}
	}
	if r.Method.Type.RequiresCard() {
		if r.Card == nil {
			return &ValidationError{Field: "card", Message: "dados do cartão são obrigatórios para pagamento com cartão"}
		}
		if r.Card.Number == "" || r.Card.HolderName == "" || r.Card.CVV == "" {
			return &ValidationError{Field: "card", Message: "dados do cartão incompletos"}
		}
		if r.Card.ExpMonth < 1 || r.Card.ExpMonth > 12 {
			return &ValidationError{Field: "card.exp_month", Message: "mês de expiração inválido"}
		}
	}
	return nil
}
