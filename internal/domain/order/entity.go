package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

var (
	ErrEmptyCustomer     = errors.New("cliente do pedido não pode ser vazio")
	ErrNoItems           = errors.New("pedido deve ter ao menos um item")
	ErrInvalidItem       = errors.New("item do pedido com quantidade inválida")
	ErrInvalidTransition = errors.New("transição de status de pedido inválida")
)

// Status representa o estado do pedido
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusPaid       Status = "PAID"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Item representa um item do pedido com preço congelado no momento da
// compra
type Item struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// StatusChange representra uma transição no histórico de status do pedido.
// O histórico é append-only
type StatusChange struct {
	Status    Status    `json:"status"`
	Note      string    `json:"note"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Order agrega os itens, totais e o vínculo com o pagamento de uma compra
type Order struct {
	ID               string             `json:"id"`
	CustomerID       string             `json:"customer_id"`
	Items            []Item             `json:"items"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	ShippingCost     decimal.Decimal    `json:"shipping_cost"`
	Discount         decimal.Decimal    `json:"discount"`
	Total            decimal.Decimal    `json:"total"`
	Status           Status             `json:"status"`
	StatusHistory    []StatusChange     `json:"status_history"`
	PaymentMethod    payment.MethodType `json:"payment_method"`
	PaymentStatus    payment.Status     `json:"payment_status"`
	PaymentGateway   string             `json:"payment_gateway"`
	GatewayPaymentID string             `json:"gateway_payment_id"`
	ShippingAddress  payment.Address    `json:"shipping_address"`
	ShippingCEP      string             `json:"shipping_cep"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewOrder cria um novo pedido pendente com os totais calculados
func NewOrder(customerID string, items []Item, shippingCost, discount decimal.Decimal, method payment.MethodType, address payment.Address) (*Order, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	subtotal := decimal.Zero
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, ErrInvalidItem
		}
		items[i].Total = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		subtotal = subtotal.Add(items[i].Total)
	}

	now := time.Now()
	o := &Order{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		Items:           items,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Discount:        discount,
		Total:           subtotal.Add(shippingCost).Sub(discount),
		Status:          StatusPending,
		PaymentMethod:   method,
		PaymentStatus:   payment.StatusPending,
		ShippingAddress: address,
		ShippingCEP:     address.ZipCode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.appendHistory(StatusPending, "pedido criado", customerID)
	return o, nil
}

func (o *Order) appendHistory(status Status, note, changedBy string) {
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		Status:    status,
		Note:      note,
		ChangedBy: changedBy,
		CreatedAt: time.Now(),
	})
}

// allowedTransitions materializa o grafo de transições válidas de status
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusPaid, StatusCancelled},
	StatusPaid:       {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// TransitionTo muda o status do pedido registrando a transição no
// histórico. Transições fora do grafo são rejeitadas
func (o *Order) TransitionTo(status Status, note, changedBy string) error {
	if o.Status == status {
		return nil
	}
	for _, allowed := range allowedTransitions[o.Status] {
		if allowed == status {
			o.Status = status
			o.UpdatedAt = time.Now()
			o.appendHistory(status, note, changedBy)
			return nil
		}
	}
	return ErrInvalidTransition
}

// AttachPayment registra o resultado da cobrança no pedido
func (o *Order) AttachPayment(resp *payment.Response) {
	o.PaymentStatus = resp.Status
	o.PaymentGateway = resp.Gateway
	o.GatewayPaymentID = resp.GatewayPaymentID
	o.UpdatedAt = time.Now()
}

// TotalQuantity retorna a soma das quantidades dos itens
func (o *Order) TotalQuantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}
