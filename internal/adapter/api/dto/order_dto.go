package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/order"
	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

// CheckoutItemRequest representa um item do carrinho no checkout
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AddressRequest representa um endereço de entrega ou cobrança
type AddressRequest struct {
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Complement string `json:"complement"`
	District   string `json:"district" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	ZipCode    string `json:"zip_code" binding:"required"`
}

// CardRequest representa os dados de cartão para pagamento
type CardRequest struct {
	Number     string `json:"number" binding:"required"`
	HolderName string `json:"holder_name" binding:"required"`
	ExpMonth   int    `json:"exp_month" binding:"required"`
	ExpYear    int    `json:"exp_year" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

// CheckoutRequest representa os dados para fechamento de pedido
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1"`
	Provider      string                `json:"provider"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	Installments  int                   `json:"installments"`
	Card          *CardRequest          `json:"card"`
	CustomerName  string                `json:"customer_name" binding:"required"`
	CustomerPhone string                `json:"customer_phone"`
	Document      string                `json:"document" binding:"required"`
	Address       AddressRequest        `json:"address" binding:"required"`
	Discount      decimal.Decimal       `json:"discount"`
}

// OrderItemResponse representa um item de pedido nas respostas da API
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// StatusChangeResponse representa uma mudança de status no histórico do pedido
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResponse representa os dados de um pedido nas respostas da API
type OrderResponse struct {
	ID               string                 `json:"id"`
	CustomerID       string                 `json:"customer_id"`
	Items            []OrderItemResponse    `json:"items"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	ShippingCost     decimal.Decimal        `json:"shipping_cost"`
	Discount         decimal.Decimal        `json:"discount"`
	Total            decimal.Decimal        `json:"total"`
	Status           string                 `json:"status"`
	StatusHistory    []StatusChangeResponse `json:"status_history"`
	PaymentMethod    string                 `json:"payment_method"`
	PaymentStatus    string                 `json:"payment_status"`
	PaymentGateway   string                 `json:"payment_gateway,omitempty"`
	GatewayPaymentID string                 `json:"gateway_payment_id,omitempty"`
	ShippingCEP      string                 `json:"shipping_cep"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// CheckoutResponse representa o resultado de um checkout
type CheckoutResponse struct {
	Order           OrderResponse `json:"order"`
	PaymentStatus   string        `json:"payment_status"`
	PixQRCode       string        `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string        `json:"pix_qr_code_base64,omitempty"`
	ShippingDays    int           `json:"shipping_days"`
	FreeShipping    bool          `json:"free_shipping"`
}

// ToOrderResponse converte uma entidade Order para OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}

	history := make([]StatusChangeResponse, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, StatusChangeResponse{
			Status:    string(h.Status),
			Note:      h.Note,
			ChangedBy: h.ChangedBy,
			CreatedAt: h.CreatedAt,
		})
	}

	return OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		Items:            items,
		Subtotal:         o.Subtotal,
		ShippingCost:     o.ShippingCost,
		Discount:         o.Discount,
		Total:            o.Total,
		Status:           string(o.Status),
		StatusHistory:    history,
		PaymentMethod:    string(o.PaymentMethod),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentGateway:   o.PaymentGateway,
		GatewayPaymentID: o.GatewayPaymentID,
		ShippingCEP:      o.ShippingCEP,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToOrderListResponse converte uma lista de pedidos para OrderResponse
func ToOrderListResponse(orders []*order.Order) []OrderResponse {
	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, ToOrderResponse(o))
	}
	return response
}

// ToAddress converte um AddressRequest para a entidade de endereço de pagamento
func (a AddressRequest) ToAddress() payment.Address {
	return payment.Address{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		ZipCode:    a.ZipCode,
	}
}

// ToCard converte um CardRequest para a entidade de cartão
func (c *CardRequest) ToCard() *payment.Card {
	if c == nil {
		return nil
	}
	return &payment.Card{
		Number:     c.Number,
		HolderName: c.HolderName,
		ExpMonth:   c.ExpMonth,
		ExpYear:    c.ExpYear,
		CVV:        c.CVV,
	}
}
