package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/inventory"
	"github.com/floravitalis/creatinamax/internal/domain/payment"
	"github.com/floravitalis/creatinamax/internal/domain/product"
	"github.com/floravitalis/creatinamax/internal/domain/shipping"
	"github.com/floravitalis/creatinamax/pkg/logger"
)

// CheckoutItem representa um item do carrinho na finalização da compra
type CheckoutItem struct {
	ProductID string
	Quantity  int
}

// CheckoutInput contém os dados da finalização de compra
type CheckoutInput struct {
	CustomerID string
	Items      []CheckoutItem
	Provider   string // vazio = provedor padrão
	Method     payment.Method
	Card       *payment.Card
	Customer   payment.Customer
	Discount   decimal.Decimal
}

// CheckoutResult agrega o pedido criado e a resposta canônica do gateway
type CheckoutResult struct {
	Order    *Order
	Payment  *payment.Response
	Shipping *shipping.Quote
}

// CheckoutService orquestra a finalização de compra: monta o pedido,
// reserva estoque, submete a cobrança ao gateway e reconcilia o resultado.
// A confirmação do pagamento e a baixa de estoque são transações
// separadas: nenhum lock de estoque é mantido durante a chamada ao
// provedor
type CheckoutService struct {
	orders   Repository
	products product.Repository
	ledger   *inventory.Ledger
	gateways payment.Factory
	shipping *shipping.Calculator
	logger   logger.Logger
}

// NewCheckoutService cria um novo serviço de checkout
func NewCheckoutService(orders Repository, products product.Repository, ledger *inventory.Ledger, gateways payment.Factory, shippingCalc *shipping.Calculator, log logger.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		products: products,
		ledger:   ledger,
		gateways: gateways,
		shipping: shippingCalc,
		logger:   log,
	}
}

// PlaceOrder executa a finalização de compra de ponta a ponta
func (s *CheckoutService) PlaceOrder(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	items, weightKg, err := s.buildItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	quote, err := s.shipping.Quote(in.Customer.Address.ZipCode, weightKg, subtotal)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular frete: %w", err)
	}

	o, err := NewOrder(in.CustomerID, items, quote.Cost, in.Discount, in.Method.Type, in.Customer.Address)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("erro ao criar pedido: %w", err)
	}

	// Reservar o estoque antes da cobrança. A reserva segura a quantidade
	// enquanto o pagamento (possivelmente assíncrono, como PIX) não se
	// resolve
	if err := s.reserveItems(ctx, o); err != nil {
		if cancelErr := o.TransitionTo(StatusCancelled, "estoque insuficiente", in.CustomerID); cancelErr == nil {
			s.orders.Update(ctx, o)
		}
		return nil, err
	}

	resp, err := s.charge(ctx, in, o)
	if err != nil {
		s.releaseItems(ctx, o)
		if cancelErr := o.TransitionTo(StatusCancelled, "falha na cobrança", in.CustomerID); cancelErr == nil {
			s.orders.Update(ctx, o)
		}
		return nil, err
	}

	o.AttachPayment(resp)
	switch resp.Status {
	case payment.StatusApproved:
		if err := s.fulfill(ctx, o); err != nil {
			s.logger.Error("pagamento aprovado mas baixa de estoque falhou", "order_id", o.ID, "error", err)
			// O vínculo com o gateway precisa sobreviver à falha: o pedido
			// fica pendente com a reserva intacta e a reconciliação via
			// webhook ou consulta repete a baixa
			if saveErr := s.orders.Update(ctx, o); saveErr != nil {
				s.logger.Error("falha ao persistir pedido após erro na baixa", "order_id", o.ID, "error", saveErr)
			}
			return nil, err
		}
	case payment.StatusRejected, payment.StatusCancelled:
		s.releaseItems(ctx, o)
		o.TransitionTo(StatusCancelled, "pagamento "+string(resp.Status), in.CustomerID)
	}
	// pending (ex: PIX aguardando leitura do QR) mantém a reserva até o
	// webhook de confirmação

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("erro ao atualizar pedido: %w", err)
	}
	return &CheckoutResult{Order: o, Payment: resp, Shipping: quote}, nil
}

// buildItems congela preço, nome e SKU dos produtos do carrinho e soma o
// peso total
func (s *CheckoutService) buildItems(ctx context.Context, items []CheckoutItem) ([]Item, float64, error) {
	if len(items) == 0 {
		return nil, 0, ErrNoItems
	}
	var result []Item
	weightKg := 0.0
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, 0, ErrInvalidItem
		}
		p, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao buscar produto %s: %w", it.ProductID, err)
		}
		if p.Status != product.StatusActive {
			return nil, 0, fmt.Errorf("produto %s não está disponível para venda", p.Name)
		}
		result = append(result, Item{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
		weightKg += p.WeightKg * float64(it.Quantity)
	}
	return result, weightKg, nil
}

func (s *CheckoutService) reserveItems(ctx context.Context, o *Order) error {
	var reserved []Item
	for _, it := range o.Items {
		if err := s.ledger.Reserve(ctx, it.ProductID, it.Quantity); err != nil {
			for _, r := range reserved {
				s.ledger.Release(ctx, r.ProductID, r.Quantity)
			}
			return err
		}
		reserved = append(reserved, it)
	}
	return nil
}

func (s *CheckoutService) releaseItems(ctx context.Context, o *Order) {
	for _, it := range o.Items {
		if err := s.ledger.Release(ctx, it.ProductID, it.Quantity); err != nil {
			s.logger.Error("falha ao liberar reserva", "order_id", o.ID, "product_id", it.ProductID, "error", err)
		}
	}
}

// charge monta a requisição canônica e submete ao gateway escolhido
func (s *CheckoutService) charge(ctx context.Context, in CheckoutInput, o *Order) (*payment.Response, error) {
	provider := in.Provider
	if provider == "" {
		provider = s.gateways.DefaultProvider()
	}
	gw, err := s.gateways.Create(provider)
	if err != nil {
		return nil, err
	}

	paymentItems := make([]payment.Item, 0, len(o.Items))
	for _, it := range o.Items {
		paymentItems = append(paymentItems, payment.Item{
			ID:        it.ProductID,
			Title:     it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	req := &payment.Request{
		Amount:   o.Total,
		Currency: "BRL",
		Method:   in.Method,
		Customer: in.Customer,
		Card:     in.Card,
		Items:    paymentItems,
		Metadata: map[string]string{"order_id": o.ID},
	}
	return gw.ProcessPayment(ctx, req)
}

// fulfill dá baixa no estoque de um pedido aprovado: libera as reservas e
// registra as saídas vinculadas ao pedido. Em caso de falha no meio, os
// itens já baixados são compensados e o pedido volta a ficar inteiramente
// reservado, pronto para uma nova tentativa de reconciliação
func (s *CheckoutService) fulfill(ctx context.Context, o *Order) error {
	var applied []*inventory.Movement
	var done []Item
	for _, it := range o.Items {
		if err := s.ledger.Release(ctx, it.ProductID, it.Quantity); err != nil {
			s.compensateFulfill(ctx, o, done, applied)
			return fmt.Errorf("erro ao liberar reserva do produto %s: %w", it.ProductID, err)
		}
		movements, err := s.ledger.RecordMovement(ctx, inventory.MovementInput{
			ProductID: it.ProductID,
			Type:      inventory.MovementOut,
			Quantity:  it.Quantity,
			Reason:    "saída por venda - pedido " + o.ID,
			UserID:    o.CustomerID,
			OrderID:   o.ID,
		})
		if err != nil {
			if resErr := s.ledger.Reserve(ctx, it.ProductID, it.Quantity); resErr != nil {
				s.logger.Error("falha ao refazer reserva após erro na baixa", "order_id", o.ID, "product_id", it.ProductID, "error", resErr)
			}
			s.compensateFulfill(ctx, o, done, applied)
			return fmt.Errorf("erro ao registrar saída do produto %s: %w", it.ProductID, err)
		}
		applied = append(applied, movements...)
		done = append(done, it)
	}
	return o.TransitionTo(StatusPaid, "pagamento aprovado", o.CustomerID)
}

// compensateFulfill desfaz as baixas já concluídas de um fulfill que falhou
// no meio: registra a devolução de cada saída aplicada e refaz as reservas
// dos itens concluídos
func (s *CheckoutService) compensateFulfill(ctx context.Context, o *Order, done []Item, applied []*inventory.Movement) {
	for _, m := range applied {
		_, err := s.ledger.RecordMovement(ctx, inventory.MovementInput{
			ProductID: m.ProductID,
			BatchID:   m.BatchID,
			Type:      inventory.MovementReturn,
			Quantity:  m.Quantity,
			Reason:    "compensação de baixa parcial - pedido " + o.ID,
			UserID:    o.CustomerID,
			OrderID:   o.ID,
		})
		if err != nil {
			s.logger.Error("falha ao compensar baixa parcial", "order_id", o.ID, "batch_id", m.BatchID, "error", err)
		}
	}
	for _, it := range done {
		if err := s.ledger.Reserve(ctx, it.ProductID, it.Quantity); err != nil {
			s.logger.Error("falha ao refazer reserva após compensação", "order_id", o.ID, "product_id", it.ProductID, "error", err)
		}
	}
}

// ConfirmPayment reconcilia o estado de um pagamento a partir do id do
// gateway. É idempotente: reentregas de webhook ou consultas repetidas não
// aplicam a baixa de estoque duas vezes
func (s *CheckoutService) ConfirmPayment(ctx context.Context, gatewayPaymentID string) (*Order, error) {
	o, err := s.orders.FindByGatewayPaymentID(ctx, gatewayPaymentID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		// Já reconciliado: confirmação repetida é um no-op
		return o, nil
	}

	gw, err := s.gateways.Create(o.PaymentGateway)
	if err != nil {
		return nil, err
	}
	resp, err := gw.GetPaymentStatus(ctx, gatewayPaymentID)
	if err != nil {
		return nil, err
	}

	switch resp.Status {
	case payment.StatusApproved:
		o.PaymentStatus = resp.Status
		if err := s.fulfill(ctx, o); err != nil {
			return nil, err
		}
	case payment.StatusRejected, payment.StatusCancelled:
		o.PaymentStatus = resp.Status
		s.releaseItems(ctx, o)
		if err := o.TransitionTo(StatusCancelled, "pagamento "+string(resp.Status), "webhook"); err != nil {
			return nil, err
		}
	default:
		// Ainda pendente: nada a reconciliar
		return o, nil
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("erro ao atualizar pedido: %w", err)
	}
	return o, nil
}
