package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/adapter/gateway"
	"github.com/floravitalis/creatinamax/internal/adapter/repository/memory"
	"github.com/floravitalis/creatinamax/internal/domain/batch"
	"github.com/floravitalis/creatinamax/internal/domain/inventory"
	"github.com/floravitalis/creatinamax/internal/domain/order"
	"github.com/floravitalis/creatinamax/internal/domain/payment"
	"github.com/floravitalis/creatinamax/internal/domain/product"
	"github.com/floravitalis/creatinamax/internal/domain/shipping"
	"github.com/floravitalis/creatinamax/pkg/logger"
)

// flakyMovementRepository delega ao repositório em memória mas permite
// forçar falha em chamadas específicas de Append, para exercitar os
// caminhos de compensação do checkout
type flakyMovementRepository struct {
	*memory.MovementRepository
	calls  int
	failOn map[int]bool
}

func (r *flakyMovementRepository) Append(ctx context.Context, m *inventory.Movement) error {
	r.calls++
	if r.failOn[r.calls] {
		return errors.New("log de movimentações indisponível")
	}
	return r.MovementRepository.Append(ctx, m)
}

type checkoutEnv struct {
	service   *order.CheckoutService
	orders    *memory.OrderRepository
	products  *memory.ProductRepository
	batches   *memory.BatchRepository
	movements *flakyMovementRepository
	ledger    *inventory.Ledger
	product   *product.Product
	batch     *batch.Batch
}

// newCheckoutEnv monta o checkout completo sobre repositórios em memória e
// gateways em modo simulado, com um produto ativo e um lote aprovado de 50
// unidades
func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()
	ctx := context.Background()

	products := memory.NewProductRepository()
	batches := memory.NewBatchRepository()
	movements := &flakyMovementRepository{MovementRepository: memory.NewMovementRepository(), failOn: map[int]bool{}}
	orders := memory.NewOrderRepository()

	p, err := product.NewProduct("CRT-300", "Creatina Monohidratada 300g", "Creatina pura micronizada", decimal.NewFromFloat(149.90))
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	p.WeightKg = 0.3
	if err := products.Create(ctx, p); err != nil {
		t.Fatalf("Create product: %v", err)
	}

	now := time.Now()
	b, err := batch.NewBatch(p.ID, "CRT-2026-001", now.Add(-24*time.Hour), now.Add(365*24*time.Hour), 50, decimal.NewFromInt(40), "Flora Vitalis Industrial")
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	b.Approve()
	if err := batches.Create(ctx, b); err != nil {
		t.Fatalf("Create batch: %v", err)
	}

	log := logger.NewNopLogger()
	ledger := inventory.NewLedger(batches, movements, log)
	factory := gateway.NewFactory(&gateway.Config{Environment: "development", RequestTimeout: 5 * time.Second})
	service := order.NewCheckoutService(orders, products, ledger, factory, shipping.NewCalculator(), log)

	return &checkoutEnv{
		service:   service,
		orders:    orders,
		products:  products,
		batches:   batches,
		movements: movements,
		ledger:    ledger,
		product:   p,
		batch:     b,
	}
}

func checkoutInput(env *checkoutEnv, quantity int, method payment.MethodType) order.CheckoutInput {
	in := order.CheckoutInput{
		CustomerID: "cust-1",
		Items:      []order.CheckoutItem{{ProductID: env.product.ID, Quantity: quantity}},
		Method:     payment.Method{Type: method, Installments: 1},
		Customer: payment.Customer{
			Name:     "Maria Oliveira",
			Email:    "maria@example.com",
			Phone:    "11988887777",
			Document: "12345678901",
			Address: payment.Address{
				Street:   "Av. Paulista",
				Number:   "1000",
				District: "Bela Vista",
				City:     "São Paulo",
				State:    "SP",
				ZipCode:  "01310-100",
			},
		},
	}
	if method.RequiresCard() {
		in.Card = &payment.Card{
			Number:     "5031433215406351",
			HolderName: "MARIA OLIVEIRA",
			ExpMonth:   11,
			ExpYear:    2030,
			CVV:        "123",
		}
	}
	return in
}

func availableStock(t *testing.T, env *checkoutEnv) int {
	t.Helper()
	total, err := env.ledger.AvailableStock(context.Background(), env.product.ID)
	if err != nil {
		t.Fatalf("AvailableStock: %v", err)
	}
	return total
}

func TestPlaceOrderApprovedCard(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	// 2 × 149.90 = 299.80: frete grátis e abaixo do limite de aprovação
	result, err := env.service.PlaceOrder(ctx, checkoutInput(env, 2, payment.MethodCreditCard))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if result.Order.Status != order.StatusPaid {
		t.Errorf("status = %s, esperava PAID", result.Order.Status)
	}
	if result.Payment.Status != payment.StatusApproved {
		t.Errorf("pagamento = %s, esperava approved", result.Payment.Status)
	}
	if !result.Shipping.Free || !result.Order.ShippingCost.IsZero() {
		t.Errorf("subtotal acima de 250 deveria ter frete grátis, custo = %s", result.Order.ShippingCost)
	}
	if !result.Order.Total.Equal(decimal.NewFromFloat(299.80)) {
		t.Errorf("total = %s, esperava 299.8", result.Order.Total)
	}

	// Baixa de estoque concluída: nada reservado, 48 disponíveis
	if got := availableStock(t, env); got != 48 {
		t.Errorf("estoque disponível = %d, esperava 48", got)
	}
	b, _ := env.batches.FindByID(ctx, env.batch.ID)
	if b.ReservedQuantity != 0 {
		t.Errorf("reserva remanescente = %d, esperava 0", b.ReservedQuantity)
	}

	// O pedido persistido carrega o vínculo com o gateway
	saved, err := env.orders.FindByID(ctx, result.Order.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if saved.GatewayPaymentID == "" || saved.PaymentGateway != gateway.ProviderMercadoPago {
		t.Errorf("vínculo com gateway = %s/%s", saved.PaymentGateway, saved.GatewayPaymentID)
	}
}

func TestPlaceOrderRejectedCardRestoresStock(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	// 7 × 149.90 = 1049.30: acima do limite simulado do Mercado Pago
	result, err := env.service.PlaceOrder(ctx, checkoutInput(env, 7, payment.MethodCreditCard))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if result.Order.Status != order.StatusCancelled {
		t.Errorf("status = %s, esperava CANCELLED", result.Order.Status)
	}
	if result.Payment.Status != payment.StatusRejected {
		t.Errorf("pagamento = %s, esperava rejected", result.Payment.Status)
	}
	if got := availableStock(t, env); got != 50 {
		t.Errorf("estoque disponível = %d, esperava 50 restaurado", got)
	}
	b, _ := env.batches.FindByID(ctx, env.batch.ID)
	if b.ReservedQuantity != 0 {
		t.Errorf("reserva remanescente = %d, esperava 0", b.ReservedQuantity)
	}
}

func TestPlaceOrderPixKeepsReservation(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	result, err := env.service.PlaceOrder(ctx, checkoutInput(env, 3, payment.MethodPix))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if result.Order.Status != order.StatusPending {
		t.Errorf("status = %s, esperava PENDING aguardando o PIX", result.Order.Status)
	}
	if result.Payment.PixQRCode == "" {
		t.Error("resposta PIX sem QR code")
	}

	// A reserva segura o estoque até o webhook resolver o pagamento
	if got := availableStock(t, env); got != 47 {
		t.Errorf("estoque disponível = %d, esperava 47", got)
	}
	b, _ := env.batches.FindByID(ctx, env.batch.ID)
	if b.ReservedQuantity != 3 {
		t.Errorf("reserva = %d, esperava 3", b.ReservedQuantity)
	}
	if b.Quantity != 50 {
		t.Errorf("quantidade total = %d, esperava 50 até a confirmação", b.Quantity)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	env := newCheckoutEnv(t)

	_, err := env.service.PlaceOrder(context.Background(), checkoutInput(env, 51, payment.MethodCreditCard))
	var insufficient *inventory.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("esperava InsufficientStockError, obteve %v", err)
	}
	if got := availableStock(t, env); got != 50 {
		t.Errorf("estoque disponível = %d, esperava 50 intacto", got)
	}
}

func TestPlaceOrderInactiveProduct(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	if err := env.products.UpdateStatus(ctx, env.product.ID, product.StatusInactive); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := env.service.PlaceOrder(ctx, checkoutInput(env, 1, payment.MethodPix)); err == nil {
		t.Fatal("esperava erro para produto inativo")
	}
	if got := availableStock(t, env); got != 50 {
		t.Errorf("estoque disponível = %d, esperava 50 intacto", got)
	}
}

func TestPlaceOrderFulfillFailureKeepsOrderReconcilable(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	// A primeira gravação no log de movimentações falha: a cobrança foi
	// aprovada mas a baixa de estoque não se concretiza
	env.movements.failOn[1] = true

	_, err := env.service.PlaceOrder(ctx, checkoutInput(env, 2, payment.MethodCreditCard))
	if err == nil {
		t.Fatal("esperava erro quando a baixa de estoque falha")
	}

	// O pedido persistido guarda o vínculo com o gateway e segue pendente
	saved, err := env.orders.List(ctx, 10, 0)
	if err != nil || len(saved) != 1 {
		t.Fatalf("pedidos persistidos = %d (%v), esperava 1", len(saved), err)
	}
	o := saved[0]
	if o.Status != order.StatusPending {
		t.Errorf("status = %s, esperava PENDING reconciliável", o.Status)
	}
	if o.GatewayPaymentID == "" || o.PaymentGateway != gateway.ProviderMercadoPago {
		t.Errorf("vínculo com gateway perdido: %s/%s", o.PaymentGateway, o.GatewayPaymentID)
	}
	if o.PaymentStatus != payment.StatusApproved {
		t.Errorf("payment_status = %s, esperava approved registrado", o.PaymentStatus)
	}

	// A reserva permanece intacta para a nova tentativa
	if got := availableStock(t, env); got != 48 {
		t.Errorf("estoque disponível = %d, esperava 48", got)
	}
	b, _ := env.batches.FindByID(ctx, env.batch.ID)
	if b.ReservedQuantity != 2 || b.Quantity != 50 {
		t.Errorf("saldos = %d reservado / %d total, esperava 2/50", b.ReservedQuantity, b.Quantity)
	}

	// Com o log de volta, a reconciliação pelo id do gateway completa a baixa
	confirmed, err := env.service.ConfirmPayment(ctx, o.GatewayPaymentID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.Status != order.StatusPaid {
		t.Errorf("status após reconciliação = %s, esperava PAID", confirmed.Status)
	}
	if got := availableStock(t, env); got != 48 {
		t.Errorf("estoque após reconciliação = %d, esperava 48", got)
	}
	b, _ = env.batches.FindByID(ctx, env.batch.ID)
	if b.ReservedQuantity != 0 {
		t.Errorf("reserva remanescente = %d, esperava 0", b.ReservedQuantity)
	}
}

func TestPlaceOrderPartialFulfillCompensation(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	// Segundo produto no carrinho, com lote próprio de 40 unidades
	p2, err := product.NewProduct("CRT-150", "Creatina Monohidratada 150g", "Metade do pote", decimal.NewFromFloat(89.90))
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	p2.WeightKg = 0.15
	if err := env.products.Create(ctx, p2); err != nil {
		t.Fatalf("Create: %v", err)
	}
	now := time.Now()
	b2, err := batch.NewBatch(p2.ID, "CRT-2026-002", now.Add(-24*time.Hour), now.Add(365*24*time.Hour), 40, decimal.NewFromInt(25), "Flora Vitalis Industrial")
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	b2.Approve()
	if err := env.batches.Create(ctx, b2); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A saída do primeiro item grava; a do segundo falha. A compensação
	// (devolução do primeiro item) precisa passar
	env.movements.failOn[2] = true

	in := checkoutInput(env, 2, payment.MethodCreditCard)
	in.Items = append(in.Items, order.CheckoutItem{ProductID: p2.ID, Quantity: 3})
	if _, err := env.service.PlaceOrder(ctx, in); err == nil {
		t.Fatal("esperava erro quando a baixa do segundo item falha")
	}

	// Nenhum item fica meio baixado: os dois produtos voltam a ficar
	// inteiramente reservados
	bA, _ := env.batches.FindByID(ctx, env.batch.ID)
	if bA.Quantity != 50 || bA.ReservedQuantity != 2 || bA.AvailableQuantity != 48 {
		t.Errorf("saldos do produto 1 = %d/%d/%d, esperava 50/2/48", bA.Quantity, bA.ReservedQuantity, bA.AvailableQuantity)
	}
	bB, _ := env.batches.FindByID(ctx, b2.ID)
	if bB.Quantity != 40 || bB.ReservedQuantity != 3 || bB.AvailableQuantity != 37 {
		t.Errorf("saldos do produto 2 = %d/%d/%d, esperava 40/3/37", bB.Quantity, bB.ReservedQuantity, bB.AvailableQuantity)
	}

	// A reconciliação conclui o pedido e deduz cada item exatamente uma vez
	saved, err := env.orders.List(ctx, 10, 0)
	if err != nil || len(saved) != 1 {
		t.Fatalf("pedidos persistidos = %d (%v), esperava 1", len(saved), err)
	}
	confirmed, err := env.service.ConfirmPayment(ctx, saved[0].GatewayPaymentID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.Status != order.StatusPaid {
		t.Errorf("status = %s, esperava PAID", confirmed.Status)
	}
	bA, _ = env.batches.FindByID(ctx, env.batch.ID)
	if bA.ReservedQuantity != 0 || bA.AvailableQuantity != 48 {
		t.Errorf("produto 1 após reconciliação = %d/%d, esperava 0/48", bA.ReservedQuantity, bA.AvailableQuantity)
	}
	bB, _ = env.batches.FindByID(ctx, b2.ID)
	if bB.ReservedQuantity != 0 || bB.AvailableQuantity != 37 {
		t.Errorf("produto 2 após reconciliação = %d/%d, esperava 0/37", bB.ReservedQuantity, bB.AvailableQuantity)
	}
}

func TestConfirmPaymentApprovesAndIsIdempotent(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	result, err := env.service.PlaceOrder(ctx, checkoutInput(env, 2, payment.MethodPix))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// Reescreve o vínculo com um id sintético aprovado, como se o cliente
	// tivesse pago o PIX entre o checkout e o webhook
	paidID := "mercado_pago-sim-approved-pix-teste"
	o, _ := env.orders.FindByID(ctx, result.Order.ID)
	o.GatewayPaymentID = paidID
	if err := env.orders.Update(ctx, o); err != nil {
		t.Fatalf("Update: %v", err)
	}

	confirmed, err := env.service.ConfirmPayment(ctx, paidID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.Status != order.StatusPaid {
		t.Errorf("status = %s, esperava PAID", confirmed.Status)
	}
	if got := availableStock(t, env); got != 48 {
		t.Errorf("estoque disponível = %d, esperava 48", got)
	}

	// Reentrega do webhook: nenhuma baixa adicional
	again, err := env.service.ConfirmPayment(ctx, paidID)
	if err != nil {
		t.Fatalf("ConfirmPayment repetido: %v", err)
	}
	if again.Status != order.StatusPaid {
		t.Errorf("status após reentrega = %s", again.Status)
	}
	if got := availableStock(t, env); got != 48 {
		t.Errorf("estoque após reentrega = %d, esperava 48 inalterado", got)
	}
}

func TestConfirmPaymentRejectionReleasesStock(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	result, err := env.service.PlaceOrder(ctx, checkoutInput(env, 4, payment.MethodPix))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	rejectedID := "mercado_pago-sim-rejected-pix-teste"
	o, _ := env.orders.FindByID(ctx, result.Order.ID)
	o.GatewayPaymentID = rejectedID
	if err := env.orders.Update(ctx, o); err != nil {
		t.Fatalf("Update: %v", err)
	}

	confirmed, err := env.service.ConfirmPayment(ctx, rejectedID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.Status != order.StatusCancelled {
		t.Errorf("status = %s, esperava CANCELLED", confirmed.Status)
	}
	if got := availableStock(t, env); got != 50 {
		t.Errorf("estoque disponível = %d, esperava 50 restaurado", got)
	}
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	env := newCheckoutEnv(t)

	if _, err := env.service.ConfirmPayment(context.Background(), "inexistente"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("esperava ErrOrderNotFound, obteve %v", err)
	}
}

func TestConfirmPaymentStillPendingIsNoOp(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	result, err := env.service.PlaceOrder(ctx, checkoutInput(env, 2, payment.MethodPix))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// O id sintético do PIX ainda decodifica como pendente
	confirmed, err := env.service.ConfirmPayment(ctx, result.Order.GatewayPaymentID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.Status != order.StatusPending {
		t.Errorf("status = %s, esperava PENDING mantido", confirmed.Status)
	}
	if got := availableStock(t, env); got != 48 {
		t.Errorf("estoque disponível = %d, esperava 48 ainda reservado", got)
	}
}
