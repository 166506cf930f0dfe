package order

import (
	"context"
	"errors"
)

var ErrOrderNotFound = errors.New("pedido não encontrado")

// Repository define a interface para operações de repositório de pedidos
type Repository interface {
	// Create cria um novo pedido
	Create(ctx context.Context, o *Order) error

	// FindByID busca um pedido pelo ID
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByGatewayPaymentID busca um pedido pelo id de pagamento do
	// gateway. Usado pela confirmação idempotente de pagamento
	FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*Order, error)

	// FindByCustomer lista os pedidos de um cliente
	FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*Order, error)

	// List lista os pedidos com paginação
	List(ctx context.Context, limit, offset int) ([]*Order, error)

	// Update atualiza os dados de um pedido existente
	Update(ctx context.Context, o *Order) error
}

// ProcessedEventRepository controla a deduplicação de eventos de webhook.
// Provedores reentregam eventos; o processamento precisa ser idempotente
type ProcessedEventRepository interface {
	// MarkProcessed registra o evento como processado. Retorna false se o
	// evento já havia sido processado antes
	MarkProcessed(ctx context.Context, provider, eventID string) (bool, error)
}
