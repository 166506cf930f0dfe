package inventory

import (
	"context"
)

// Repository define a interface para o registro de movimentações. O log é
// append-only: movimentações nunca são alteradas ou removidas
type Repository interface {
	// Append grava uma nova movimentação
	Append(ctx context.Context, m *Movement) error

	// FindByProduct lista as movimentações de um produto, da mais recente
	// para a mais antiga
	FindByProduct(ctx context.Context, productID string, limit, offset int) ([]*Movement, error)

	// FindByBatch lista as movimentações de um lote
	FindByBatch(ctx context.Context, batchID string) ([]*Movement, error)

	// FindByOrder lista as movimentações vinculadas a um pedido
	FindByOrder(ctx context.Context, orderID string) ([]*Movement, error)

	// List lista as movimentações com paginação
	List(ctx context.Context, limit, offset int) ([]*Movement, error)
}
