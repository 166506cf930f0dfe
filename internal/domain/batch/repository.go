package batch

import (
	"context"
	"errors"
)

var ErrBatchNotFound = errors.New("lote não encontrado")

// Repository define a interface para operações de repositório de lotes
type Repository interface {
	// Create cria um novo lote
	Create(ctx context.Context, b *Batch) error

	// FindByID busca um lote pelo ID
	FindByID(ctx context.Context, id string) (*Batch, error)

	// FindByProduct lista os lotes de um produto
	FindByProduct(ctx context.Context, productID string) ([]*Batch, error)

	// List lista os lotes com paginação
	List(ctx context.Context, limit, offset int) ([]*Batch, error)

	// Update atualiza os dados de um lote existente
	Update(ctx context.Context, b *Batch) error

	// UpdateBalances aplica deltas sobre quantidade total, reservada e
	// disponível em uma única operação atômica. Retorna
	// ErrInsufficientBalance se algum saldo ficaria negativo, sem aplicar
	// nada
	UpdateBalances(ctx context.Context, id string, quantityDelta, reservedDelta, availableDelta int) error

	// UpdateQualityStatus atualiza o status de qualidade de um lote
	UpdateQualityStatus(ctx context.Context, id string, status QualityStatus) error

	// Delete remove o registro de um lote. A baixa contábil deve ter sido
	// registrada no ledger antes da remoção
	Delete(ctx context.Context, id string) error
}
