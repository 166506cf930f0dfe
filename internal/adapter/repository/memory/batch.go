// Package memory implementa os repositórios do domínio sobre mapas em
// memória. É o armazenamento de demonstração usado quando não há banco de
// dados configurado, e também a base dos testes. Todas as operações
// devolvem cópias para que chamadores nunca alterem o estado interno sem
// passar pelo repositório
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/floravitalis/creatinamax/internal/domain/batch"
)

// BatchRepository implementa batch.Repository em memória
type BatchRepository struct {
	mu    sync.RWMutex
	items map[string]*batch.Batch
}

// NewBatchRepository cria um novo repositório de lotes em memória
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{items: make(map[string]*batch.Batch)}
}

// Create implementa batch.Repository.Create
func (r *BatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b.Clone()
	return nil
}

// FindByID implementa batch.Repository.FindByID
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*batch.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, batch.ErrBatchNotFound
	}
	return b.Clone(), nil
}

// FindByProduct implementa batch.Repository.FindByProduct
func (r *BatchRepository) FindByProduct(ctx context.Context, productID string) ([]*batch.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*batch.Batch
	for _, b := range r.items {
		if b.ProductID == productID {
			result = append(result, b.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// List implementa batch.Repository.List
func (r *BatchRepository) List(ctx context.Context, limit, offset int) ([]*batch.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*batch.Batch, 0, len(r.items))
	for _, b := range r.items {
		all = append(all, b.Clone())
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

// Update implementa batch.Repository.Update
func (r *BatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return batch.ErrBatchNotFound
	}
	r.items[b.ID] = b.Clone()
	return nil
}

// UpdateBalances implementa batch.Repository.UpdateBalances. A leitura,
// a verificação e a escrita acontecem sob o mesmo lock: duas saídas
// simultâneas sobre o mesmo lote nunca leem o mesmo saldo
func (r *BatchRepository) UpdateBalances(ctx context.Context, id string, quantityDelta, reservedDelta, availableDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return batch.ErrBatchNotFound
	}
	if b.Quantity+quantityDelta < 0 || b.ReservedQuantity+reservedDelta < 0 || b.AvailableQuantity+availableDelta < 0 {
		return batch.ErrInsufficientBalance
	}
	b.Quantity += quantityDelta
	b.ReservedQuantity += reservedDelta
	b.AvailableQuantity += availableDelta
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateQualityStatus implementa batch.Repository.UpdateQualityStatus
func (r *BatchRepository) UpdateQualityStatus(ctx context.Context, id string, status batch.QualityStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return batch.ErrBatchNotFound
	}
	b.QualityStatus = status
	b.UpdatedAt = time.Now()
	return nil
}

// Delete implementa batch.Repository.Delete
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return batch.ErrBatchNotFound
	}
	delete(r.items, id)
	return nil
}
