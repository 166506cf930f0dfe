package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/floravitalis/creatinamax/internal/domain/inventory"
)

// MovementRepository implementa inventory.Repository em memória. O log é
// append-only: não existe operação de alteração ou remoção
type MovementRepository struct {
	mu    sync.RWMutex
	items []*inventory.Movement
}

// NewMovementRepository cria um novo log de movimentações em memória
func NewMovementRepository() *MovementRepository {
	return &MovementRepository{}
}

// Append implementa inventory.Repository.Append
func (r *MovementRepository) Append(ctx context.Context, m *inventory.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *m
	r.items = append(r.items, &clone)
	return nil
}

func (r *MovementRepository) filter(match func(*inventory.Movement) bool) []*inventory.Movement {
	var result []*inventory.Movement
	for _, m := range r.items {
		if match(m) {
			clone := *m
			result = append(result, &clone)
		}
	}
	// Mais recentes primeiro
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// FindByProduct implementa inventory.Repository.FindByProduct
func (r *MovementRepository) FindByProduct(ctx context.Context, productID string, limit, offset int) ([]*inventory.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := r.filter(func(m *inventory.Movement) bool { return m.ProductID == productID })
	return paginate(result, limit, offset), nil
}

// FindByBatch implementa inventory.Repository.FindByBatch
func (r *MovementRepository) FindByBatch(ctx context.Context, batchID string) ([]*inventory.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(m *inventory.Movement) bool { return m.BatchID == batchID }), nil
}

// FindByOrder implementa inventory.Repository.FindByOrder
func (r *MovementRepository) FindByOrder(ctx context.Context, orderID string) ([]*inventory.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(m *inventory.Movement) bool { return m.OrderID == orderID }), nil
}

// List implementa inventory.Repository.List
func (r *MovementRepository) List(ctx context.Context, limit, offset int) ([]*inventory.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := r.filter(func(m *inventory.Movement) bool { return true })
	return paginate(result, limit, offset), nil
}
