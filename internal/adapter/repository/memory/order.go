package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/floravitalis/creatinamax/internal/domain/order"
)

// OrderRepository implementa order.Repository em memória
type OrderRepository struct {
	mu    sync.RWMutex
	items map[string]*order.Order
}

// NewOrderRepository cria um novo repositório de pedidos em memória
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{items: make(map[string]*order.Order)}
}

func cloneOrder(o *order.Order) *order.Order {
	clone := *o
	clone.Items = append([]order.Item(nil), o.Items...)
	clone.StatusHistory = append([]order.StatusChange(nil), o.StatusHistory...)
	return &clone
}

// Create implementa order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[o.ID] = cloneOrder(o)
	return nil
}

// FindByID implementa order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.items[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

// FindByGatewayPaymentID implementa order.Repository.FindByGatewayPaymentID
func (r *OrderRepository) FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.items {
		if o.GatewayPaymentID != "" && o.GatewayPaymentID == gatewayPaymentID {
			return cloneOrder(o), nil
		}
	}
	return nil, order.ErrOrderNotFound
}

// FindByCustomer implementa order.Repository.FindByCustomer
func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*order.Order
	for _, o := range r.items {
		if o.CustomerID == customerID {
			result = append(result, cloneOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return paginate(result, limit, offset), nil
}

// List implementa order.Repository.List
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*order.Order, 0, len(r.items))
	for _, o := range r.items {
		all = append(all, cloneOrder(o))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

// Update implementa order.Repository.Update
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	r.items[o.ID] = cloneOrder(o)
	return nil
}

// ProcessedEventRepository implementa order.ProcessedEventRepository em
// memória
type ProcessedEventRepository struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewProcessedEventRepository cria um novo controle de eventos de webhook
func NewProcessedEventRepository() *ProcessedEventRepository {
	return &ProcessedEventRepository{seen: make(map[string]bool)}
}

// MarkProcessed implementa order.ProcessedEventRepository.MarkProcessed
func (r *ProcessedEventRepository) MarkProcessed(ctx context.Context, provider, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := provider + ":" + eventID
	if r.seen[key] {
		return false, nil
	}
	r.seen[key] = true
	return true, nil
}
