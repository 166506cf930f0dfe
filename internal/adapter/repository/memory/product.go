package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/floravitalis/creatinamax/internal/domain/product"
)

// ProductRepository implementa product.Repository em memória
type ProductRepository struct {
	mu    sync.RWMutex
	items map[string]*product.Product
}

// NewProductRepository cria um novo repositório de produtos em memória
func NewProductRepository() *ProductRepository {
	return &ProductRepository{items: make(map[string]*product.Product)}
}

func cloneProduct(p *product.Product) *product.Product {
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	clone.Specifications = make(map[string]string, len(p.Specifications))
	for k, v := range p.Specifications {
		clone.Specifications[k] = v
	}
	return &clone
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.SKU == p.SKU {
			return product.ErrDuplicateSKU
		}
	}
	r.items[p.ID] = cloneProduct(p)
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

// FindBySKU implementa product.Repository.FindBySKU
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, product.ErrProductNotFound
}

// FindBySlug implementa product.Repository.FindBySlug
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.Slug == slug {
			return cloneProduct(p), nil
		}
	}
	return nil, product.ErrProductNotFound
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*product.Product, 0, len(r.items))
	for _, p := range r.items {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return product.ErrProductNotFound
	}
	r.items[p.ID] = cloneProduct(p)
	return nil
}

// UpdateStatus implementa product.Repository.UpdateStatus
func (r *ProductRepository) UpdateStatus(ctx context.Context, id string, status product.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return product.ErrProductNotFound
	}
	p.Status = status
	return nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
