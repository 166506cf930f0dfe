package product

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrDuplicateSKU    = errors.New("produto com mesmo SKU já existe")
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindBySKU busca um produto pelo SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindBySlug busca um produto pelo slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// List lista os produtos com paginação
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Update atualiza os dados de um produto existente
	Update(ctx context.Context, p *Product) error

	// UpdateStatus atualiza o status de um produto
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Count conta quantos produtos existem
	Count(ctx context.Context) (int, error)
}
