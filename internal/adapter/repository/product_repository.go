package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floravitalis/creatinamax/internal/domain/product"
)

// ProductRepository implementa a interface product.Repository sobre
// PostgreSQL
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

const productColumns = `id, sku, slug, name, description, price, compare_price, cost_price,
		weight_kg, length_cm, width_cm, height_cm, images, specifications,
		featured, status, created_at, updated_at`

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("erro ao converter imagens para JSON: %w", err)
	}
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("erro ao converter especificações para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO products (
			id, sku, slug, name, description, price, compare_price, cost_price,
			weight_kg, length_cm, width_cm, height_cm, images, specifications,
			featured, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)`,
		p.ID, p.SKU, p.Slug, p.Name, p.Description, p.Price, p.ComparePrice, p.CostPrice,
		p.WeightKg, p.Dimensions.Length, p.Dimensions.Width, p.Dimensions.Height,
		images, specs, p.Featured, p.Status, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return product.ErrDuplicateSKU
		}
		return fmt.Errorf("erro ao criar produto: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var imagesJSON, specsJSON []byte

	err := row.Scan(
		&p.ID, &p.SKU, &p.Slug, &p.Name, &p.Description, &p.Price, &p.ComparePrice, &p.CostPrice,
		&p.WeightKg, &p.Dimensions.Length, &p.Dimensions.Width, &p.Dimensions.Height,
		&imagesJSON, &specsJSON, &p.Featured, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
		return nil, fmt.Errorf("erro ao converter imagens: %w", err)
	}
	if err := json.Unmarshal(specsJSON, &p.Specifications); err != nil {
		return nil, fmt.Errorf("erro ao converter especificações: %w", err)
	}
	return &p, nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

// FindBySKU implementa product.Repository.FindBySKU
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
	return scanProduct(row)
}

// FindBySlug implementa product.Repository.FindBySlug
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*product.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return scanProduct(row)
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer produtos: %w", err)
	}
	return products, nil
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("erro ao converter imagens para JSON: %w", err)
	}
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("erro ao converter especificações para JSON: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE products SET
			slug = $2, name = $3, description = $4, price = $5, compare_price = $6,
			cost_price = $7, weight_kg = $8, length_cm = $9, width_cm = $10,
			height_cm = $11, images = $12, specifications = $13, featured = $14,
			status = $15, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Slug, p.Name, p.Description, p.Price, p.ComparePrice,
		p.CostPrice, p.WeightKg, p.Dimensions.Length, p.Dimensions.Width,
		p.Dimensions.Height, images, specs, p.Featured, p.Status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// UpdateStatus implementa product.Repository.UpdateStatus
func (r *ProductRepository) UpdateStatus(ctx context.Context, id string, status product.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}
	return count, nil
}
