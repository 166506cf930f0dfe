package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floravitalis/creatinamax/internal/domain/inventory"
)

// MovementRepository implementa a interface inventory.Repository sobre
// PostgreSQL. A tabela é append-only: não há UPDATE nem DELETE
type MovementRepository struct {
	db *pgxpool.Pool
}

// NewMovementRepository cria uma nova instância de MovementRepository
func NewMovementRepository(db *pgxpool.Pool) inventory.Repository {
	return &MovementRepository{
		db: db,
	}
}

const movementColumns = `id, product_id, COALESCE(batch_id, ''), type, quantity, reason,
		user_id, COALESCE(order_id, ''), created_at`

// Append implementa inventory.Repository.Append
func (r *MovementRepository) Append(ctx context.Context, m *inventory.Movement) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO inventory_movements (
			id, product_id, batch_id, type, quantity, reason, user_id, order_id, created_at
		) VALUES (
			$1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), $9
		)`,
		m.ID, m.ProductID, m.BatchID, m.Type, m.Quantity, m.Reason, m.UserID, m.OrderID, m.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao gravar movimentação: %w", err)
	}
	return nil
}

func collectMovements(rows pgx.Rows) ([]*inventory.Movement, error) {
	var movements []*inventory.Movement
	for rows.Next() {
		var m inventory.Movement
		err := rows.Scan(&m.ID, &m.ProductID, &m.BatchID, &m.Type, &m.Quantity,
			&m.Reason, &m.UserID, &m.OrderID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler movimentação: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer movimentações: %w", err)
	}
	return movements, nil
}

// FindByProduct implementa inventory.Repository.FindByProduct
func (r *MovementRepository) FindByProduct(ctx context.Context, productID string, limit, offset int) ([]*inventory.Movement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações do produto: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// FindByBatch implementa inventory.Repository.FindByBatch
func (r *MovementRepository) FindByBatch(ctx context.Context, batchID string) ([]*inventory.Movement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements
		WHERE batch_id = $1 ORDER BY created_at DESC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações do lote: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// FindByOrder implementa inventory.Repository.FindByOrder
func (r *MovementRepository) FindByOrder(ctx context.Context, orderID string) ([]*inventory.Movement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements
		WHERE order_id = $1 ORDER BY created_at DESC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações do pedido: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// List implementa inventory.Repository.List
func (r *MovementRepository) List(ctx context.Context, limit, offset int) ([]*inventory.Movement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}
