package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floravitalis/creatinamax/internal/domain/batch"
)

// BatchRepository implementa a interface batch.Repository sobre PostgreSQL
type BatchRepository struct {
	db *pgxpool.Pool
}

// NewBatchRepository cria uma nova instância de BatchRepository
func NewBatchRepository(db *pgxpool.Pool) batch.Repository {
	return &BatchRepository{
		db: db,
	}
}

const batchColumns = `id, product_id, batch_number, manufacturing_date, expiration_date,
		quantity, reserved_quantity, available_quantity, cost_price, supplier,
		quality_status, notes, created_at, updated_at`

// Create implementa batch.Repository.Create
func (r *BatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO batches (
			id, product_id, batch_number, manufacturing_date, expiration_date,
			quantity, reserved_quantity, available_quantity, cost_price, supplier,
			quality_status, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`,
		b.ID, b.ProductID, b.BatchNumber, b.ManufacturingDate, b.ExpirationDate,
		b.Quantity, b.ReservedQuantity, b.AvailableQuantity, b.CostPrice, b.Supplier,
		b.QualityStatus, b.Notes, b.CreatedAt, b.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar lote: %w", err)
	}
	return nil
}

func scanBatch(row pgx.Row) (*batch.Batch, error) {
	var b batch.Batch
	err := row.Scan(
		&b.ID, &b.ProductID, &b.BatchNumber, &b.ManufacturingDate, &b.ExpirationDate,
		&b.Quantity, &b.ReservedQuantity, &b.AvailableQuantity, &b.CostPrice, &b.Supplier,
		&b.QualityStatus, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, batch.ErrBatchNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lote: %w", err)
	}
	return &b, nil
}

// FindByID implementa batch.Repository.FindByID
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*batch.Batch, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
	return scanBatch(row)
}

// FindByProduct implementa batch.Repository.FindByProduct
func (r *BatchRepository) FindByProduct(ctx context.Context, productID string) ([]*batch.Batch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE product_id = $1 ORDER BY created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lotes do produto: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

// List implementa batch.Repository.List
func (r *BatchRepository) List(ctx context.Context, limit, offset int) ([]*batch.Batch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+batchColumns+` FROM batches ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lotes: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

func collectBatches(rows pgx.Rows) ([]*batch.Batch, error) {
	var batches []*batch.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer lotes: %w", err)
	}
	return batches, nil
}

// Update implementa batch.Repository.Update
func (r *BatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE batches SET
			batch_number = $2, manufacturing_date = $3, expiration_date = $4,
			cost_price = $5, supplier = $6, quality_status = $7, notes = $8,
			updated_at = NOW()
		WHERE id = $1`,
		b.ID, b.BatchNumber, b.ManufacturingDate, b.ExpirationDate,
		b.CostPrice, b.Supplier, b.QualityStatus, b.Notes)
	if err != nil {
		return fmt.Errorf("erro ao atualizar lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}

// UpdateBalances implementa batch.Repository.UpdateBalances. Os deltas
// são aplicados em um único UPDATE condicionado: sob concorrência o banco
// serializa a leitura e a escrita, e saldo que ficaria negativo não é
// aplicado
func (r *BatchRepository) UpdateBalances(ctx context.Context, id string, quantityDelta, reservedDelta, availableDelta int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE batches SET
			quantity = quantity + $2,
			reserved_quantity = reserved_quantity + $3,
			available_quantity = available_quantity + $4,
			updated_at = NOW()
		WHERE id = $1
			AND quantity + $2 >= 0
			AND reserved_quantity + $3 >= 0
			AND available_quantity + $4 >= 0`,
		id, quantityDelta, reservedDelta, availableDelta)
	if err != nil {
		return fmt.Errorf("erro ao atualizar saldos do lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguir lote inexistente de saldo insuficiente
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM batches WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("erro ao verificar existência do lote: %w", err)
		}
		if !exists {
			return batch.ErrBatchNotFound
		}
		return batch.ErrInsufficientBalance
	}
	return nil
}

// UpdateQualityStatus implementa batch.Repository.UpdateQualityStatus
func (r *BatchRepository) UpdateQualityStatus(ctx context.Context, id string, status batch.QualityStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE batches SET quality_status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status de qualidade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}

// Delete implementa batch.Repository.Delete
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}
