package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floravitalis/creatinamax/internal/domain/order"
)

// OrderRepository implementa a interface order.Repository sobre PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *pgxpool.Pool) order.Repository {
	return &OrderRepository{
		db: db,
	}
}

const orderColumns = `id, customer_id, items, subtotal, shipping_cost, discount, total,
		status, status_history, payment_method, payment_status, payment_gateway,
		COALESCE(gateway_payment_id, ''), shipping_address, shipping_cep, created_at, updated_at`

// Create implementa order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}
	history, err := json.Marshal(o.StatusHistory)
	if err != nil {
		return fmt.Errorf("erro ao converter histórico para JSON: %w", err)
	}
	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("erro ao converter endereço para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO orders (
			id, customer_id, items, subtotal, shipping_cost, discount, total,
			status, status_history, payment_method, payment_status, payment_gateway,
			gateway_payment_id, shipping_address, shipping_cep, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16, $17
		)`,
		o.ID, o.CustomerID, items, o.Subtotal, o.ShippingCost, o.Discount, o.Total,
		o.Status, history, o.PaymentMethod, o.PaymentStatus, o.PaymentGateway,
		o.GatewayPaymentID, address, o.ShippingCEP, o.CreatedAt, o.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var itemsJSON, historyJSON, addressJSON []byte

	err := row.Scan(
		&o.ID, &o.CustomerID, &itemsJSON, &o.Subtotal, &o.ShippingCost, &o.Discount, &o.Total,
		&o.Status, &historyJSON, &o.PaymentMethod, &o.PaymentStatus, &o.PaymentGateway,
		&o.GatewayPaymentID, &addressJSON, &o.ShippingCEP, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}
	if err := json.Unmarshal(historyJSON, &o.StatusHistory); err != nil {
		return nil, fmt.Errorf("erro ao converter histórico: %w", err)
	}
	if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("erro ao converter endereço: %w", err)
	}
	return &o, nil
}

// FindByID implementa order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

// FindByGatewayPaymentID implementa order.Repository.FindByGatewayPaymentID
func (r *OrderRepository) FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*order.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE gateway_payment_id = $1`, gatewayPaymentID)
	return scanOrder(row)
}

func collectOrders(rows pgx.Rows) ([]*order.Order, error) {
	var orders []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer pedidos: %w", err)
	}
	return orders, nil
}

// FindByCustomer implementa order.Repository.FindByCustomer
func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos do cliente: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// List implementa order.Repository.List
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// Update implementa order.Repository.Update
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	history, err := json.Marshal(o.StatusHistory)
	if err != nil {
		return fmt.Errorf("erro ao converter histórico para JSON: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET
			status = $2, status_history = $3, payment_status = $4,
			payment_gateway = $5, gateway_payment_id = NULLIF($6, ''), updated_at = NOW()
		WHERE id = $1`,
		o.ID, o.Status, history, o.PaymentStatus, o.PaymentGateway, o.GatewayPaymentID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ProcessedEventRepository implementa order.ProcessedEventRepository
// sobre PostgreSQL. A deduplicação usa a chave primária da tabela: a
// primeira inserção vence, reentregas não inserem nada
type ProcessedEventRepository struct {
	db *pgxpool.Pool
}

// NewProcessedEventRepository cria uma nova instância de
// ProcessedEventRepository
func NewProcessedEventRepository(db *pgxpool.Pool) order.ProcessedEventRepository {
	return &ProcessedEventRepository{
		db: db,
	}
}

// MarkProcessed implementa order.ProcessedEventRepository.MarkProcessed
func (r *ProcessedEventRepository) MarkProcessed(ctx context.Context, provider, eventID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO processed_webhook_events (provider, event_id, processed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (provider, event_id) DO NOTHING`,
		provider, eventID)
	if err != nil {
		return false, fmt.Errorf("erro ao registrar evento de webhook: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
