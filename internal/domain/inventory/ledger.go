package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/floravitalis/creatinamax/internal/domain/batch"
	"github.com/floravitalis/creatinamax/pkg/logger"
)

// MovementInput contém os dados de entrada para registrar uma movimentação
type MovementInput struct {
	ProductID string
	BatchID   string // vazio = deduzir por FEFO entre os lotes do produto
	Type      MovementType
	Quantity  int
	Reason    string
	UserID    string
	OrderID   string
}

// Ledger é o serviço de contabilidade de estoque. Toda mudança de saldo
// passa por aqui e gera uma movimentação no log imutável. O registro da
// movimentação e a atualização do saldo formam uma unidade: em caso de
// falha nada é aplicado parcialmente.
//
// O acesso é serializado por produto, então duas saídas simultâneas sobre
// o mesmo lote nunca disputam a leitura e escrita do saldo
type Ledger struct {
	batches   batch.Repository
	movements Repository
	logger    logger.Logger
	locks     sync.Map // productID -> *sync.Mutex
}

// NewLedger cria um novo ledger de estoque
func NewLedger(batches batch.Repository, movements Repository, log logger.Logger) *Ledger {
	return &Ledger{
		batches:   batches,
		movements: movements,
		logger:    log,
	}
}

func (l *Ledger) lockProduct(productID string) func() {
	v, _ := l.locks.LoadOrStore(productID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// RecordMovement valida e registra uma movimentação, aplicando a mudança
// de saldo no lote correspondente. Movimentações de saída sem lote
// identificado são deduzidas por FEFO (vence-primeiro-sai-primeiro) entre
// os lotes vendáveis do produto, gerando uma movimentação por lote
// atingido. Entradas, devoluções e ajustes exigem lote identificado
func (l *Ledger) RecordMovement(ctx context.Context, in MovementInput) ([]*Movement, error) {
	// Validação antecipada: nenhum lote é tocado se a entrada é inválida
	if _, err := NewMovement(in.ProductID, in.BatchID, in.Type, in.Quantity, in.Reason, in.UserID, in.OrderID); err != nil {
		return nil, err
	}

	unlock := l.lockProduct(in.ProductID)
	defer unlock()

	if in.BatchID != "" {
		m, err := l.applyToBatch(ctx, in)
		if err != nil {
			return nil, err
		}
		return []*Movement{m}, nil
	}

	if in.Type != MovementOut {
		return nil, ErrBatchRequired
	}
	return l.applyFEFO(ctx, in)
}

// applyToBatch aplica a movimentação sobre um lote identificado
func (l *Ledger) applyToBatch(ctx context.Context, in MovementInput) (*Movement, error) {
	b, err := l.batches.FindByID(ctx, in.BatchID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar lote: %w", err)
	}
	if b.ProductID != in.ProductID {
		return nil, fmt.Errorf("lote %s não pertence ao produto %s", in.BatchID, in.ProductID)
	}

	var quantityDelta, availableDelta int
	switch in.Type {
	case MovementIn:
		quantityDelta, availableDelta = in.Quantity, in.Quantity
	case MovementOut:
		quantityDelta, availableDelta = 0, -in.Quantity
	case MovementAdjustment:
		quantityDelta, availableDelta = in.Quantity, in.Quantity
	case MovementReturn:
		quantityDelta, availableDelta = 0, in.Quantity
	case MovementTransfer:
		// Transferência entre locais não altera saldos neste sistema;
		// fica apenas registrada para auditoria
		quantityDelta, availableDelta = 0, 0
	}

	if quantityDelta != 0 || availableDelta != 0 {
		if err := l.batches.UpdateBalances(ctx, b.ID, quantityDelta, 0, availableDelta); err != nil {
			if errors.Is(err, batch.ErrInsufficientBalance) {
				return nil, &InsufficientStockError{
					ProductID: in.ProductID,
					BatchID:   b.ID,
					Requested: in.Quantity,
					Available: b.AvailableQuantity,
				}
			}
			return nil, fmt.Errorf("erro ao atualizar saldo do lote: %w", err)
		}
	}

	m, err := NewMovement(in.ProductID, b.ID, in.Type, in.Quantity, in.Reason, in.UserID, in.OrderID)
	if err != nil {
		return nil, err
	}
	if err := l.movements.Append(ctx, m); err != nil {
		// Reverter o saldo para não deixar mudança sem rastro no log
		if quantityDelta != 0 || availableDelta != 0 {
			if revErr := l.batches.UpdateBalances(ctx, b.ID, -quantityDelta, 0, -availableDelta); revErr != nil {
				l.logger.Error("falha ao reverter saldo após erro no log de movimentações", "batch_id", b.ID, "error", revErr)
			}
		}
		return nil, fmt.Errorf("erro ao gravar movimentação: %w", err)
	}
	return m, nil
}

// applyFEFO deduz uma saída entre os lotes vendáveis do produto, dos que
// vencem primeiro para os que vencem depois
func (l *Ledger) applyFEFO(ctx context.Context, in MovementInput) ([]*Movement, error) {
	batches, err := l.sellableBatches(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, b := range batches {
		total += b.AvailableQuantity
	}
	if total < in.Quantity {
		return nil, &InsufficientStockError{
			ProductID: in.ProductID,
			Requested: in.Quantity,
			Available: total,
		}
	}

	var movements []*Movement
	remaining := in.Quantity
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		take := b.AvailableQuantity
		if take > remaining {
			take = remaining
		}
		if err := l.batches.UpdateBalances(ctx, b.ID, 0, 0, -take); err != nil {
			l.rollbackFEFO(ctx, movements)
			return nil, fmt.Errorf("erro ao deduzir saldo do lote %s: %w", b.ID, err)
		}
		m, err := NewMovement(in.ProductID, b.ID, MovementOut, take, in.Reason, in.UserID, in.OrderID)
		if err != nil {
			l.batches.UpdateBalances(ctx, b.ID, 0, 0, take)
			l.rollbackFEFO(ctx, movements)
			return nil, err
		}
		if err := l.movements.Append(ctx, m); err != nil {
			l.batches.UpdateBalances(ctx, b.ID, 0, 0, take)
			l.rollbackFEFO(ctx, movements)
			return nil, fmt.Errorf("erro ao gravar movimentação: %w", err)
		}
		movements = append(movements, m)
		remaining -= take
	}
	return movements, nil
}

// rollbackFEFO devolve os saldos já deduzidos quando uma dedução
// multi-lote falha no meio. O log imutável mantém as movimentações já
// gravadas; a compensação é registrada como advertência
func (l *Ledger) rollbackFEFO(ctx context.Context, applied []*Movement) {
	for _, m := range applied {
		if err := l.batches.UpdateBalances(ctx, m.BatchID, 0, 0, m.Quantity); err != nil {
			l.logger.Error("falha ao compensar dedução FEFO", "batch_id", m.BatchID, "error", err)
		}
	}
	if len(applied) > 0 {
		l.logger.Warn("dedução FEFO revertida após falha parcial", "movements", len(applied))
	}
}

// sellableBatches retorna os lotes aprovados, não vencidos e com saldo,
// ordenados por data de validade crescente
func (l *Ledger) sellableBatches(ctx context.Context, productID string) ([]*batch.Batch, error) {
	all, err := l.batches.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lotes do produto: %w", err)
	}
	now := time.Now()
	var sellable []*batch.Batch
	for _, b := range all {
		if b.Sellable(now) {
			sellable = append(sellable, b)
		}
	}
	sort.Slice(sellable, func(i, j int) bool {
		return sellable[i].ExpirationDate.Before(sellable[j].ExpirationDate)
	})
	return sellable, nil
}

// AvailableStock retorna o total disponível de um produto somando o saldo
// de todos os seus lotes. Nunca retorna valor negativo
func (l *Ledger) AvailableStock(ctx context.Context, productID string) (int, error) {
	batches, err := l.batches.FindByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("erro ao listar lotes do produto: %w", err)
	}
	total := 0
	for _, b := range batches {
		total += b.AvailableQuantity
	}
	if total < 0 {
		l.logger.Warn("soma de saldos disponíveis negativa", "product_id", productID, "total", total)
		return 0, nil
	}
	return total, nil
}

// BatchesByProduct lista os lotes de um produto. A ordenação por validade
// fica a cargo dos chamadores que precisam de visão FEFO
func (l *Ledger) BatchesByProduct(ctx context.Context, productID string) ([]*batch.Batch, error) {
	return l.batches.FindByProduct(ctx, productID)
}

// Reserve compromete quantidade disponível do produto com um pedido ainda
// não confirmado, dos lotes que vencem primeiro para os que vencem depois.
// Reservas não geram movimentação: são compromissos, não mudanças de
// estoque
func (l *Ledger) Reserve(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	unlock := l.lockProduct(productID)
	defer unlock()

	batches, err := l.sellableBatches(ctx, productID)
	if err != nil {
		return err
	}
	total := 0
	for _, b := range batches {
		total += b.AvailableQuantity
	}
	if total < qty {
		return &InsufficientStockError{ProductID: productID, Requested: qty, Available: total}
	}

	remaining := qty
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		take := b.AvailableQuantity
		if take > remaining {
			take = remaining
		}
		if err := l.batches.UpdateBalances(ctx, b.ID, 0, take, -take); err != nil {
			return fmt.Errorf("erro ao reservar saldo do lote %s: %w", b.ID, err)
		}
		remaining -= take
	}
	return nil
}

// Release desfaz reservas do produto, devolvendo quantidade ao saldo
// disponível
func (l *Ledger) Release(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	unlock := l.lockProduct(productID)
	defer unlock()

	all, err := l.batches.FindByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("erro ao listar lotes do produto: %w", err)
	}
	var reserved []*batch.Batch
	for _, b := range all {
		if b.ReservedQuantity > 0 {
			reserved = append(reserved, b)
		}
	}
	sort.Slice(reserved, func(i, j int) bool {
		return reserved[i].ExpirationDate.Before(reserved[j].ExpirationDate)
	})

	remaining := qty
	for _, b := range reserved {
		if remaining == 0 {
			break
		}
		take := b.ReservedQuantity
		if take > remaining {
			take = remaining
		}
		if err := l.batches.UpdateBalances(ctx, b.ID, 0, -take, take); err != nil {
			return fmt.Errorf("erro ao liberar reserva do lote %s: %w", b.ID, err)
		}
		remaining -= take
	}
	if remaining > 0 {
		return fmt.Errorf("reserva a liberar maior que o total reservado do produto %s", productID)
	}
	return nil
}

// WriteOffBatch registra a baixa contábil de um lote e remove o registro.
// A remoção direta de lote não existe: toda baixa passa pelo log de
// movimentações para manter o rastro de auditoria
func (l *Ledger) WriteOffBatch(ctx context.Context, batchID, reason, userID string) error {
	b, err := l.batches.FindByID(ctx, batchID)
	if err != nil {
		return fmt.Errorf("erro ao buscar lote: %w", err)
	}

	unlock := l.lockProduct(b.ProductID)
	defer unlock()

	// Releitura sob o lock para não decidir com saldo desatualizado
	b, err = l.batches.FindByID(ctx, batchID)
	if err != nil {
		return fmt.Errorf("erro ao buscar lote: %w", err)
	}
	if b.ReservedQuantity > 0 {
		return batch.ErrHasReservations
	}

	// O ajuste destrói o que ainda estava vendável; unidades já vendidas
	// ficam documentadas pelas saídas anteriores. O delta aplicado e o
	// delta gravado no log são o mesmo: ajuste move quantidade total e
	// disponível juntos
	if b.AvailableQuantity != 0 {
		if err := l.batches.UpdateBalances(ctx, b.ID, -b.AvailableQuantity, 0, -b.AvailableQuantity); err != nil {
			return fmt.Errorf("erro ao zerar saldos do lote: %w", err)
		}
		m, err := NewMovement(b.ProductID, b.ID, MovementAdjustment, -b.AvailableQuantity, reason, userID, "")
		if err != nil {
			return err
		}
		if err := l.movements.Append(ctx, m); err != nil {
			return fmt.Errorf("erro ao gravar movimentação de baixa: %w", err)
		}
	}

	if err := l.batches.Delete(ctx, b.ID); err != nil {
		return fmt.Errorf("erro ao remover lote: %w", err)
	}
	return nil
}

// Movements lista as movimentações de um produto
func (l *Ledger) Movements(ctx context.Context, productID string, limit, offset int) ([]*Movement, error) {
	return l.movements.FindByProduct(ctx, productID, limit, offset)
}

// BatchMovements lista as movimentações de um lote
func (l *Ledger) BatchMovements(ctx context.Context, batchID string) ([]*Movement, error) {
	return l.movements.FindByBatch(ctx, batchID)
}
