package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/adapter/repository/memory"
	"github.com/floravitalis/creatinamax/internal/domain/batch"
	"github.com/floravitalis/creatinamax/internal/domain/inventory"
	"github.com/floravitalis/creatinamax/pkg/logger"
)

func newTestLedger(t *testing.T) (*inventory.Ledger, *memory.BatchRepository, *memory.MovementRepository) {
	t.Helper()
	batches := memory.NewBatchRepository()
	movements := memory.NewMovementRepository()
	return inventory.NewLedger(batches, movements, logger.NewNopLogger()), batches, movements
}

func newApprovedBatch(t *testing.T, batches *memory.BatchRepository, productID string, quantity int, expiresIn time.Duration) *batch.Batch {
	t.Helper()
	now := time.Now()
	b, err := batch.NewBatch(productID, "L-"+now.Add(expiresIn).Format("20060102150405.000"), now.Add(-24*time.Hour), now.Add(expiresIn), quantity, decimal.NewFromInt(35), "Flora Vitalis Industrial")
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	b.Approve()
	if err := batches.Create(context.Background(), b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return b
}

func mustBatch(t *testing.T, batches *memory.BatchRepository, id string) *batch.Batch {
	t.Helper()
	b, err := batches.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID(%s): %v", id, err)
	}
	return b
}

func TestRecordMovementOutDecrementsOnlyAvailable(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 1000, 90*24*time.Hour)
	// Simula uma reserva pendente: 50 unidades comprometidas
	if err := batches.UpdateBalances(ctx, b.ID, 0, 50, -50); err != nil {
		t.Fatalf("UpdateBalances: %v", err)
	}

	movements, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementOut,
		Quantity:  2,
		Reason:    "venda balcão",
		UserID:    "op-1",
	})
	if err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("esperava 1 movimentação, obteve %d", len(movements))
	}

	got := mustBatch(t, batches, b.ID)
	if got.Quantity != 1000 {
		t.Errorf("Quantity = %d, esperava 1000", got.Quantity)
	}
	if got.ReservedQuantity != 50 {
		t.Errorf("ReservedQuantity = %d, esperava 50", got.ReservedQuantity)
	}
	if got.AvailableQuantity != 948 {
		t.Errorf("AvailableQuantity = %d, esperava 948", got.AvailableQuantity)
	}
}

func TestRecordMovementInIncrementsQuantityAndAvailable(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 100, 90*24*time.Hour)

	if _, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementIn,
		Quantity:  40,
		Reason:    "recebimento complementar",
		UserID:    "op-1",
	}); err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	got := mustBatch(t, batches, b.ID)
	if got.Quantity != 140 || got.AvailableQuantity != 140 {
		t.Errorf("saldos = %d/%d, esperava 140/140", got.Quantity, got.AvailableQuantity)
	}
}

func TestRecordMovementReturnIncrementsOnlyAvailable(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 100, 90*24*time.Hour)
	// Uma saída anterior deixou o disponível abaixo do total
	if err := batches.UpdateBalances(ctx, b.ID, 0, 0, -10); err != nil {
		t.Fatalf("UpdateBalances: %v", err)
	}

	if _, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementReturn,
		Quantity:  3,
		Reason:    "devolução pedido 123",
		UserID:    "op-1",
		OrderID:   "123",
	}); err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	got := mustBatch(t, batches, b.ID)
	if got.Quantity != 100 {
		t.Errorf("Quantity = %d, esperava 100", got.Quantity)
	}
	if got.AvailableQuantity != 93 {
		t.Errorf("AvailableQuantity = %d, esperava 93", got.AvailableQuantity)
	}
}

func TestRecordMovementAdjustment(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 100, 90*24*time.Hour)

	// Ajuste negativo após contagem física
	if _, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementAdjustment,
		Quantity:  -5,
		Reason:    "contagem física",
		UserID:    "op-1",
	}); err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	got := mustBatch(t, batches, b.ID)
	if got.Quantity != 95 || got.AvailableQuantity != 95 {
		t.Errorf("saldos = %d/%d, esperava 95/95", got.Quantity, got.AvailableQuantity)
	}

	// Ajuste com delta zero é rejeitado antes de tocar o lote
	if _, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementAdjustment,
		Quantity:  0,
		Reason:    "nada",
		UserID:    "op-1",
	}); !errors.Is(err, inventory.ErrZeroAdjustment) {
		t.Errorf("esperava ErrZeroAdjustment, obteve %v", err)
	}
}

func TestRecordMovementTransferIsAuditOnly(t *testing.T) {
	ledger, batches, movements := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 100, 90*24*time.Hour)

	if _, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementTransfer,
		Quantity:  10,
		Reason:    "transferência para CD Campinas",
		UserID:    "op-1",
	}); err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	got := mustBatch(t, batches, b.ID)
	if got.Quantity != 100 || got.AvailableQuantity != 100 {
		t.Errorf("transferência alterou saldos: %d/%d", got.Quantity, got.AvailableQuantity)
	}
	logged, err := movements.FindByBatch(ctx, b.ID)
	if err != nil {
		t.Fatalf("FindByBatch: %v", err)
	}
	if len(logged) != 1 {
		t.Errorf("esperava 1 movimentação registrada, obteve %d", len(logged))
	}
}

func TestRecordMovementInsufficientStock(t *testing.T) {
	ledger, batches, movements := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 10, 90*24*time.Hour)

	_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementOut,
		Quantity:  11,
		Reason:    "venda",
		UserID:    "op-1",
	})
	var insufficient *inventory.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("esperava InsufficientStockError, obteve %v", err)
	}
	if insufficient.Requested != 11 || insufficient.Available != 10 {
		t.Errorf("erro com %d/%d, esperava 11/10", insufficient.Requested, insufficient.Available)
	}

	// Nada foi aplicado nem registrado
	got := mustBatch(t, batches, b.ID)
	if got.AvailableQuantity != 10 {
		t.Errorf("AvailableQuantity = %d, esperava 10 intacto", got.AvailableQuantity)
	}
	logged, _ := movements.FindByBatch(ctx, b.ID)
	if len(logged) != 0 {
		t.Errorf("esperava log vazio, obteve %d movimentações", len(logged))
	}
}

func TestRecordMovementFEFO(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	// Três lotes: o do meio vence primeiro, um deles está reprovado
	late := newApprovedBatch(t, batches, "prod-creatina", 30, 120*24*time.Hour)
	early := newApprovedBatch(t, batches, "prod-creatina", 20, 30*24*time.Hour)
	rejected := newApprovedBatch(t, batches, "prod-creatina", 50, 10*24*time.Hour)
	if err := batches.UpdateQualityStatus(ctx, rejected.ID, batch.QualityRejected); err != nil {
		t.Fatalf("UpdateQualityStatus: %v", err)
	}

	movements, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		Type:      inventory.MovementOut,
		Quantity:  25,
		Reason:    "venda online",
		UserID:    "op-1",
		OrderID:   "order-9",
	})
	if err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	// Uma movimentação por lote atingido, na ordem de vencimento
	if len(movements) != 2 {
		t.Fatalf("esperava 2 movimentações, obteve %d", len(movements))
	}
	if movements[0].BatchID != early.ID || movements[0].Quantity != 20 {
		t.Errorf("primeira dedução = %s/%d, esperava %s/20", movements[0].BatchID, movements[0].Quantity, early.ID)
	}
	if movements[1].BatchID != late.ID || movements[1].Quantity != 5 {
		t.Errorf("segunda dedução = %s/%d, esperava %s/5", movements[1].BatchID, movements[1].Quantity, late.ID)
	}

	if got := mustBatch(t, batches, early.ID); got.AvailableQuantity != 0 {
		t.Errorf("lote que vence primeiro com %d disponível, esperava 0", got.AvailableQuantity)
	}
	if got := mustBatch(t, batches, late.ID); got.AvailableQuantity != 25 {
		t.Errorf("lote que vence depois com %d disponível, esperava 25", got.AvailableQuantity)
	}
	// Lote reprovado nunca é tocado
	if got := mustBatch(t, batches, rejected.ID); got.AvailableQuantity != 50 {
		t.Errorf("lote reprovado com %d disponível, esperava 50 intacto", got.AvailableQuantity)
	}
}

func TestRecordMovementFEFOInsufficientTotal(t *testing.T) {
	ledger, batches, movements := newTestLedger(t)
	ctx := context.Background()

	a := newApprovedBatch(t, batches, "prod-creatina", 5, 30*24*time.Hour)
	b := newApprovedBatch(t, batches, "prod-creatina", 5, 60*24*time.Hour)

	_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		Type:      inventory.MovementOut,
		Quantity:  11,
		Reason:    "venda",
		UserID:    "op-1",
	})
	var insufficient *inventory.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("esperava InsufficientStockError, obteve %v", err)
	}

	// Tudo ou nada: nenhum lote foi deduzido
	if got := mustBatch(t, batches, a.ID); got.AvailableQuantity != 5 {
		t.Errorf("lote a com %d disponível, esperava 5", got.AvailableQuantity)
	}
	if got := mustBatch(t, batches, b.ID); got.AvailableQuantity != 5 {
		t.Errorf("lote b com %d disponível, esperava 5", got.AvailableQuantity)
	}
	logged, _ := movements.FindByProduct(ctx, "prod-creatina", 100, 0)
	if len(logged) != 0 {
		t.Errorf("esperava log vazio, obteve %d movimentações", len(logged))
	}
}

func TestRecordMovementBatchlessRequiresOut(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	newApprovedBatch(t, batches, "prod-creatina", 10, 30*24*time.Hour)

	for _, movType := range []inventory.MovementType{inventory.MovementIn, inventory.MovementReturn, inventory.MovementTransfer} {
		_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
			ProductID: "prod-creatina",
			Type:      movType,
			Quantity:  1,
			Reason:    "sem lote",
			UserID:    "op-1",
		})
		if !errors.Is(err, inventory.ErrBatchRequired) {
			t.Errorf("%s sem lote: esperava ErrBatchRequired, obteve %v", movType, err)
		}
	}
}

func TestAvailableStockIncludesAllBatches(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	newApprovedBatch(t, batches, "prod-creatina", 10, 30*24*time.Hour)
	newApprovedBatch(t, batches, "prod-creatina", 15, 60*24*time.Hour)
	newApprovedBatch(t, batches, "prod-outro", 99, 60*24*time.Hour)

	total, err := ledger.AvailableStock(ctx, "prod-creatina")
	if err != nil {
		t.Fatalf("AvailableStock: %v", err)
	}
	if total != 25 {
		t.Errorf("AvailableStock = %d, esperava 25", total)
	}
}

func TestReserveAndRelease(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	early := newApprovedBatch(t, batches, "prod-creatina", 10, 30*24*time.Hour)
	late := newApprovedBatch(t, batches, "prod-creatina", 10, 60*24*time.Hour)

	if err := ledger.Reserve(ctx, "prod-creatina", 12); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	// Reserva consome primeiro o lote que vence primeiro
	if got := mustBatch(t, batches, early.ID); got.ReservedQuantity != 10 || got.AvailableQuantity != 0 {
		t.Errorf("lote early = reservado %d / disponível %d, esperava 10/0", got.ReservedQuantity, got.AvailableQuantity)
	}
	if got := mustBatch(t, batches, late.ID); got.ReservedQuantity != 2 || got.AvailableQuantity != 8 {
		t.Errorf("lote late = reservado %d / disponível %d, esperava 2/8", got.ReservedQuantity, got.AvailableQuantity)
	}

	if err := ledger.Release(ctx, "prod-creatina", 12); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if got := mustBatch(t, batches, early.ID); got.ReservedQuantity != 0 || got.AvailableQuantity != 10 {
		t.Errorf("lote early após release = %d/%d, esperava 0/10", got.ReservedQuantity, got.AvailableQuantity)
	}
	if got := mustBatch(t, batches, late.ID); got.ReservedQuantity != 0 || got.AvailableQuantity != 10 {
		t.Errorf("lote late após release = %d/%d, esperava 0/10", got.ReservedQuantity, got.AvailableQuantity)
	}
}

func TestReserveInsufficient(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	newApprovedBatch(t, batches, "prod-creatina", 5, 30*24*time.Hour)

	err := ledger.Reserve(ctx, "prod-creatina", 6)
	var insufficient *inventory.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("esperava InsufficientStockError, obteve %v", err)
	}
}

func TestWriteOffBatch(t *testing.T) {
	ledger, batches, movements := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 30, 5*24*time.Hour)

	if err := ledger.WriteOffBatch(ctx, b.ID, "lote próximo do vencimento", "mgr-1"); err != nil {
		t.Fatalf("WriteOffBatch: %v", err)
	}

	// O registro do lote some, mas a baixa fica no log
	if _, err := batches.FindByID(ctx, b.ID); !errors.Is(err, batch.ErrBatchNotFound) {
		t.Errorf("esperava ErrBatchNotFound, obteve %v", err)
	}
	logged, err := movements.FindByBatch(ctx, b.ID)
	if err != nil {
		t.Fatalf("FindByBatch: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("esperava 1 movimentação de baixa, obteve %d", len(logged))
	}
	if logged[0].Type != inventory.MovementAdjustment || logged[0].Quantity != -30 {
		t.Errorf("baixa registrada como %s/%d, esperava ADJUSTMENT/-30", logged[0].Type, logged[0].Quantity)
	}
}

func TestWriteOffBatchAfterSales(t *testing.T) {
	ledger, batches, movements := newTestLedger(t)
	ctx := context.Background()

	// 20 unidades vendidas antes da baixa: a quantidade total fica em 50 e
	// o disponível em 30
	b := newApprovedBatch(t, batches, "prod-creatina", 50, 5*24*time.Hour)
	if _, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "prod-creatina",
		BatchID:   b.ID,
		Type:      inventory.MovementOut,
		Quantity:  20,
		Reason:    "venda",
		UserID:    "op-1",
	}); err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	if err := ledger.WriteOffBatch(ctx, b.ID, "recall do fornecedor", "mgr-1"); err != nil {
		t.Fatalf("WriteOffBatch: %v", err)
	}

	// O ajuste gravado corresponde ao que foi de fato destruído (30), não
	// à quantidade produzida; as 20 vendidas já estão no log como saída
	logged, err := movements.FindByBatch(ctx, b.ID)
	if err != nil {
		t.Fatalf("FindByBatch: %v", err)
	}
	if len(logged) != 2 {
		t.Fatalf("esperava saída + ajuste no log, obteve %d movimentações", len(logged))
	}
	var adjustment *inventory.Movement
	for _, m := range logged {
		if m.Type == inventory.MovementAdjustment {
			adjustment = m
		}
	}
	if adjustment == nil {
		t.Fatal("ajuste de baixa não encontrado no log")
	}
	if adjustment.Quantity != -30 {
		t.Errorf("ajuste de %d, esperava -30", adjustment.Quantity)
	}
}

func TestWriteOffBatchWithReservations(t *testing.T) {
	ledger, batches, _ := newTestLedger(t)
	ctx := context.Background()

	b := newApprovedBatch(t, batches, "prod-creatina", 30, 5*24*time.Hour)
	if err := batches.UpdateBalances(ctx, b.ID, 0, 2, -2); err != nil {
		t.Fatalf("UpdateBalances: %v", err)
	}

	if err := ledger.WriteOffBatch(ctx, b.ID, "tentativa de baixa", "mgr-1"); !errors.Is(err, batch.ErrHasReservations) {
		t.Errorf("esperava ErrHasReservations, obteve %v", err)
	}
	if _, err := batches.FindByID(ctx, b.ID); err != nil {
		t.Errorf("lote não deveria ter sido removido: %v", err)
	}
}

func TestRecordMovementValidation(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.MovementInput
		want error
	}{
		{
			name: "sem produto",
			in:   inventory.MovementInput{Type: inventory.MovementIn, Quantity: 1, Reason: "x", UserID: "u"},
			want: inventory.ErrEmptyProductID,
		},
		{
			name: "sem motivo",
			in:   inventory.MovementInput{ProductID: "p", Type: inventory.MovementIn, Quantity: 1, UserID: "u"},
			want: inventory.ErrEmptyReason,
		},
		{
			name: "sem usuário",
			in:   inventory.MovementInput{ProductID: "p", Type: inventory.MovementIn, Quantity: 1, Reason: "x"},
			want: inventory.ErrEmptyUserID,
		},
		{
			name: "tipo desconhecido",
			in:   inventory.MovementInput{ProductID: "p", Type: "SIDEWAYS", Quantity: 1, Reason: "x", UserID: "u"},
			want: inventory.ErrInvalidType,
		},
		{
			name: "quantidade negativa fora de ajuste",
			in:   inventory.MovementInput{ProductID: "p", Type: inventory.MovementOut, Quantity: -1, Reason: "x", UserID: "u"},
			want: inventory.ErrInvalidQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ledger.RecordMovement(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Errorf("esperava %v, obteve %v", tc.want, err)
			}
		})
	}
}
