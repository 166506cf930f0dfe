package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/batch"
)

func seedBatch(t *testing.T, r *BatchRepository, productID string, quantity int) *batch.Batch {
	t.Helper()
	now := time.Now()
	b, err := batch.NewBatch(productID, "L-"+now.Format("150405.000000"), now.Add(-24*time.Hour), now.Add(180*24*time.Hour), quantity, decimal.NewFromInt(30), "Flora Vitalis Industrial")
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	if err := r.Create(context.Background(), b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return b
}

func TestUpdateBalancesGuardsNegatives(t *testing.T) {
	r := NewBatchRepository()
	ctx := context.Background()
	b := seedBatch(t, r, "prod-1", 10)

	if err := r.UpdateBalances(ctx, b.ID, 0, 0, -11); !errors.Is(err, batch.ErrInsufficientBalance) {
		t.Errorf("esperava ErrInsufficientBalance, obteve %v", err)
	}
	if err := r.UpdateBalances(ctx, b.ID, 0, -1, 0); !errors.Is(err, batch.ErrInsufficientBalance) {
		t.Errorf("reserva negativa: esperava ErrInsufficientBalance, obteve %v", err)
	}

	got, _ := r.FindByID(ctx, b.ID)
	if got.Quantity != 10 || got.ReservedQuantity != 0 || got.AvailableQuantity != 10 {
		t.Errorf("falha alterou saldos: %d/%d/%d", got.Quantity, got.ReservedQuantity, got.AvailableQuantity)
	}

	if err := r.UpdateBalances(ctx, "inexistente", 0, 0, 1); !errors.Is(err, batch.ErrBatchNotFound) {
		t.Errorf("esperava ErrBatchNotFound, obteve %v", err)
	}
}

func TestUpdateBalancesConcurrentDeductions(t *testing.T) {
	r := NewBatchRepository()
	ctx := context.Background()
	b := seedBatch(t, r, "prod-1", 100)

	// 200 deduções de 1 sobre 100 unidades: exatamente 100 passam
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.UpdateBalances(ctx, b.ID, 0, 0, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 100 {
		t.Errorf("%d deduções passaram, esperava 100", succeeded)
	}
	got, _ := r.FindByID(ctx, b.ID)
	if got.AvailableQuantity != 0 {
		t.Errorf("saldo final = %d, esperava 0", got.AvailableQuantity)
	}
}

func TestFindByIDReturnsClone(t *testing.T) {
	r := NewBatchRepository()
	ctx := context.Background()
	b := seedBatch(t, r, "prod-1", 10)

	got, err := r.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	got.AvailableQuantity = 0

	again, _ := r.FindByID(ctx, b.ID)
	if again.AvailableQuantity != 10 {
		t.Error("mutação na cópia vazou para o repositório")
	}
}

func TestProcessedEventRepositoryDedupe(t *testing.T) {
	r := NewProcessedEventRepository()
	ctx := context.Background()

	fresh, err := r.MarkProcessed(ctx, "mercado_pago", "evt-1")
	if err != nil || !fresh {
		t.Fatalf("primeiro evento: fresh=%v err=%v", fresh, err)
	}
	fresh, err = r.MarkProcessed(ctx, "mercado_pago", "evt-1")
	if err != nil || fresh {
		t.Errorf("reentrega: fresh=%v err=%v, esperava false", fresh, err)
	}
	// O mesmo id em outro provedor é outro evento
	fresh, err = r.MarkProcessed(ctx, "pagar_me", "evt-1")
	if err != nil || !fresh {
		t.Errorf("outro provedor: fresh=%v err=%v, esperava true", fresh, err)
	}
}
