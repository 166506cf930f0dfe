package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyProductID  = errors.New("produto não pode ser vazio")
	ErrEmptyReason     = errors.New("motivo da movimentação não pode ser vazio")
	ErrEmptyUserID     = errors.New("usuário da movimentação não pode ser vazio")
	ErrInvalidQuantity = errors.New("quantidade da movimentação deve ser maior que zero")
	ErrZeroAdjustment  = errors.New("ajuste não pode ter delta zero")
	ErrInvalidType     = errors.New("tipo de movimentação desconhecido")
	ErrBatchRequired   = errors.New("movimentação deste tipo exige um lote identificado")
)

// MovementType representa o tipo de movimentação de estoque
type MovementType string

const (
	MovementIn         MovementType = "IN"         // Entrada
	MovementOut        MovementType = "OUT"        // Saída
	MovementAdjustment MovementType = "ADJUSTMENT" // Ajuste
	MovementTransfer   MovementType = "TRANSFER"   // Transferência
	MovementReturn     MovementType = "RETURN"     // Devolução
)

// IsValid verifica se o tipo de movimentação é conhecido
func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementTransfer, MovementReturn:
		return true
	}
	return false
}

// Movement representa um registro imutável de evento que afeta estoque.
// Convenção de sinal: IN, OUT, TRANSFER e RETURN gravam sempre magnitude
// positiva e a direção é dada pelo tipo; ADJUSTMENT grava delta assinado.
// Uma vez criado, o registro nunca é alterado ou removido
type Movement struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	BatchID   string       `json:"batch_id,omitempty"` // vazio = movimentação sem lote identificado
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Reason    string       `json:"reason"`
	UserID    string       `json:"user_id"`
	OrderID   string       `json:"order_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewMovement cria uma nova movimentação validada. Nenhum saldo é alterado
// aqui; a aplicação sobre o lote é responsabilidade do Ledger
func NewMovement(productID, batchID string, movType MovementType, quantity int, reason, userID, orderID string) (*Movement, error) {
	if productID == "" {
		return nil, ErrEmptyProductID
	}
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if !movType.IsValid() {
		return nil, ErrInvalidType
	}
	if movType == MovementAdjustment {
		if quantity == 0 {
			return nil, ErrZeroAdjustment
		}
	} else if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	return &Movement{
		ID:        uuid.New().String(),
		ProductID: productID,
		BatchID:   batchID,
		Type:      movType,
		Quantity:  quantity,
		Reason:    reason,
		UserID:    userID,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}, nil
}

// InsufficientStockError indica que uma movimentação deixaria o saldo
// disponível negativo. A movimentação é bloqueada e nenhum lote é alterado
type InsufficientStockError struct {
	ProductID string
	BatchID   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	if e.BatchID != "" {
		return fmt.Sprintf("estoque insuficiente no lote %s: solicitado %d, disponível %d", e.BatchID, e.Requested, e.Available)
	}
	return fmt.Sprintf("estoque insuficiente para o produto %s: solicitado %d, disponível %d", e.ProductID, e.Requested, e.Available)
}
