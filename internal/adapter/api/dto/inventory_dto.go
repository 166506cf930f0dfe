package dto

import (
	"time"

	"github.com/floravitalis/creatinamax/internal/domain/inventory"
)

// MovementRequest representa os dados para registro de movimentação de estoque
type MovementRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	BatchID   string `json:"batch_id"`
	Type      string `json:"type" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	OrderID   string `json:"order_id"`
}

// MovementResponse representa uma movimentação de estoque nas respostas da API
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	BatchID   string    `json:"batch_id,omitempty"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	UserID    string    `json:"user_id"`
	OrderID   string    `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StockResponse representa o saldo disponível de um produto
type StockResponse struct {
	ProductID string `json:"product_id"`
	Available int    `json:"available"`
}

// ToMovementResponse converte uma entidade Movement para MovementResponse
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		BatchID:   m.BatchID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		UserID:    m.UserID,
		OrderID:   m.OrderID,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovementListResponse converte uma lista de movimentações para MovementResponse
func ToMovementListResponse(movements []*inventory.Movement) []MovementResponse {
	response := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		response = append(response, ToMovementResponse(m))
	}
	return response
}
