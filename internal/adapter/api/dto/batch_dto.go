package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/batch"
)

// BatchRequest representa os dados para criação de lote
type BatchRequest struct {
	ProductID         string          `json:"product_id" binding:"required"`
	BatchNumber       string          `json:"batch_number" binding:"required"`
	ManufacturingDate time.Time       `json:"manufacturing_date" binding:"required"`
	ExpirationDate    time.Time       `json:"expiration_date" binding:"required"`
	Quantity          int             `json:"quantity" binding:"required"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	Supplier          string          `json:"supplier"`
}

// BatchResponse representa os dados de um lote nas respostas da API
type BatchResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	BatchNumber       string          `json:"batch_number"`
	ManufacturingDate time.Time       `json:"manufacturing_date"`
	ExpirationDate    time.Time       `json:"expiration_date"`
	Quantity          int             `json:"quantity"`
	ReservedQuantity  int             `json:"reserved_quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	Supplier          string          `json:"supplier"`
	QualityStatus     string          `json:"quality_status"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BatchWriteOffRequest representa os dados para baixa de um lote
type BatchWriteOffRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ToBatchResponse converte uma entidade Batch para BatchResponse.
// O status de qualidade retornado é o efetivo: lotes vencidos aparecem
// como EXPIRED independente do status persistido
func ToBatchResponse(b *batch.Batch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		BatchNumber:       b.BatchNumber,
		ManufacturingDate: b.ManufacturingDate,
		ExpirationDate:    b.ExpirationDate,
		Quantity:          b.Quantity,
		ReservedQuantity:  b.ReservedQuantity,
		AvailableQuantity: b.AvailableQuantity,
		CostPrice:         b.CostPrice,
		Supplier:          b.Supplier,
		QualityStatus:     string(b.EffectiveQualityStatus(time.Now())),
		Notes:             b.Notes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// ToBatchListResponse converte uma lista de lotes para BatchResponse
func ToBatchListResponse(batches []*batch.Batch) []BatchResponse {
	response := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		response = append(response, ToBatchResponse(b))
	}
	return response
}
