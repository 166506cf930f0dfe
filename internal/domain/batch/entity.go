package batch

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyProductID      = errors.New("produto não pode ser vazio")
	ErrEmptyBatchNumber    = errors.New("número do lote não pode ser vazio")
	ErrInvalidQuantity     = errors.New("quantidade deve ser maior que zero")
	ErrInvalidExpiration   = errors.New("data de validade deve ser posterior à fabricação")
	ErrInsufficientBalance = errors.New("saldo insuficiente no lote")
	ErrHasReservations     = errors.New("lote possui quantidade reservada pendente")
)

// QualityStatus representa o estado de qualidade do lote
type QualityStatus string

const (
	QualityPending  QualityStatus = "PENDING"
	QualityApproved QualityStatus = "APPROVED"
	QualityRejected QualityStatus = "REJECTED"
	QualityExpired  QualityStatus = "EXPIRED"
)

// Batch representa um lote fabricado de um produto, com controle próprio
// de validade, qualidade e saldos
type Batch struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	BatchNumber       string          `json:"batch_number"`       // Código do Lote
	ManufacturingDate time.Time       `json:"manufacturing_date"` // Data de Fabricação
	ExpirationDate    time.Time       `json:"expiration_date"`    // Data de Validade
	Quantity          int             `json:"quantity"`           // Quantidade Total Produzida/Recebida
	ReservedQuantity  int             `json:"reserved_quantity"`  // Quantidade Reservada para Pedidos
	AvailableQuantity int             `json:"available_quantity"` // Quantidade Disponível para Venda
	CostPrice         decimal.Decimal `json:"cost_price"`         // Preço de Custo Unitário
	Supplier          string          `json:"supplier"`           // Fornecedor
	QualityStatus     QualityStatus   `json:"quality_status"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewBatch cria um novo lote no recebimento de estoque. O lote nasce com
// toda a quantidade disponível, nada reservado e qualidade pendente
func NewBatch(productID, batchNumber string, manufacturingDate, expirationDate time.Time, quantity int, costPrice decimal.Decimal, supplier string) (*Batch, error) {
	if productID == "" {
		return nil, ErrEmptyProductID
	}
	if batchNumber == "" {
		return nil, ErrEmptyBatchNumber
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !expirationDate.After(manufacturingDate) {
		return nil, ErrInvalidExpiration
	}

	now := time.Now()
	return &Batch{
		ID:                uuid.New().String(),
		ProductID:         productID,
		BatchNumber:       batchNumber,
		ManufacturingDate: manufacturingDate,
		ExpirationDate:    expirationDate,
		Quantity:          quantity,
		ReservedQuantity:  0,
		AvailableQuantity: quantity,
		CostPrice:         costPrice,
		Supplier:          supplier,
		QualityStatus:     QualityPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// IsExpired indica se o lote está vencido na data informada
func (b *Batch) IsExpired(now time.Time) bool {
	return now.After(b.ExpirationDate)
}

// EffectiveQualityStatus retorna o status de qualidade considerando o
// vencimento. EXPIRED é um estado derivado da data, não uma transição
// gravada
func (b *Batch) EffectiveQualityStatus(now time.Time) QualityStatus {
	if b.QualityStatus == QualityApproved && b.IsExpired(now) {
		return QualityExpired
	}
	return b.QualityStatus
}

// Sellable indica se o lote pode atender vendas na data informada
func (b *Batch) Sellable(now time.Time) bool {
	return b.EffectiveQualityStatus(now) == QualityApproved && b.AvailableQuantity > 0
}

// Approve marca o lote como aprovado pelo controle de qualidade
func (b *Batch) Approve() {
	b.QualityStatus = QualityApproved
	b.UpdatedAt = time.Now()
}

// Reject marca o lote como reprovado pelo controle de qualidade
func (b *Batch) Reject() {
	b.QualityStatus = QualityRejected
	b.UpdatedAt = time.Now()
}

// Clone retorna uma cópia independente do lote. Usado pelo repositório em
// memória para que leituras nunca exponham o registro interno
func (b *Batch) Clone() *Batch {
	c := *b
	return &c
}
