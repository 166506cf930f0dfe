package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName    = errors.New("nome do produto não pode ser vazio")
	ErrEmptySKU     = errors.New("SKU do produto não pode ser vazio")
	ErrInvalidPrice = errors.New("preço do produto deve ser maior que zero")
)

// Status representa o estado comercial do produto
type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusInactive     Status = "INACTIVE"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusDiscontinued Status = "DISCONTINUED"
)

// Dimensions representa as dimensões físicas do produto em centímetros
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Product representa um produto vendável. O estoque não vive aqui: o
// total disponível é a soma dos saldos dos lotes do produto
type Product struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	ComparePrice   decimal.Decimal   `json:"compare_price"` // Preço "de" para exibição de desconto
	CostPrice      decimal.Decimal   `json:"cost_price"`
	WeightKg       float64           `json:"weight_kg"`
	Dimensions     Dimensions        `json:"dimensions"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	Featured       bool              `json:"featured"`
	Status         Status            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewProduct cria um novo produto ativo
func NewProduct(sku, name, description string, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	return &Product{
		ID:             uuid.New().String(),
		SKU:            sku,
		Slug:           Slugify(name),
		Name:           name,
		Description:    description,
		Price:          price,
		Specifications: make(map[string]string),
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Update atualiza os dados comerciais do produto
func (p *Product) Update(name, description string, price, comparePrice, costPrice decimal.Decimal, weightKg float64, dimensions Dimensions, featured bool) error {
	if name == "" {
		return ErrEmptyName
	}
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	p.Name = name
	p.Slug = Slugify(name)
	p.Description = description
	p.Price = price
	p.ComparePrice = comparePrice
	p.CostPrice = costPrice
	p.WeightKg = weightKg
	p.Dimensions = dimensions
	p.Featured = featured
	p.UpdatedAt = time.Now()
	return nil
}

// Slugify gera o slug de URL a partir do nome do produto
func Slugify(name string) string {
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "ã", "a", "â", "a",
		"é", "e", "ê", "e", "í", "i",
		"ó", "o", "õ", "o", "ô", "o",
		"ú", "u", "ü", "u", "ç", "c",
	)
	s := replacer.Replace(strings.ToLower(name))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
