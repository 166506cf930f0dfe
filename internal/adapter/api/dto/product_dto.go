package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/product"
)

// DimensionsDTO representa as dimensões de um produto em centímetros
type DimensionsDTO struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ProductRequest representa os dados para criação ou atualização de produto
type ProductRequest struct {
	SKU            string            `json:"sku" binding:"required"`
	Name           string            `json:"name" binding:"required"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price" binding:"required"`
	ComparePrice   decimal.Decimal   `json:"compare_price"`
	CostPrice      decimal.Decimal   `json:"cost_price"`
	WeightKg       float64           `json:"weight_kg"`
	Dimensions     DimensionsDTO     `json:"dimensions"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	Featured       bool              `json:"featured"`
}

// ProductResponse representa os dados de um produto nas respostas da API
type ProductResponse struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	ComparePrice   decimal.Decimal   `json:"compare_price"`
	CostPrice      decimal.Decimal   `json:"cost_price,omitempty"`
	WeightKg       float64           `json:"weight_kg"`
	Dimensions     DimensionsDTO     `json:"dimensions"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	Featured       bool              `json:"featured"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductListResponse representa uma lista paginada de produtos
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ToProductResponse converte uma entidade Product para ProductResponse
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Slug:         p.Slug,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ComparePrice: p.ComparePrice,
		CostPrice:    p.CostPrice,
		WeightKg:     p.WeightKg,
		Dimensions: DimensionsDTO{
			Length: p.Dimensions.Length,
			Width:  p.Dimensions.Width,
			Height: p.Dimensions.Height,
		},
		Images:         p.Images,
		Specifications: p.Specifications,
		Featured:       p.Featured,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos para ProductListResponse
func ToProductListResponse(products []*product.Product, page, pageSize int) ProductListResponse {
	response := ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Page:     page,
		PageSize: pageSize,
	}
	for _, p := range products {
		response.Products = append(response.Products, ToProductResponse(p))
	}
	return response
}
