package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/dto"
	"github.com/floravitalis/creatinamax/internal/domain/product"
)

// ProductController gerencia as requisições relacionadas ao catálogo de produtos
type ProductController struct {
	productRepository product.Repository
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(productRepository product.Repository) *ProductController {
	return &ProductController{
		productRepository: productRepository,
	}
}

// Create cria um novo produto
// @Summary Cria um produto
// @Description Cria um novo produto no catálogo
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	p, err := product.NewProduct(request.SKU, request.Name, request.Description, request.Price)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados de produto inválidos", err.Error()))
		return
	}

	p.ComparePrice = request.ComparePrice
	p.CostPrice = request.CostPrice
	p.WeightKg = request.WeightKg
	p.Dimensions = product.Dimensions{
		Length: request.Dimensions.Length,
		Width:  request.Dimensions.Width,
		Height: request.Dimensions.Height,
	}
	p.Images = request.Images
	p.Specifications = request.Specifications
	p.Featured = request.Featured

	if err := c.productRepository.Create(ctx, p); err != nil {
		if errors.Is(err, product.ErrDuplicateSKU) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "SKU já cadastrado", "Já existe um produto com este SKU"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// List lista os produtos do catálogo
// @Summary Lista produtos
// @Description Lista os produtos com paginação
// @Tags products
// @Produce json
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	pagination := dto.GetPagination(queryInt(ctx, "page"), queryInt(ctx, "page_size"))

	products, err := c.productRepository.List(ctx, pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar produtos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products, pagination.Page, pagination.PageSize))
}

// GetByID busca um produto pelo ID
// @Summary Busca um produto
// @Description Busca um produto pelo seu identificador
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) GetByID(ctx *gin.Context) {
	p, err := c.productRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// GetBySlug busca um produto pelo slug
// @Summary Busca um produto pelo slug
// @Description Busca um produto pelo seu slug de URL
// @Tags products
// @Produce json
// @Param slug path string true "Slug do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/slug/{slug} [get]
func (c *ProductController) GetBySlug(ctx *gin.Context) {
	p, err := c.productRepository.FindBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Update atualiza um produto existente
// @Summary Atualiza um produto
// @Description Atualiza os dados comerciais de um produto
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	p, err := c.productRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar produto", err.Error()))
		return
	}

	dimensions := product.Dimensions{
		Length: request.Dimensions.Length,
		Width:  request.Dimensions.Width,
		Height: request.Dimensions.Height,
	}
	if err := p.Update(request.Name, request.Description, request.Price, request.ComparePrice, request.CostPrice, request.WeightKg, dimensions, request.Featured); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados de produto inválidos", err.Error()))
		return
	}
	p.Images = request.Images
	p.Specifications = request.Specifications

	if err := c.productRepository.Update(ctx, p); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// UpdateStatus altera o status de um produto
// @Summary Altera o status de um produto
// @Description Ativa, desativa ou descontinua um produto do catálogo
// @Tags products
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param status path string true "Novo status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/status/{status} [patch]
func (c *ProductController) UpdateStatus(ctx *gin.Context) {
	status := product.Status(ctx.Param("status"))
	switch status {
	case product.StatusActive, product.StatusInactive, product.StatusOutOfStock, product.StatusDiscontinued:
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Status inválido", "Use ACTIVE, INACTIVE, OUT_OF_STOCK ou DISCONTINUED"))
		return
	}

	if err := c.productRepository.UpdateStatus(ctx, ctx.Param("id"), status); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar status", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Status atualizado com sucesso", nil))
}
