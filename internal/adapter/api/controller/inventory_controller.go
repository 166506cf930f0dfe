package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/dto"
	"github.com/floravitalis/creatinamax/internal/domain/batch"
	"github.com/floravitalis/creatinamax/internal/domain/inventory"
)

// InventoryController gerencia as requisições relacionadas ao estoque
type InventoryController struct {
	ledger *inventory.Ledger
}

// NewInventoryController cria uma nova instância de InventoryController
func NewInventoryController(ledger *inventory.Ledger) *InventoryController {
	return &InventoryController{
		ledger: ledger,
	}
}

// RecordMovement registra uma movimentação de estoque
// @Summary Registra uma movimentação
// @Description Registra uma movimentação de estoque e aplica o efeito no saldo do lote
// @Tags inventory
// @Accept json
// @Produce json
// @Security Bearer
// @Param movement body dto.MovementRequest true "Dados da movimentação"
// @Success 201 {array} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /inventory/movements [post]
func (c *InventoryController) RecordMovement(ctx *gin.Context) {
	var request dto.MovementRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	movements, err := c.ledger.RecordMovement(ctx, inventory.MovementInput{
		ProductID: request.ProductID,
		BatchID:   request.BatchID,
		Type:      inventory.MovementType(request.Type),
		Quantity:  request.Quantity,
		Reason:    request.Reason,
		UserID:    ctx.GetString("user_id"),
		OrderID:   request.OrderID,
	})
	if err != nil {
		var insufficient *inventory.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Estoque insuficiente", err.Error()))
		case errors.Is(err, batch.ErrBatchNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Lote não encontrado", err.Error()))
		case errors.Is(err, batch.ErrInsufficientBalance):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Saldo insuficiente no lote", err.Error()))
		case errors.Is(err, inventory.ErrBatchRequired), errors.Is(err, inventory.ErrInvalidType),
			errors.Is(err, inventory.ErrInvalidQuantity), errors.Is(err, inventory.ErrZeroAdjustment),
			errors.Is(err, inventory.ErrEmptyReason), errors.Is(err, inventory.ErrEmptyProductID):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Movimentação inválida", err.Error()))
		default:
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao registrar movimentação", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMovementListResponse(movements))
}

// ListMovements lista as movimentações de um produto
// @Summary Lista movimentações
// @Description Lista o histórico de movimentações de estoque de um produto
// @Tags inventory
// @Produce json
// @Security Bearer
// @Param product_id path string true "ID do produto"
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {array} dto.MovementResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /inventory/products/{product_id}/movements [get]
func (c *InventoryController) ListMovements(ctx *gin.Context) {
	pagination := dto.GetPagination(queryInt(ctx, "page"), queryInt(ctx, "page_size"))

	movements, err := c.ledger.Movements(ctx, ctx.Param("product_id"), pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar movimentações", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementListResponse(movements))
}

// GetStock consulta o saldo disponível de um produto
// @Summary Consulta o estoque disponível
// @Description Soma o saldo disponível dos lotes vendáveis de um produto
// @Tags inventory
// @Produce json
// @Security Bearer
// @Param product_id path string true "ID do produto"
// @Success 200 {object} dto.StockResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /inventory/products/{product_id}/stock [get]
func (c *InventoryController) GetStock(ctx *gin.Context) {
	productID := ctx.Param("product_id")

	available, err := c.ledger.AvailableStock(ctx, productID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao consultar estoque", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.StockResponse{
		ProductID: productID,
		Available: available,
	})
}
