package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/dto"
	"github.com/floravitalis/creatinamax/internal/domain/batch"
	"github.com/floravitalis/creatinamax/internal/domain/inventory"
)

// BatchController gerencia as requisições relacionadas a lotes de produção
type BatchController struct {
	batchRepository batch.Repository
	ledger          *inventory.Ledger
}

// NewBatchController cria uma nova instância de BatchController
func NewBatchController(batchRepository batch.Repository, ledger *inventory.Ledger) *BatchController {
	return &BatchController{
		batchRepository: batchRepository,
		ledger:          ledger,
	}
}

// Create registra um novo lote recebido
// @Summary Cria um lote
// @Description Registra um novo lote de produção com quantidade inicial
// @Tags batches
// @Accept json
// @Produce json
// @Security Bearer
// @Param batch body dto.BatchRequest true "Dados do lote"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches [post]
func (c *BatchController) Create(ctx *gin.Context) {
	var request dto.BatchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	b, err := batch.NewBatch(request.ProductID, request.BatchNumber, request.ManufacturingDate, request.ExpirationDate, request.Quantity, request.CostPrice, request.Supplier)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados de lote inválidos", err.Error()))
		return
	}

	if err := c.batchRepository.Create(ctx, b); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar lote", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBatchResponse(b))
}

// List lista os lotes
// @Summary Lista lotes
// @Description Lista os lotes, opcionalmente filtrando por produto
// @Tags batches
// @Produce json
// @Security Bearer
// @Param product_id query string false "Filtrar por produto"
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {array} dto.BatchResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches [get]
func (c *BatchController) List(ctx *gin.Context) {
	if productID := ctx.Query("product_id"); productID != "" {
		batches, err := c.ledger.BatchesByProduct(ctx, productID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar lotes", err.Error()))
			return
		}
		ctx.JSON(http.StatusOK, dto.ToBatchListResponse(batches))
		return
	}

	pagination := dto.GetPagination(queryInt(ctx, "page"), queryInt(ctx, "page_size"))
	batches, err := c.batchRepository.List(ctx, pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar lotes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBatchListResponse(batches))
}

// GetByID busca um lote pelo ID
// @Summary Busca um lote
// @Description Busca um lote pelo seu identificador
// @Tags batches
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lote"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches/{id} [get]
func (c *BatchController) GetByID(ctx *gin.Context) {
	b, err := c.batchRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, batch.ErrBatchNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Lote não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar lote", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBatchResponse(b))
}

// UpdateQualityStatus altera o status de qualidade de um lote
// @Summary Altera a qualidade de um lote
// @Description Aprova ou rejeita um lote após inspeção de qualidade
// @Tags batches
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lote"
// @Param status path string true "Novo status de qualidade"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches/{id}/quality/{status} [patch]
func (c *BatchController) UpdateQualityStatus(ctx *gin.Context) {
	status := batch.QualityStatus(ctx.Param("status"))
	switch status {
	case batch.QualityApproved, batch.QualityRejected:
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Status de qualidade inválido", "Use APPROVED ou REJECTED"))
		return
	}

	if err := c.batchRepository.UpdateQualityStatus(ctx, ctx.Param("id"), status); err != nil {
		if errors.Is(err, batch.ErrBatchNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Lote não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar qualidade", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Qualidade atualizada com sucesso", nil))
}

// WriteOff dá baixa em um lote inteiro
// @Summary Dá baixa em um lote
// @Description Remove o lote do estoque registrando um ajuste negativo no histórico
// @Tags batches
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lote"
// @Param write_off body dto.BatchWriteOffRequest true "Motivo da baixa"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches/{id} [delete]
func (c *BatchController) WriteOff(ctx *gin.Context) {
	var request dto.BatchWriteOffRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	err := c.ledger.WriteOffBatch(ctx, ctx.Param("id"), request.Reason, ctx.GetString("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, batch.ErrBatchNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Lote não encontrado", err.Error()))
		case errors.Is(err, batch.ErrHasReservations):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Lote possui reservas", "Libere as reservas pendentes antes de dar baixa no lote"))
		default:
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao dar baixa no lote", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Baixa registrada com sucesso", nil))
}

// Movements lista as movimentações de um lote
// @Summary Lista movimentações de um lote
// @Description Lista o histórico de movimentações de estoque de um lote
// @Tags batches
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lote"
// @Success 200 {array} dto.MovementResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches/{id}/movements [get]
func (c *BatchController) Movements(ctx *gin.Context) {
	movements, err := c.ledger.BatchMovements(ctx, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar movimentações", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementListResponse(movements))
}
