package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/dto"
	"github.com/floravitalis/creatinamax/internal/domain/shipping"
)

// ShippingController gerencia as requisições de cotação de frete
type ShippingController struct {
	calculator *shipping.Calculator
}

// NewShippingController cria uma nova instância de ShippingController
func NewShippingController(calculator *shipping.Calculator) *ShippingController {
	return &ShippingController{
		calculator: calculator,
	}
}

// Quote calcula uma cotação de frete
// @Summary Cota o frete
// @Description Calcula custo e prazo de entrega para um CEP
// @Tags shipping
// @Accept json
// @Produce json
// @Param quote body dto.ShippingQuoteRequest true "Dados para cotação"
// @Success 200 {object} dto.ShippingQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /shipping/quote [post]
func (c *ShippingController) Quote(ctx *gin.Context) {
	var request dto.ShippingQuoteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	quote, err := c.calculator.Quote(request.CEP, request.WeightKg, request.Subtotal)
	if err != nil {
		if errors.Is(err, shipping.ErrInvalidCEP) || errors.Is(err, shipping.ErrInvalidWeight) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados de cotação inválidos", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao cotar frete", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShippingQuoteResponse(quote))
}
