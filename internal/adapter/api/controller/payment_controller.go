package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/dto"
	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

// PaymentController gerencia as requisições de consulta a pagamentos
type PaymentController struct {
	gateways payment.Factory
}

// NewPaymentController cria uma nova instância de PaymentController
func NewPaymentController(gateways payment.Factory) *PaymentController {
	return &PaymentController{
		gateways: gateways,
	}
}

// Providers lista os provedores de pagamento disponíveis
// @Summary Lista provedores de pagamento
// @Description Lista os provedores configurados e o provedor padrão
// @Tags payments
// @Produce json
// @Success 200 {object} dto.ProvidersResponse
// @Router /payments/providers [get]
func (c *PaymentController) Providers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ProvidersResponse{
		Default:   c.gateways.DefaultProvider(),
		Providers: c.gateways.AvailableProviders(),
	})
}

// GetStatus consulta o status de um pagamento no provedor
// @Summary Consulta o status de um pagamento
// @Description Consulta o status atual de um pagamento diretamente no provedor
// @Tags payments
// @Produce json
// @Security Bearer
// @Param provider path string true "Provedor de pagamento"
// @Param id path string true "ID do pagamento no provedor"
// @Success 200 {object} dto.PaymentStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /payments/{provider}/{id} [get]
func (c *PaymentController) GetStatus(ctx *gin.Context) {
	gateway, err := c.gateways.Create(ctx.Param("provider"))
	if err != nil {
		var unsupported *payment.UnsupportedProviderError
		var configuration *payment.ConfigurationError
		switch {
		case errors.As(err, &unsupported):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Provedor não suportado", err.Error()))
		case errors.As(err, &configuration):
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "Provedor não configurado", err.Error()))
		default:
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao consultar pagamento", err.Error()))
		}
		return
	}

	resp, err := gateway.GetPaymentStatus(ctx, ctx.Param("id"))
	if err != nil {
		if payment.IsGatewayTimeout(err) {
			ctx.JSON(http.StatusGatewayTimeout, dto.NewErrorResponse(http.StatusGatewayTimeout, "Timeout no provedor", err.Error()))
			return
		}
		ctx.JSON(http.StatusBadGateway, dto.NewErrorResponse(http.StatusBadGateway, "Erro no provedor", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentStatusResponse(resp))
}
