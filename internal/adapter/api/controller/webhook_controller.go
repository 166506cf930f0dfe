package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/dto"
	"github.com/floravitalis/creatinamax/internal/domain/order"
	"github.com/floravitalis/creatinamax/pkg/logger"
)

// WebhookController recebe as notificações assíncronas dos provedores de
// pagamento. Provedores reentregam notificações até receberem 200, então
// todo processamento aqui é idempotente
type WebhookController struct {
	checkout *order.CheckoutService
	events   order.ProcessedEventRepository
	logger   logger.Logger
}

// NewWebhookController cria uma nova instância de WebhookController
func NewWebhookController(checkout *order.CheckoutService, events order.ProcessedEventRepository, log logger.Logger) *WebhookController {
	return &WebhookController{
		checkout: checkout,
		events:   events,
		logger:   log,
	}
}

// MercadoPago processa notificações do Mercado Pago
// @Summary Webhook do Mercado Pago
// @Description Recebe notificações de pagamento do Mercado Pago
// @Tags webhooks
// @Accept json
// @Produce json
// @Param notification body dto.MercadoPagoWebhookRequest true "Notificação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /webhooks/mercadopago [post]
func (c *WebhookController) MercadoPago(ctx *gin.Context) {
	var request dto.MercadoPagoWebhookRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Notificação inválida", err.Error()))
		return
	}

	// Só interessam eventos de pagamento; os demais são confirmados sem
	// processamento para o provedor parar de reenviá-los
	if request.Type != "payment" || request.Data.ID == "" {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Evento ignorado", nil))
		return
	}

	c.process(ctx, "mercado_pago", strconv.FormatInt(request.ID, 10), request.Data.ID)
}

// PagarMe processa notificações do Pagar.me
// @Summary Webhook do Pagar.me
// @Description Recebe notificações de pagamento do Pagar.me
// @Tags webhooks
// @Accept json
// @Produce json
// @Param notification body dto.PagarMeWebhookRequest true "Notificação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /webhooks/pagarme [post]
func (c *WebhookController) PagarMe(ctx *gin.Context) {
	var request dto.PagarMeWebhookRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Notificação inválida", err.Error()))
		return
	}

	if request.Data.ID == "" {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Evento ignorado", nil))
		return
	}

	c.process(ctx, "pagar_me", request.ID, request.Data.ID)
}

// process deduplica o evento e reconcilia o pedido correspondente. A
// resposta é sempre 200 quando o evento foi aceito, mesmo que o pedido
// ainda não exista localmente, para evitar tempestade de reentregas
func (c *WebhookController) process(ctx *gin.Context, provider, eventID, gatewayPaymentID string) {
	if eventID != "" {
		fresh, err := c.events.MarkProcessed(ctx, provider, eventID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao registrar evento", err.Error()))
			return
		}
		if !fresh {
			ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Evento já processado", nil))
			return
		}
	}

	o, err := c.checkout.ConfirmPayment(ctx, gatewayPaymentID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.logger.Warn("webhook para pagamento sem pedido local", "provider", provider, "payment_id", gatewayPaymentID)
			ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Pagamento sem pedido correspondente", nil))
			return
		}
		c.logger.Error("erro ao reconciliar pagamento via webhook", "provider", provider, "payment_id", gatewayPaymentID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao reconciliar pagamento", err.Error()))
		return
	}

	c.logger.Info("webhook reconciliado", "provider", provider, "order_id", o.ID, "payment_status", o.PaymentStatus)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Evento processado", nil))
}
