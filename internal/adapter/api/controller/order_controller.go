package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/dto"
	"github.com/floravitalis/creatinamax/internal/domain/inventory"
	"github.com/floravitalis/creatinamax/internal/domain/order"
	"github.com/floravitalis/creatinamax/internal/domain/payment"
	"github.com/floravitalis/creatinamax/internal/domain/product"
	"github.com/floravitalis/creatinamax/internal/domain/shipping"
	"github.com/floravitalis/creatinamax/internal/domain/user"
)

// OrderController gerencia as requisições relacionadas a pedidos
type OrderController struct {
	checkout        *order.CheckoutService
	orderRepository order.Repository
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(checkout *order.CheckoutService, orderRepository order.Repository) *OrderController {
	return &OrderController{
		checkout:        checkout,
		orderRepository: orderRepository,
	}
}

// Checkout finaliza uma compra
// @Summary Finaliza uma compra
// @Description Reserva o estoque, cobra o pagamento e cria o pedido
// @Tags orders
// @Accept json
// @Produce json
// @Security Bearer
// @Param checkout body dto.CheckoutRequest true "Dados do checkout"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/checkout [post]
func (c *OrderController) Checkout(ctx *gin.Context) {
	var request dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	items := make([]order.CheckoutItem, 0, len(request.Items))
	for _, it := range request.Items {
		items = append(items, order.CheckoutItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	result, err := c.checkout.PlaceOrder(ctx, order.CheckoutInput{
		CustomerID: ctx.GetString("user_id"),
		Items:      items,
		Provider:   request.Provider,
		Method: payment.Method{
			Type:         payment.MethodType(request.PaymentMethod),
			Installments: request.Installments,
		},
		Card: request.Card.ToCard(),
		Customer: payment.Customer{
			Name:     request.CustomerName,
			Email:    ctx.GetString("user_email"),
			Phone:    request.CustomerPhone,
			Document: request.Document,
			Address:  request.Address.ToAddress(),
		},
		Discount: request.Discount,
	})
	if err != nil {
		c.checkoutError(ctx, err)
		return
	}

	response := dto.CheckoutResponse{
		Order:         dto.ToOrderResponse(result.Order),
		PaymentStatus: string(result.Payment.Status),
		ShippingDays:  result.Shipping.DeadlineDays,
		FreeShipping:  result.Shipping.Free,
	}
	if result.Payment.Status == payment.StatusPending {
		response.PixQRCode = result.Payment.PixQRCode
		response.PixQRCodeBase64 = result.Payment.PixQRCodeBase64
	}

	ctx.JSON(http.StatusCreated, response)
}

// checkoutError traduz os erros do checkout para as respostas HTTP
func (c *OrderController) checkoutError(ctx *gin.Context, err error) {
	var insufficient *inventory.InsufficientStockError
	var validation *payment.ValidationError
	var gateway *payment.GatewayError

	switch {
	case errors.As(err, &insufficient):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Estoque insuficiente", err.Error()))
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados de pagamento inválidos", err.Error()))
	case errors.As(err, &gateway):
		ctx.JSON(http.StatusPaymentRequired, dto.NewErrorResponse(http.StatusPaymentRequired, "Falha na cobrança", err.Error()))
	case errors.Is(err, product.ErrProductNotFound):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Produto do carrinho não encontrado", err.Error()))
	case errors.Is(err, shipping.ErrInvalidCEP):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "CEP inválido", err.Error()))
	case errors.Is(err, order.ErrNoItems), errors.Is(err, order.ErrInvalidItem):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Carrinho inválido", err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao finalizar compra", err.Error()))
	}
}

// GetByID busca um pedido pelo ID
// @Summary Busca um pedido
// @Description Busca um pedido pelo seu identificador. Clientes só enxergam os próprios pedidos
// @Tags orders
// @Produce json
// @Security Bearer
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [get]
func (c *OrderController) GetByID(ctx *gin.Context) {
	o, err := c.orderRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar pedido", err.Error()))
		return
	}

	// Clientes só podem consultar os próprios pedidos
	role := user.Role(ctx.GetString("user_role"))
	if !role.Can(user.CapManageOrders) && o.CustomerID != ctx.GetString("user_id") {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", "Este pedido pertence a outro cliente"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// ListMine lista os pedidos do cliente autenticado
// @Summary Lista os pedidos do cliente
// @Description Lista os pedidos do cliente autenticado com paginação
// @Tags orders
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {array} dto.OrderResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/mine [get]
func (c *OrderController) ListMine(ctx *gin.Context) {
	pagination := dto.GetPagination(queryInt(ctx, "page"), queryInt(ctx, "page_size"))

	orders, err := c.orderRepository.FindByCustomer(ctx, ctx.GetString("user_id"), pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar pedidos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders))
}

// List lista todos os pedidos
// @Summary Lista pedidos
// @Description Lista todos os pedidos com paginação
// @Tags orders
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {array} dto.OrderResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	pagination := dto.GetPagination(queryInt(ctx, "page"), queryInt(ctx, "page_size"))

	orders, err := c.orderRepository.List(ctx, pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar pedidos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders))
}

// UpdateStatus avança o status de um pedido
// @Summary Altera o status de um pedido
// @Description Avança o pedido no fluxo de separação, envio e entrega
// @Tags orders
// @Produce json
// @Security Bearer
// @Param id path string true "ID do pedido"
// @Param status path string true "Novo status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/status/{status} [patch]
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	o, err := c.orderRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar pedido", err.Error()))
		return
	}

	status := order.Status(ctx.Param("status"))
	if err := o.TransitionTo(status, "alterado via API", ctx.GetString("user_id")); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Transição de status inválida", err.Error()))
		return
	}

	if err := c.orderRepository.Update(ctx, o); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar pedido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}
