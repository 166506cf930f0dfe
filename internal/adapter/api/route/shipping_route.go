package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
)

// SetupShippingRoutes configura as rotas para cotação de frete
func SetupShippingRoutes(router *gin.RouterGroup, shippingController *controller.ShippingController) {
	shippingRouter := router.Group("/shipping")
	{
		// Cotação é pública para o carrinho da loja
		shippingRouter.POST("/quote", shippingController.Quote)
	}
}
