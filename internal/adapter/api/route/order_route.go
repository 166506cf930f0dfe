package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/internal/domain/user"
	"github.com/floravitalis/creatinamax/pkg/middleware"
)

// SetupOrderRoutes configura as rotas para o módulo de pedidos
func SetupOrderRoutes(router *gin.RouterGroup, orderController *controller.OrderController) {
	orderRouter := router.Group("/orders")
	orderRouter.Use(middleware.AuthMiddleware())
	{
		// Rotas do cliente
		orderRouter.POST("/checkout", middleware.RequireCapability(user.CapPlaceOrders), orderController.Checkout)
		orderRouter.GET("/mine", orderController.ListMine)

		// GetByID valida a posse do pedido para clientes
		orderRouter.GET("/:id", orderController.GetByID)

		// Rotas de gestão de pedidos
		managed := orderRouter.Group("")
		managed.Use(middleware.RequireCapability(user.CapManageOrders))
		{
			managed.GET("", orderController.List)
			managed.PATCH("/:id/status/:status", orderController.UpdateStatus)
		}
	}
}
