package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/internal/domain/user"
	"github.com/floravitalis/creatinamax/pkg/middleware"
)

// SetupInventoryRoutes configura as rotas para o módulo de estoque
func SetupInventoryRoutes(router *gin.RouterGroup, inventoryController *controller.InventoryController) {
	inventoryRouter := router.Group("/inventory")
	inventoryRouter.Use(middleware.AuthMiddleware())
	{
		// Registro de movimentações
		record := inventoryRouter.Group("")
		record.Use(middleware.RequireCapability(user.CapRecordMovements))
		{
			record.POST("/movements", inventoryController.RecordMovement)
		}

		// Consultas de saldo e histórico
		view := inventoryRouter.Group("")
		view.Use(middleware.RequireCapability(user.CapViewInventory))
		{
			view.GET("/products/:product_id/movements", inventoryController.ListMovements)
			view.GET("/products/:product_id/stock", inventoryController.GetStock)
		}
	}
}
