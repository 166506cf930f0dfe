package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/internal/domain/user"
	"github.com/floravitalis/creatinamax/pkg/middleware"
)

// SetupBatchRoutes configura as rotas para o módulo de lotes
func SetupBatchRoutes(router *gin.RouterGroup, batchController *controller.BatchController) {
	batchRouter := router.Group("/batches")
	batchRouter.Use(middleware.AuthMiddleware())
	{
		// Consulta de lotes e movimentações
		view := batchRouter.Group("")
		view.Use(middleware.RequireCapability(user.CapViewInventory))
		{
			view.GET("", batchController.List)
			view.GET("/:id", batchController.GetByID)
			view.GET("/:id/movements", batchController.Movements)
		}

		// Gestão de lotes
		managed := batchRouter.Group("")
		managed.Use(middleware.RequireCapability(user.CapManageBatches))
		{
			managed.POST("", batchController.Create)
			managed.PATCH("/:id/quality/:status", batchController.UpdateQualityStatus)
			managed.DELETE("/:id", batchController.WriteOff)
		}
	}
}
