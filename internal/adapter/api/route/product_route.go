package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/internal/domain/user"
	"github.com/floravitalis/creatinamax/pkg/middleware"
)

// SetupProductRoutes configura as rotas para o módulo de catálogo
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController) {
	productRouter := router.Group("/products")
	{
		// A vitrine da loja é pública
		productRouter.GET("", productController.List)
		productRouter.GET("/:id", productController.GetByID)
		productRouter.GET("/slug/:slug", productController.GetBySlug)

		// Escrita no catálogo requer permissão de gestão de produtos
		managed := productRouter.Group("")
		managed.Use(middleware.AuthMiddleware())
		managed.Use(middleware.RequireCapability(user.CapManageProducts))
		{
			managed.POST("", productController.Create)
			managed.PUT("/:id", productController.Update)
			managed.PATCH("/:id/status/:status", productController.UpdateStatus)
		}
	}
}
