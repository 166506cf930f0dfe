package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/internal/domain/user"
	"github.com/floravitalis/creatinamax/pkg/middleware"
)

// SetupUserRoutes configura as rotas para o módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	userRouter := router.Group("/users")
	{
		// Gestão de usuários é restrita a administradores
		userRouter.Use(middleware.AuthMiddleware())
		userRouter.Use(middleware.RequireCapability(user.CapManageUsers))
		{
			userRouter.POST("", userController.Create)
			userRouter.GET("", userController.List)
			userRouter.GET("/:id", userController.GetByID)
			userRouter.PATCH("/:id/status", userController.UpdateStatus)
		}
	}
}
