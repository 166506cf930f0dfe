package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/pkg/middleware"
)

// SetupAuthRoutes configura as rotas para o módulo de autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		// Rotas públicas
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/refresh", authController.RefreshToken)

		// Rota que requer autenticação
		authRouter.GET("/me", middleware.AuthMiddleware(), authController.Me)
	}
}
