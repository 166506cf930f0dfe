package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/internal/domain/user"
	"github.com/floravitalis/creatinamax/pkg/middleware"
)

// SetupPaymentRoutes configura as rotas para o módulo de pagamentos
func SetupPaymentRoutes(router *gin.RouterGroup, paymentController *controller.PaymentController) {
	paymentRouter := router.Group("/payments")
	{
		// O checkout do frontend consulta os provedores disponíveis
		paymentRouter.GET("/providers", paymentController.Providers)

		// Consulta direta ao provedor é restrita à gestão de pedidos
		paymentRouter.GET("/:provider/:id",
			middleware.AuthMiddleware(),
			middleware.RequireCapability(user.CapManageOrders),
			paymentController.GetStatus)
	}
}
