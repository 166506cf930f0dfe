package route

import (
	"github.com/gin-gonic/gin"

	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
)

// SetupWebhookRoutes configura as rotas para os webhooks dos provedores de
// pagamento. As rotas são públicas; a deduplicação de eventos protege
// contra reentregas
func SetupWebhookRoutes(router *gin.RouterGroup, webhookController *controller.WebhookController) {
	webhookRouter := router.Group("/webhooks")
	{
		webhookRouter.POST("/mercadopago", webhookController.MercadoPago)
		webhookRouter.POST("/pagarme", webhookController.PagarMe)
	}
}
