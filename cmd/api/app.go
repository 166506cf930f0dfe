package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/floravitalis/creatinamax/docs"
	"github.com/floravitalis/creatinamax/internal/adapter/api/controller"
	"github.com/floravitalis/creatinamax/internal/adapter/api/route"
	"github.com/floravitalis/creatinamax/internal/adapter/gateway"
	"github.com/floravitalis/creatinamax/internal/adapter/repository"
	"github.com/floravitalis/creatinamax/internal/adapter/repository/memory"
	"github.com/floravitalis/creatinamax/internal/domain/batch"
	"github.com/floravitalis/creatinamax/internal/domain/inventory"
	"github.com/floravitalis/creatinamax/internal/domain/order"
	"github.com/floravitalis/creatinamax/internal/domain/product"
	"github.com/floravitalis/creatinamax/internal/domain/shipping"
	"github.com/floravitalis/creatinamax/internal/domain/user"
	"github.com/floravitalis/creatinamax/internal/infrastructure/database"
	"github.com/floravitalis/creatinamax/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger

	authController      *controller.AuthController
	userController      *controller.UserController
	productController   *controller.ProductController
	batchController     *controller.BatchController
	inventoryController *controller.InventoryController
	orderController     *controller.OrderController
	paymentController   *controller.PaymentController
	webhookController   *controller.WebhookController
	shippingController  *controller.ShippingController
}

// repositories agrupa as implementações de repositório escolhidas na
// inicialização
type repositories struct {
	users     user.Repository
	products  product.Repository
	batches   batch.Repository
	movements inventory.Repository
	orders    order.Repository
	events    order.ProcessedEventRepository
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	repos, db, err := buildRepositories(log)
	if err != nil {
		return nil, err
	}

	// Serviços de domínio
	ledger := inventory.NewLedger(repos.batches, repos.movements, log)
	shippingCalc := shipping.NewCalculator()
	gateways := gateway.NewFactory(gateway.NewConfigFromEnv())
	checkout := order.NewCheckoutService(repos.orders, repos.products, ledger, gateways, shippingCalc, log)

	// Configurar router
	router := gin.Default()
	router.Use(corsMiddleware())

	return &App{
		router: router,
		db:     db,
		logger: log,

		authController:      controller.NewAuthController(repos.users, log),
		userController:      controller.NewUserController(repos.users),
		productController:   controller.NewProductController(repos.products),
		batchController:     controller.NewBatchController(repos.batches, ledger),
		inventoryController: controller.NewInventoryController(ledger),
		orderController:     controller.NewOrderController(checkout, repos.orders),
		paymentController:   controller.NewPaymentController(gateways),
		webhookController:   controller.NewWebhookController(checkout, repos.events, log),
		shippingController:  controller.NewShippingController(shippingCalc),
	}, nil
}

// buildRepositories escolhe o armazenamento conforme o ambiente. Sem banco
// configurado a aplicação sobe com repositórios em memória, o suficiente
// para desenvolvimento local e demonstração
func buildRepositories(log logger.Logger) (*repositories, *pgxpool.Pool, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != "" {
			driver = "postgres"
		} else {
			driver = "memory"
		}
	}

	if driver == "memory" {
		log.Warn("armazenamento em memória habilitado, dados serão perdidos ao encerrar")
		return &repositories{
			users:     memory.NewUserRepository(),
			products:  memory.NewProductRepository(),
			batches:   memory.NewBatchRepository(),
			movements: memory.NewMovementRepository(),
			orders:    memory.NewOrderRepository(),
			events:    memory.NewProcessedEventRepository(),
		}, nil, nil
	}

	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, nil, err
	}
	log.Info("conectado ao PostgreSQL")

	return &repositories{
		users:     repository.NewUserRepository(db),
		products:  repository.NewProductRepository(db),
		batches:   repository.NewBatchRepository(db),
		movements: repository.NewMovementRepository(db),
		orders:    repository.NewOrderRepository(db),
		events:    repository.NewProcessedEventRepository(db),
	}, db, nil
}

// corsMiddleware configura o CORS para o frontend da loja
func corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.AllowOrigins = []string{origins}
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(config)
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(api, a.authController)
	route.SetupUserRoutes(api, a.userController)
	route.SetupProductRoutes(api, a.productController)
	route.SetupBatchRoutes(api, a.batchController)
	route.SetupInventoryRoutes(api, a.inventoryController)
	route.SetupOrderRoutes(api, a.orderController)
	route.SetupPaymentRoutes(api, a.paymentController)
	route.SetupWebhookRoutes(api, a.webhookController)
	route.SetupShippingRoutes(api, a.shippingController)

	// Documentação Swagger
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
