package routes

import (
	"carcare-backend/config"
	"carcare-backend/controllers"
	"carcare-backend/services"
	"carcare-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	invoiceService := services.NewInvoiceService(db, cfg.DefaultTaxRate, cfg.DefaultServicePrice, cfg.StoreTimeout)
	intakeService := services.NewIntakeService(db, invoiceService, cfg.StoreTimeout)
	orderService := services.NewOrderService(db, invoiceService, cfg.StoreTimeout)
	guaranteeService := services.NewGuaranteeService(db, cfg.StoreTimeout)
	reportService := services.NewReportService(db, cfg.StoreTimeout)
	customerService := services.NewCustomerService(db, cfg.StoreTimeout)

	intakeController := controllers.NewIntakeController(intakeService)
	customerController := controllers.NewCustomerController(reportService, customerService)
	orderController := controllers.NewOrderController(orderService)
	guaranteeController := controllers.NewGuaranteeController(guaranteeService)
	invoiceController := controllers.NewInvoiceController(invoiceService)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", intakeController.Create)
			clients.GET("", customerController.List)
			clients.GET("/:id", customerController.Get)
			clients.PUT("/:id", customerController.Update)
			clients.DELETE("/:id", customerController.Delete)
			clients.POST("/:id/orders", orderController.CreateForCustomer)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.GET("", orderController.List)
			orders.GET("/:id", orderController.Get)
			orders.DELETE("/:id", orderController.Delete)
			orders.POST("/:id/services", orderController.AddServices)
			orders.GET("/:id/invoice", invoiceController.GetByOrder)

			orders.PATCH("/:id/guarantees/:guaranteeId/status", guaranteeController.SetStatus)
			orders.PATCH("/:id/guarantees/:guaranteeId/acceptance", guaranteeController.SetAcceptance)
			orders.POST("/:id/guarantees", guaranteeController.Add)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.GET("", invoiceController.List)
			invoices.GET("/:id", invoiceController.Get)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
