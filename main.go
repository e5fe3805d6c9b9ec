package main

import (
	"fmt"
	"log"

	"carcare-backend/config"
	"carcare-backend/models"
	"carcare-backend/routes"
	"carcare-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	config.ConnectDB(cfg)

	config.DB.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.WorkOrder{},
		&models.ServiceItem{},
		&models.Guarantee{},
		&models.Invoice{},
		&models.IntakeLog{},
	)

	reconciler := services.NewReconcilerService(config.DB, cfg.ReconcileEvery)
	reconciler.StartScheduler()
	defer reconciler.Stop()

	r := routes.SetupRouter(config.DB, cfg)
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
