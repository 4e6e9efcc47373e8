// server/internal/api/routes/routes.go
package routes

import (
	"gestor-frete-api-server/config"
	"gestor-frete-api-server/internal/api/handlers"
	"gestor-frete-api-server/internal/api/middleware"
	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/s3"
	"gestor-frete-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the four portals onto their handlers.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.Server.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	secret := []byte(cfg.JWT.Secret)

	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	freightHandler := &handlers.FreightHandler{DB: db, S3Uploader: s3Uploader, Hub: wsHub}
	fuelHandler := &handlers.FuelHandler{DB: db, S3Uploader: s3Uploader, Hub: wsHub}
	supplyHandler := &handlers.SupplyHandler{DB: db, S3Uploader: s3Uploader, Hub: wsHub}
	paymentHandler := &handlers.PaymentHandler{DB: db, S3Uploader: s3Uploader, Hub: wsHub}
	driverHandler := &handlers.DriverHandler{DB: db, Hub: wsHub}
	clientHandler := &handlers.ClientHandler{DB: db}
	reportHandler := &handlers.ReportHandler{DB: db}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWTSecret: secret}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===

		auth := apiV1.Group("/auth/:portal")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// === DRIVER PORTAL ===

		driver := apiV1.Group("/driver")
		driver.Use(middleware.Authenticate(secret))
		driver.Use(middleware.Authorize(models.RoleDriver))
		{
			driver.GET("/profile", driverHandler.GetProfile)
			driver.GET("/stats", driverHandler.GetStats)
			driver.GET("/balance", driverHandler.GetBalance)

			freights := driver.Group("/freights")
			{
				freights.GET("/", freightHandler.GetFreights)
				freights.POST("/", freightHandler.CreateFreight)
				freights.PUT("/:id", freightHandler.UpdateFreight)
				freights.POST("/:id/complete", freightHandler.CompleteFreight)
				freights.POST("/:id/receipts/:kind", freightHandler.UploadReceipt)
				freights.POST("/:id/document", freightHandler.UploadDocument)
			}

			driver.GET("/fuel-purchases", fuelHandler.GetFuelPurchases)
			driver.POST("/fuel-purchases", fuelHandler.CreateFuelPurchase)
			driver.POST("/fuel-purchases/:id/receipt", fuelHandler.UploadReceipt)

			driver.GET("/supplies", supplyHandler.GetSupplies)
			driver.POST("/supplies", supplyHandler.CreateSupply)
			driver.POST("/supplies/:id/receipt", supplyHandler.UploadReceipt)

			driver.GET("/payments", paymentHandler.GetPayments)
		}

		// === FUEL ATTENDANT PORTAL ===

		posto := apiV1.Group("/posto")
		posto.Use(middleware.Authenticate(secret))
		posto.Use(middleware.Authorize(models.RolePosto))
		{
			posto.GET("/drivers", driverHandler.GetDrivers)
			posto.GET("/fuel-purchases", fuelHandler.GetFuelPurchases)
			posto.POST("/fuel-purchases", fuelHandler.CreateFuelPurchase)
			posto.POST("/fuel-purchases/:id/receipt", fuelHandler.UploadReceipt)
		}

		// === CLIENT PORTAL ===

		client := apiV1.Group("/client")
		client.Use(middleware.Authenticate(secret))
		client.Use(middleware.Authorize(models.RoleClient))
		{
			client.GET("/freights", freightHandler.GetFreights)
			client.GET("/summary", clientHandler.GetSummary)
		}

		// === ADMIN PORTAL ===

		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate(secret))
		admin.Use(middleware.Authorize(models.RoleAdmin))
		{
			drivers := admin.Group("/drivers")
			{
				drivers.GET("/", driverHandler.GetDrivers)
				drivers.POST("/", driverHandler.CreateDriver)
				drivers.PUT("/:id", driverHandler.UpdateDriver)
				drivers.DELETE("/:id", driverHandler.DeactivateDriver)
				drivers.POST("/:id/authorize", driverHandler.AuthorizeDriver)
				drivers.GET("/:id/balance", driverHandler.GetBalance)
			}

			freights := admin.Group("/freights")
			{
				freights.GET("/", freightHandler.GetFreights)
				freights.POST("/", freightHandler.CreateFreight)
				freights.PUT("/:id", freightHandler.UpdateFreight)
				freights.DELETE("/:id", freightHandler.DeleteFreight)
				freights.POST("/:id/complete", freightHandler.CompleteFreight)
				freights.POST("/:id/toggle-paid", freightHandler.TogglePaid)
				freights.POST("/:id/toggle-client-paid", freightHandler.ToggleClientPaid)
				freights.POST("/:id/receipts/:kind", freightHandler.UploadReceipt)
				freights.POST("/:id/document", freightHandler.UploadDocument)
			}

			fuel := admin.Group("/fuel-purchases")
			{
				fuel.GET("/", fuelHandler.GetFuelPurchases)
				fuel.POST("/", fuelHandler.CreateFuelPurchase)
				fuel.PUT("/:id", fuelHandler.UpdateFuelPurchase)
				fuel.DELETE("/:id", fuelHandler.DeleteFuelPurchase)
				fuel.POST("/:id/toggle-paid", fuelHandler.TogglePaid)
				fuel.POST("/:id/receipt", fuelHandler.UploadReceipt)
			}

			supplies := admin.Group("/supplies")
			{
				supplies.GET("/", supplyHandler.GetSupplies)
				supplies.POST("/", supplyHandler.CreateSupply)
				supplies.PUT("/:id", supplyHandler.UpdateSupply)
				supplies.DELETE("/:id", supplyHandler.DeleteSupply)
				supplies.POST("/:id/toggle-paid", supplyHandler.TogglePaid)
				supplies.POST("/:id/receipt", supplyHandler.UploadReceipt)
			}

			payments := admin.Group("/payments")
			{
				payments.GET("/", paymentHandler.GetPayments)
				payments.POST("/", paymentHandler.CreatePayment)
				payments.DELETE("/:id", paymentHandler.DeletePayment)
				payments.POST("/:id/proof", paymentHandler.UploadProof)
			}

			admin.GET("/clients", clientHandler.GetClients)
			admin.GET("/clients/:name/summary", clientHandler.GetSummary)

			reports := admin.Group("/reports")
			{
				reports.GET("/freights.xlsx", reportHandler.ExportFreights)
				reports.GET("/payments.xlsx", reportHandler.ExportPayments)
			}
		}
	}

	return router
}
