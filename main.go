package main

import (
	"context"
	"encoding/json"
	"log"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/acestore/acestore-api/cart"
	"github.com/acestore/acestore-api/catalog"
	"github.com/acestore/acestore-api/checkout"
	"github.com/acestore/acestore-api/controllers"
	"github.com/acestore/acestore-api/initializers"
	"github.com/acestore/acestore-api/logger"
	"github.com/acestore/acestore-api/metrics"
	"github.com/acestore/acestore-api/middlewares"
	"github.com/acestore/acestore-api/models"
	"github.com/acestore/acestore-api/orders"
	"github.com/acestore/acestore-api/routes"
	"github.com/acestore/acestore-api/utils"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.ConnectToRedis()
	initializers.SyncDatabase()
}

func main() {
	appLogger, err := logger.New(utils.GetEnv("APP_ENV", "development"))
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer appLogger.Sync()

	storeMetrics := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)

	catalogClient := catalog.NewHTTPClient(utils.GetEnv("CATALOG_URL", "http://localhost:8081"))
	cartService := cart.NewService(cart.NewRedisStore(initializers.Redis), appLogger)
	orderRepository := orders.NewRepository(initializers.DB)

	checkoutService := checkout.NewService(cartService, orderRepository, storeMetrics, appLogger)
	adminEmail := utils.GetEnv("ADMIN_EMAIL", "")
	if adminEmail != "" {
		checkoutService.SetNotifier(func(order *models.Order) {
			go notifyOperator(appLogger, adminEmail, order)
		})
	}

	reconciler := orders.NewReconciler(
		orderRepository,
		utils.GetEnvAsDuration("ORPHAN_SWEEP_INTERVAL", 5*time.Minute),
		utils.GetEnvAsDuration("ORPHAN_GRACE_PERIOD", 30*time.Minute),
		storeMetrics,
		appLogger,
	)
	go reconciler.Run(context.Background())

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "https://www.ace-store.gg"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Cart-Session"},
		ExposeHeaders:    []string{"Content-Length", "X-Cart-Session"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.Authenticate())

	routes.DefaultRoutes(server)
	routes.ProductRoutes(server, controllers.NewProductController(catalogClient, appLogger))
	routes.CartRoutes(server, controllers.NewCartController(cartService, catalogClient, appLogger))
	routes.OrderRoutes(server, controllers.NewOrderController(checkoutService, orderRepository, appLogger))

	server.Run()
}

func notifyOperator(appLogger *logger.Logger, adminEmail string, order *models.Order) {
	var meta struct {
		UserEmail string `json:"user_email"`
	}
	_ = json.Unmarshal(order.Metadata, &meta)

	data := utils.OrderEmailData{
		OrderID:      order.ID,
		UserEmail:    meta.UserEmail,
		Total:        utils.FormatCents(order.TotalAmountCents),
		ItemCount:    len(order.OrderItems),
		DeliveryInfo: string(order.DeliveryInfo),
		DashboardURL: utils.GetEnv("FRONTEND_URL", "") + "/admin",
	}

	templatePath := filepath.Join("templates", "new_order_email.html")
	if err := utils.SendEmail(adminEmail, "New pending order", data, templatePath); err != nil {
		appLogger.Warn("failed to send new-order notification", "order", order.ID, "error", err)
	}
}
