package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acestore/acestore-api/controllers"
	"github.com/acestore/acestore-api/middlewares"
)

func OrderRoutes(server *gin.Engine, orderController *controllers.OrderController) {
	server.POST("/checkout", orderController.SubmitOrder)
	server.GET("/account/orders", middlewares.RequireAuth(), orderController.GetMyOrders)

	admin := server.Group("/admin", middlewares.RequireAdmin())
	{
		admin.GET("/orders", orderController.GetOrders)
		admin.PATCH("/orders/:orderId", orderController.UpdateOrderStatus)
		admin.DELETE("/orders/:orderId", orderController.DeleteOrder)
	}
}
