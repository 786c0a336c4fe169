package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acestore/acestore-api/controllers"
)

func CartRoutes(server *gin.Engine, cartController *controllers.CartController) {
	server.GET("/cart", cartController.GetCart)
	server.POST("/cart/items", cartController.AddItem)
	server.PATCH("/cart/items/:variantId", cartController.UpdateItemQuantity)
	server.DELETE("/cart/items/:variantId", cartController.RemoveItem)
	server.DELETE("/cart", cartController.ClearCart)
}
