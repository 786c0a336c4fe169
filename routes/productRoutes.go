package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acestore/acestore-api/controllers"
)

func ProductRoutes(server *gin.Engine, productController *controllers.ProductController) {
	server.GET("/products", productController.GetProducts)
	server.GET("/products/:id", productController.GetProduct)
}
