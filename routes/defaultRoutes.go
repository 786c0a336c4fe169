package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acestore/acestore-api/controllers"
	"github.com/acestore/acestore-api/metrics"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/metrics", gin.WrapH(metrics.Handler()))
}
