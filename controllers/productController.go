package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acestore/acestore-api/catalog"
	"github.com/acestore/acestore-api/logger"
)

// ProductController proxies the read-only catalog reference. The storefront
// never mutates catalog data; curation happens in the catalog service.
type ProductController struct {
	catalog catalog.Client
	log     *logger.Logger
}

func NewProductController(cat catalog.Client, log *logger.Logger) *ProductController {
	return &ProductController{catalog: cat, log: log}
}

func (pc *ProductController) GetProducts(ctx *gin.Context) {
	products, err := pc.catalog.Products(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		pc.log.Error("catalog list failed", "error", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Unable to fetch products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

func (pc *ProductController) GetProduct(ctx *gin.Context) {
	product, err := pc.catalog.Product(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		pc.log.Error("catalog fetch failed", "product", ctx.Param("id"), "error", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Unable to retrieve product")
		return
	}
	ctx.JSON(http.StatusOK, product)
}
