package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acestore/acestore-api/cart"
	"github.com/acestore/acestore-api/catalog"
	"github.com/acestore/acestore-api/logger"
)

type CartController struct {
	carts   *cart.Service
	catalog catalog.Client
	log     *logger.Logger
}

func NewCartController(carts *cart.Service, cat catalog.Client, log *logger.Logger) *CartController {
	return &CartController{carts: carts, catalog: cat, log: log}
}

func cartResponse(c *cart.Cart) gin.H {
	items := c.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	return gin.H{"items": items, "totalCents": c.Total()}
}

// AddItem fetches the product from the catalog, snapshots it together with
// the chosen (or synthesized) variant, and merges it into the session cart.
func (cc *CartController) AddItem(ctx *gin.Context) {
	var body struct {
		ProductID string `json:"productId" binding:"required"`
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		cc.log.Warn("cart add bind error", "error", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := cc.catalog.Product(ctx.Request.Context(), body.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		cc.log.Error("catalog fetch failed", "product", body.ProductID, "error", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Catalog is unavailable")
		return
	}

	variant, err := catalog.ResolveVariant(product, body.VariantID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Variant not found")
		return
	}

	productSnapshot := cart.ProductSnapshot{
		ID:       product.ID,
		Title:    product.Title,
		Image:    product.Image,
		Category: product.Category,
	}
	variantSnapshot := cart.VariantSnapshot{
		ID:           variant.ID,
		Title:        variant.Title,
		PriceInCents: variant.PriceInCents,
	}

	updated, err := cc.carts.AddItem(ctx.Request.Context(), cartSession(ctx), productSnapshot, variantSnapshot, body.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
		cc.log.Error("cart add failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": product.Title + " added to cart",
		"cart":    cartResponse(updated),
	})
}

func (cc *CartController) GetCart(ctx *gin.Context) {
	c, err := cc.carts.Get(ctx.Request.Context(), cartSession(ctx))
	if err != nil {
		cc.log.Error("cart fetch failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartResponse(c)})
}

func (cc *CartController) UpdateItemQuantity(ctx *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updated, err := cc.carts.SetQuantity(ctx.Request.Context(), cartSession(ctx), ctx.Param("variantId"), body.Quantity)
	if err != nil {
		cc.log.Error("cart quantity update failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartResponse(updated)})
}

func (cc *CartController) RemoveItem(ctx *gin.Context) {
	updated, err := cc.carts.RemoveItem(ctx.Request.Context(), cartSession(ctx), ctx.Param("variantId"))
	if err != nil {
		cc.log.Error("cart remove failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartResponse(updated)})
}

func (cc *CartController) ClearCart(ctx *gin.Context) {
	if err := cc.carts.Clear(ctx.Request.Context(), cartSession(ctx)); err != nil {
		cc.log.Error("cart clear failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}
