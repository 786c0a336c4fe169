package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Ace Store API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

PRODUCT
- GET "/products" - List catalog products (optional ?category=)
- GET "/products/{id}" - Get catalog product by ID

CART
- GET "/cart" - Get the session cart
- POST "/cart/items" - Add a product/variant to the cart
- PATCH "/cart/items/{variantId}" - Set a line item quantity
- DELETE "/cart/items/{variantId}" - Remove a line item
- DELETE "/cart" - Clear the cart

CHECKOUT
- POST "/checkout" - Submit the cart as a pending order

ACCOUNT
- GET "/account/orders" - Get the signed-in user's orders

ADMIN
- GET "/admin/orders" - List all orders (optional ?status=)
- PATCH "/admin/orders/{orderId}" - Update order status
- DELETE "/admin/orders/{orderId}" - Delete order`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
