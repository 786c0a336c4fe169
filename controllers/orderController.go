package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acestore/acestore-api/checkout"
	"github.com/acestore/acestore-api/logger"
	"github.com/acestore/acestore-api/middlewares"
	"github.com/acestore/acestore-api/orders"
)

type OrderController struct {
	checkout *checkout.Service
	orders   *orders.Repository
	log      *logger.Logger
}

func NewOrderController(co *checkout.Service, repo *orders.Repository, log *logger.Logger) *OrderController {
	return &OrderController{checkout: co, orders: repo, log: log}
}

// SubmitOrder runs the submission pipeline for the session's cart. The cart
// survives every failure; it is cleared only when the order and all its line
// items have been written.
func (oc *OrderController) SubmitOrder(ctx *gin.Context) {
	var info checkout.DeliveryInfo
	if err := ctx.ShouldBindJSON(&info); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	identity := middlewares.CurrentIdentity(ctx)
	order, err := oc.checkout.Submit(ctx.Request.Context(), identity, cartSession(ctx), info)
	if err != nil {
		var subErr *checkout.Error
		if errors.As(err, &subErr) {
			status := http.StatusInternalServerError
			switch subErr.Kind {
			case checkout.KindValidation:
				status = http.StatusBadRequest
			case checkout.KindAuthenticationRequired:
				status = http.StatusUnauthorized
			}
			body := gin.H{"kind": subErr.Kind, "message": subErr.Message}
			if len(subErr.Fields) > 0 {
				body["fields"] = subErr.Fields
			}
			sendJSONResponse(ctx, status, body)
			return
		}
		oc.log.Error("order submission failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed. It is pending manual approval.",
		"order":   order,
	})
}

// GetMyOrders returns the signed-in user's order history.
func (oc *OrderController) GetMyOrders(ctx *gin.Context) {
	identity := middlewares.CurrentIdentity(ctx)

	userOrders, err := oc.orders.OrdersByUser(ctx.Request.Context(), identity.ID)
	if err != nil {
		oc.log.Error("failed to fetch user orders", "user", identity.ID, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": userOrders})
}

// GetOrders lists all orders for the admin console, optionally filtered by
// status (?status=pending|completed|refunded).
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	allOrders, err := oc.orders.ListOrders(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		oc.log.Error("failed to fetch orders", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": allOrders})
}

func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	if err := oc.orders.UpdateStatus(ctx.Request.Context(), uint(orderID), body.Status); err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidStatus):
			sendErrorResponse(ctx, http.StatusBadRequest, "Status must be pending, completed or refunded")
		case errors.Is(err, orders.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		default:
			oc.log.Error("failed to update order status", "order", orderID, "error", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

func (oc *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	if err := oc.orders.DeleteOrder(ctx.Request.Context(), uint(orderID)); err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return
		}
		oc.log.Error("failed to delete order", "order", orderID, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
