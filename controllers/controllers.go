package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acestore/acestore-api/middlewares"
)

const (
	cartSessionHeader = "X-Cart-Session"

	msgInvalidInput       = "Invalid request body"
	msgProductNotFound    = "Product not found"
	msgOrderNotFound      = "Order not found"
	msgInternalError      = "Internal server error"
	msgFailedToFetchCart  = "Failed to fetch cart"
	msgFailedToUpdateCart = "Failed to update cart"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// cartSession resolves the cart's owner: the signed-in user when present,
// otherwise the guest session header. Guests without a session get a fresh
// id, echoed back so the client can carry it forward.
func cartSession(ctx *gin.Context) string {
	if identity := middlewares.CurrentIdentity(ctx); identity != nil {
		return identity.ID
	}
	if sid := ctx.GetHeader(cartSessionHeader); sid != "" {
		ctx.Header(cartSessionHeader, sid)
		return sid
	}
	sid := uuid.NewString()
	ctx.Header(cartSessionHeader, sid)
	return sid
}
