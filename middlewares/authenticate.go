package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/acestore/acestore-api/models"
)

const identityKey = "identity"

// Authenticate parses an optional Bearer token and stores the resulting
// identity in the request context. Requests without a token pass through
// anonymously; requests with a bad token are rejected.
func Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.Next()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		identity, err := parseIdentity(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

// RequireAuth aborts requests that did not present a valid identity.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if CurrentIdentity(ctx) == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		ctx.Next()
	}
}

// CurrentIdentity returns the authenticated identity for this request, or
// nil for anonymous callers.
func CurrentIdentity(ctx *gin.Context) *models.Identity {
	value, exists := ctx.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}

func parseIdentity(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	identity := &models.Identity{}
	if sub, ok := claims["sub"].(string); ok {
		identity.ID = sub
	} else if userID, ok := claims["user_id"].(string); ok {
		identity.ID = userID
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return identity, nil
}
