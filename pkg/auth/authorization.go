package auth

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(firebaseApp *firebase.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		ctx := context.Background()
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize Firebase Auth"})
			c.Abort()
			return
		}

		token, err := authClient.VerifyIDToken(ctx, idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ID token"})
			c.Abort()
			return
		}

		// Attach token to the context
		c.Set("token", token)

		c.Next()
	}
}

// CallerUID returns the verified user id attached by AuthMiddleware, or ""
// on an unauthenticated route.
func CallerUID(c *gin.Context) string {
	value, ok := c.Get("token")
	if !ok {
		return ""
	}
	if token, ok := value.(*fbauth.Token); ok {
		return token.UID
	}
	return ""
}

// CallerEmail returns the email claim of the verified token, if present.
func CallerEmail(c *gin.Context) string {
	value, ok := c.Get("token")
	if !ok {
		return ""
	}
	token, ok := value.(*fbauth.Token)
	if !ok {
		return ""
	}
	if email, ok := token.Claims["email"].(string); ok {
		return email
	}
	return ""
}
