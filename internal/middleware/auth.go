package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"olive-mind/internal/models"
)

// AuthMiddleware validates the bearer token and stashes the caller's id and
// role on the context. Role enforcement for mutations happens again inside
// the coordinator; this layer only establishes who is calling.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization Header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Println("No auth header found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Println("Auth header format is not Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		session, err := SessionFromToken(parts[1], jwtSecret)
		if err != nil {
			log.Println("Token parsing error:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", session.UserID)
		c.Set("role", session.Role)
		c.Next()
	}
}

// RequireManager rejects non-manager callers. It sits on top of
// AuthMiddleware for routes whose writes do not pass through the
// coordinator's own role gate.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionFrom(c).Role != models.RoleManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Only managers may do that."})
			return
		}
		c.Next()
	}
}

// SessionFromToken validates a signed token and rebuilds the caller's
// session from its claims. Shared with the websocket endpoint, which gets
// its token as a query parameter instead of a header.
func SessionFromToken(tokenString, jwtSecret string) (models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return models.Session{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Session{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return models.Session{}, jwt.ErrTokenInvalidClaims
	}
	role, ok := claims["role"].(string)
	if !ok {
		return models.Session{}, jwt.ErrTokenInvalidClaims
	}

	return models.Session{UserID: sub, Role: models.Role(role)}, nil
}

// SessionFrom rebuilds the session the middleware stored on the context.
func SessionFrom(c *gin.Context) models.Session {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	session := models.Session{}
	if id, ok := userID.(string); ok {
		session.UserID = id
	}
	if r, ok := role.(models.Role); ok {
		session.Role = r
	}
	return session
}
