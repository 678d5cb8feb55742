package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextSessionClaims is the key used to store token claims in the Gin context.
	ContextSessionClaims = "sessionClaims"
	// ContextSessionID is the key used to store the authorised session id in the Gin context.
	ContextSessionID = "sessionID"

	// tokenQueryParam carries the token for clients that cannot set headers, such as browser websockets.
	tokenQueryParam = "token"
)

// Authoriz accepts a bearer session token from the Authorization header or
// the token query parameter and stores the session id it names.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		raw, _ := claims[service.ClaimSessionID].(string)
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token does not name a session"})
			return
		}

		c.Set(ContextSessionClaims, claims)
		c.Set(ContextSessionID, id)
		c.Next()
	}
}

// SessionID returns the session id stored by Authoriz.
func SessionID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextSessionID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query(tokenQueryParam)
		return token, token != ""
	}

	// Split the "Bearer" prefix from the token.
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
