package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/superhecht1/praxida/domain"
)

// identityKey is the gin context key the access guard stores the caller's
// identity under. Handlers read it through Identity, never directly.
const identityKey = "praxida.identity"

// Guard bundles the request-pipeline interceptors around the session manager.
type Guard struct {
	carrier    domain.CarrierService
	sessions   domain.SessionService
	cookieName string
}

// NewGuard creates the access guard.
func NewGuard(carrier domain.CarrierService, sessions domain.SessionService, cookieName string) *Guard {
	return &Guard{carrier: carrier, sessions: sessions, cookieName: cookieName}
}

// RequireSession resolves the caller's session and attaches the resulting
// AuthenticatedContext to the request. On any failure the request is aborted
// with one generic 401 body; expired, missing and tampered carriers are
// indistinguishable to the caller.
func (g *Guard) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := g.extractCarrier(c)
		if token == "" {
			unauthorized(c)
			return
		}

		sessionID, err := g.carrier.Decode(token)
		if err != nil {
			unauthorized(c)
			return
		}

		identity, err := g.sessions.Validate(c.Request.Context(), sessionID)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRoles enforces role-set membership. Composable with RequireSession,
// which must run first.
func (g *Guard) RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	set := domain.NewRoleSet(roles...)
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			unauthorized(c)
			return
		}
		if !set.Contains(identity.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated identity attached by RequireSession.
func Identity(c *gin.Context) (*domain.AuthenticatedContext, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*domain.AuthenticatedContext)
	return identity, ok
}

// extractCarrier reads the session carrier from the Authorization header,
// falling back to the session cookie.
func (g *Guard) extractCarrier(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(g.cookieName); err == nil {
		return cookie
	}
	return ""
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	c.Abort()
}
