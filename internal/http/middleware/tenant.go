package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superhecht1/praxida/domain"
)

// TenantLoader resolves the owning tenant of the entity referenced by a path
// parameter. It returns domain.ErrClientNotFound (or the matching not-found
// sentinel for the entity type) when no such entity exists.
type TenantLoader func(ctx context.Context, id string) (uint, error)

// RequireTenantOwnership re-loads the referenced entity and compares its
// tenant to the authenticated tenant. A foreign entity and a nonexistent one
// produce byte-identical 404 responses, so existence never leaks across
// tenant boundaries.
func (g *Guard) RequireTenantOwnership(param string, load TenantLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			unauthorized(c)
			return
		}

		tenantID, err := load(c.Request.Context(), c.Param(param))
		if err != nil {
			if isNotFound(err) {
				notFound(c)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}

		if tenantID != identity.TenantID {
			notFound(c)
			return
		}
		c.Next()
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrClientNotFound) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrTenantNotFound) ||
		errors.Is(err, domain.ErrValidation)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	c.Abort()
}
