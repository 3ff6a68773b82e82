package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/superhecht1/praxida/domain"
	"github.com/superhecht1/praxida/internal/http/middleware"
)

// ClientHandlers handles client record HTTP requests. All access is scoped to
// the authenticated tenant; cross-tenant ids render exactly like missing ones.
type ClientHandlers struct {
	clients domain.ClientRecordRepository
}

// NewClientHandlers creates new client record handlers
func NewClientHandlers(clients domain.ClientRecordRepository) *ClientHandlers {
	return &ClientHandlers{clients: clients}
}

// ClientRequest represents client record input
type ClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Notes    string `json:"notes"`
}

// Create adds a client record to the caller's tenant
func (h *ClientHandlers) Create(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := &domain.ClientRecord{
		TenantID: identity.TenantID,
		FullName: req.FullName,
		Email:    req.Email,
		Notes:    req.Notes,
	}
	if err := h.clients.Create(c.Request.Context(), rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": clientJSON(rec)})
}

// List returns the caller's tenant's client records
func (h *ClientHandlers) List(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	recs, err := h.clients.ListByTenant(c.Request.Context(), identity.TenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	out := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		out = append(out, clientJSON(rec))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// Get returns one client record
func (h *ClientHandlers) Get(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": clientJSON(rec)})
}

// Update modifies one client record
func (h *ClientHandlers) Update(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec.FullName = req.FullName
	rec.Email = req.Email
	rec.Notes = req.Notes
	if err := h.clients.Update(c.Request.Context(), rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": clientJSON(rec)})
}

// Delete soft-deletes one client record
func (h *ClientHandlers) Delete(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.clients.SoftDelete(c.Request.Context(), rec.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "deleted"}})
}

// loadOwned fetches the record from the path id and enforces tenant
// possession a second time, independent of the route middleware. Absent and
// foreign records produce identical responses.
func (h *ClientHandlers) loadOwned(c *gin.Context) (*domain.ClientRecord, bool) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}

	rec, err := h.clients.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return nil, false
	}

	if rec.TenantID != identity.TenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return rec, true
}

func clientJSON(rec *domain.ClientRecord) gin.H {
	return gin.H{
		"id":         rec.ID,
		"full_name":  rec.FullName,
		"email":      rec.Email,
		"notes":      rec.Notes,
		"created_at": rec.CreatedAt,
		"updated_at": rec.UpdatedAt,
	}
}
