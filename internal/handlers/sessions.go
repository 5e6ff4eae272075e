package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// SaveSession handles PUT /api/v1/sessions/:userId
// Writes the full session record; logging in overwrites any prior one.
func (h *Handlers) SaveSession(c *gin.Context) {
	var session models.Session
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session.UserID = c.Param("userId")
	if session.UserID == "" || session.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and email are required"})
		return
	}

	if err := h.sessions.Save(c.Request.Context(), &session); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSession handles GET /api/v1/sessions/:userId
func (h *Handlers) GetSession(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ClearSession handles DELETE /api/v1/sessions/:userId
// Logout: every session field is dropped at once.
func (h *Handlers) ClearSession(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
