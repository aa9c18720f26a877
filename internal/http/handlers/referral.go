package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReferralInfo returns the user's referral dashboard: code, link, tier,
// counts and lifetime commission earnings.
func (h *Handler) ReferralInfo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	info, err := h.ReferralService.Info(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referral info"})
		return
	}
	c.JSON(http.StatusOK, info)
}
