package handlers

import (
	"net/http"
	"strconv"

	"trading_platform/internal/domain"
	"trading_platform/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ListBots returns the enabled bot catalog; 403 while bots are disabled
func (h *Handler) ListBots(c *gin.Context) {
	bots, err := h.BotService.ListEnabled(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bots": bots})
}

// LaunchBot opens a position
func (h *Handler) LaunchBot(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req domain.LaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	position, err := h.BotService.Launch(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.BotLaunches.Inc()
	h.AuditService.Log(c.Request.Context(), userID, domain.AuditCategoryBot, domain.AuditActionBotLaunch,
		map[string]interface{}{"bot_id": req.BotID, "investment": req.Investment, "currency": req.Currency},
		c.ClientIP())

	c.JSON(http.StatusCreated, position)
}

// StopBot settles an active position
func (h *Handler) StopBot(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	positionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position id"})
		return
	}

	result, err := h.BotService.Stop(c.Request.Context(), userID, positionID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.BotStops.Inc()
	h.AuditService.Log(c.Request.Context(), userID, domain.AuditCategoryBot, domain.AuditActionBotStop,
		map[string]interface{}{"position_id": positionID, "profit": result.Profit},
		c.ClientIP())

	c.JSON(http.StatusOK, result)
}

// Positions returns the user's open and settled positions
func (h *Handler) Positions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	positions, err := h.BotService.Positions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load positions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}
