package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"trading_platform/internal/domain"
	"trading_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

func adminID(c *gin.Context) int64 {
	if u, ok := c.Get("admin_user"); ok {
		if user, ok := u.(*domain.User); ok {
			return user.ID
		}
	}
	return 0
}

// AdminGetSettings returns the platform settings singleton
func (h *Handler) AdminGetSettings(c *gin.Context) {
	settings, err := h.SettingsService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// AdminUpdateSettings merges a partial edit; out-of-range fees reject the
// whole edit before persistence
func (h *Handler) AdminUpdateSettings(c *gin.Context) {
	var upd domain.SettingsUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	settings, err := h.SettingsService.Update(c.Request.Context(), &upd)
	if err != nil {
		respondError(c, err)
		return
	}

	h.AuditService.Log(c.Request.Context(), adminID(c), domain.AuditCategoryAdmin, domain.AuditActionAdminSettings, nil, c.ClientIP())
	c.JSON(http.StatusOK, settings)
}

type botRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ProfitRange string `json:"profit_range" binding:"required"`
	RiskLevel   string `json:"risk_level"`
	Enabled     *bool  `json:"enabled"`
}

// AdminListBots returns the full catalog including disabled bots
func (h *Handler) AdminListBots(c *gin.Context) {
	bots, err := h.BotRepo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bots": bots})
}

// AdminCreateBot adds a catalog entry; the profit range is validated at write
// time so users never see a malformed one from a new entry
func (h *Handler) AdminCreateBot(c *gin.Context) {
	var req botRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := service.ValidateProfitRange(req.ProfitRange); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	if req.RiskLevel == "" {
		req.RiskLevel = "medium"
	}

	bot := &domain.Bot{
		Name:        req.Name,
		Description: req.Description,
		ProfitRange: req.ProfitRange,
		RiskLevel:   req.RiskLevel,
		Enabled:     enabled,
	}
	if err := h.BotRepo.Create(c.Request.Context(), bot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create bot"})
		return
	}
	c.JSON(http.StatusCreated, bot)
}

// AdminUpdateBot rewrites a catalog entry
func (h *Handler) AdminUpdateBot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
		return
	}

	var req botRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := service.ValidateProfitRange(req.ProfitRange); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	bot := &domain.Bot{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		ProfitRange: req.ProfitRange,
		RiskLevel:   req.RiskLevel,
		Enabled:     enabled,
	}
	if err := h.BotRepo.Update(c.Request.Context(), bot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update bot"})
		return
	}
	c.JSON(http.StatusOK, bot)
}

type enableRequest struct {
	Enabled bool `json:"enabled"`
}

// AdminSetBotEnabled toggles a bot without rewriting the whole entry
func (h *Handler) AdminSetBotEnabled(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
		return
	}

	var req enableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.BotRepo.SetEnabled(c.Request.Context(), id, req.Enabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update bot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bot_id": id, "enabled": req.Enabled})
}

// AdminListUsers pages through registered users
func (h *Handler) AdminListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.UserRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

// AdminBlockUser flips account suspension. Admin privilege is a separate flag
// and is left untouched.
func (h *Handler) AdminBlockUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.UserRepo.SetBlocked(c.Request.Context(), id, req.Blocked); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	h.AuditService.Log(c.Request.Context(), adminID(c), domain.AuditCategoryAdmin, domain.AuditActionAdminBlockUser,
		map[string]interface{}{"user_id": id, "blocked": req.Blocked}, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"user_id": id, "blocked": req.Blocked})
}

// AdminPendingKyc lists the review queue
func (h *Handler) AdminPendingKyc(c *gin.Context) {
	docs, err := h.KycRepo.ListPending(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

type kycReviewRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// AdminReviewKyc settles a pending document; approval raises the user's
// verification level
func (h *Handler) AdminReviewKyc(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	var req kycReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	doc, err := h.KycRepo.Review(c.Request.Context(), id, adminID(c), req.Approve, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review document"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found or already reviewed"})
		return
	}

	h.AuditService.Log(c.Request.Context(), adminID(c), domain.AuditCategoryKyc, domain.AuditActionKycReview,
		map[string]interface{}{"document_id": id, "approved": req.Approve}, c.ClientIP())
	c.JSON(http.StatusOK, doc)
}

// AdminPendingWithdrawals lists the settlement queue
func (h *Handler) AdminPendingWithdrawals(c *gin.Context) {
	txs, err := h.WalletService.PendingWithdrawals(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": txs})
}

type withdrawalDecision struct {
	TxHash string `json:"tx_hash"`
}

// AdminApproveWithdrawal completes a pending withdrawal
func (h *Handler) AdminApproveWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var req withdrawalDecision
	_ = c.ShouldBindJSON(&req)

	if err := h.WalletService.ApproveWithdrawal(c.Request.Context(), id, req.TxHash); err != nil {
		respondError(c, err)
		return
	}

	h.AuditService.Log(c.Request.Context(), adminID(c), domain.AuditCategoryPayment, domain.AuditActionWithdrawApprove,
		map[string]interface{}{"transaction_id": id}, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"transaction_id": id, "status": domain.TxStatusCompleted})
}

// AdminRejectWithdrawal fails a pending withdrawal and refunds the debit
func (h *Handler) AdminRejectWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	if err := h.WalletService.RejectWithdrawal(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.AuditService.Log(c.Request.Context(), adminID(c), domain.AuditCategoryPayment, domain.AuditActionWithdrawReject,
		map[string]interface{}{"transaction_id": id}, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"transaction_id": id, "status": domain.TxStatusFailed})
}

// AdminStats returns platform statistics
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.AdminService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminOpenTickets lists the support queue
func (h *Handler) AdminOpenTickets(c *gin.Context) {
	tickets, err := h.TicketRepo.ListOpen(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

type ticketCloseRequest struct {
	Reply string `json:"reply"`
}

// AdminCloseTicket resolves a ticket with a reply
func (h *Handler) AdminCloseTicket(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	var req ticketCloseRequest
	_ = c.ShouldBindJSON(&req)

	ok, err := h.TicketRepo.Close(c.Request.Context(), id, req.Reply)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close ticket"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found or already closed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket_id": id, "status": domain.TicketClosed})
}

type notifyRequest struct {
	UserID int64  `json:"user_id"` // 0 broadcasts to everyone
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
}

// AdminNotify stores a notification and pushes it to connected users
func (h *Handler) AdminNotify(c *gin.Context) {
	notifier := h.Notifier
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	if req.UserID != 0 {
		n := &domain.Notification{UserID: req.UserID, Title: req.Title, Body: req.Body}
		if err := h.NotificationRepo.Create(ctx, n); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notification"})
			return
		}
		if notifier != nil {
			notifier.Push(req.UserID, "notification", n)
		}
		c.JSON(http.StatusCreated, gin.H{"notified": 1})
		return
	}

	ids, err := h.NotificationRepo.CreateForAll(ctx, req.Title, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to broadcast"})
		return
	}
	if notifier != nil {
		for _, id := range ids {
			notifier.Push(id, "notification", gin.H{"title": req.Title, "body": req.Body})
		}
	}

	h.AuditService.Log(ctx, adminID(c), domain.AuditCategoryAdmin, domain.AuditActionAdminNotify,
		map[string]interface{}{"recipients": len(ids)}, c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"notified": len(ids)})
}

// AdminAuditLog returns recent audit entries
func (h *Handler) AdminAuditLog(c *gin.Context) {
	entries, err := h.AuditService.Recent(c.Request.Context(), c.Query("category"), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load audit log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
