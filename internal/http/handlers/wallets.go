package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"trading_platform/internal/domain"
	"trading_platform/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Wallets returns all of the user's per-currency wallets
func (h *Handler) Wallets(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	wallets, err := h.WalletService.Wallets(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// Transactions returns the user's ledger history
func (h *Handler) Transactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	txs, err := h.WalletService.Transactions(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// Withdraw debits the wallet and opens a pending withdrawal
func (h *Handler) Withdraw(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req domain.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	receipt, err := h.WalletService.Withdraw(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.Withdrawals.Inc()
	h.AuditService.Log(c.Request.Context(), userID, domain.AuditCategoryPayment, domain.AuditActionWithdrawRequest,
		map[string]interface{}{"currency": req.Currency, "amount": req.Amount, "fee": receipt.Fee},
		c.ClientIP())

	c.JSON(http.StatusOK, receipt)
}

type depositPayload struct {
	UserID   int64   `json:"user_id"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
	TxHash   string  `json:"tx_hash"`
}

// DepositWebhook credits a confirmed payment. The processor signs the raw
// body with HMAC-SHA256; an unsigned or mis-signed request is rejected before
// the payload is even parsed.
func (h *Handler) DepositWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	mac := hmac.New(sha256.New, []byte(h.Config.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if signature == "" || !hmac.Equal([]byte(signature), []byte(expected)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var payload depositPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.UserID == 0 || payload.Currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	record, err := h.WalletService.Deposit(c.Request.Context(), payload.UserID, payload.Currency, payload.Amount, payload.TxHash)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.Deposits.Inc()
	h.AuditService.Log(c.Request.Context(), payload.UserID, domain.AuditCategoryPayment, domain.AuditActionDeposit,
		map[string]interface{}{"currency": payload.Currency, "amount": payload.Amount, "tx_hash": payload.TxHash},
		c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"transaction": record})
}
