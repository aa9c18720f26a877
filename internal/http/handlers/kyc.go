package handlers

import (
	"net/http"

	"trading_platform/internal/domain"

	"github.com/gin-gonic/gin"
)

type kycSubmitRequest struct {
	DocType     string `json:"doc_type" binding:"required"`
	FileURL     string `json:"file_url" binding:"required"`
	TargetLevel int    `json:"target_level"`
}

// SubmitKyc records a verification document for admin review
func (h *Handler) SubmitKyc(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req kycSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.TargetLevel < 1 || req.TargetLevel > 3 {
		req.TargetLevel = 1
	}

	doc := &domain.KycDocument{
		UserID:      userID,
		DocType:     req.DocType,
		FileURL:     req.FileURL,
		TargetLevel: req.TargetLevel,
		Status:      domain.KycPending,
	}
	if err := h.KycRepo.Create(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit document"})
		return
	}

	h.AuditService.Log(c.Request.Context(), userID, domain.AuditCategoryKyc, domain.AuditActionKycSubmit,
		map[string]interface{}{"doc_type": req.DocType, "target_level": req.TargetLevel},
		c.ClientIP())

	c.JSON(http.StatusCreated, doc)
}

// KycStatus returns the user's verification level and submissions
func (h *Handler) KycStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	docs, err := h.KycRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kyc_level": user.KycLevel,
		"documents": docs,
	})
}
