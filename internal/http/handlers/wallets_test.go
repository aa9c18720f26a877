package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trading_platform/internal/service"

	"github.com/gin-gonic/gin"
)

func webhookRequest(t *testing.T, h *Handler, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks/deposit", strings.NewReader(body))
	if signature != "" {
		c.Request.Header.Set("X-Webhook-Signature", signature)
	}

	h.DepositWebhook(c)
	return w
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRespondError_KycLevelFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, &service.KycError{Action: service.ActionWithdraw, RequiredLevel: 2})

	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d; want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"required_level":2`) {
		t.Fatalf("body %s; want required_level 2", w.Body.String())
	}
}

func TestDepositWebhook_RejectsBadSignature(t *testing.T) {
	h := &Handler{Config: HandlerConfig{WebhookSecret: "hook-secret"}}
	body := `{"user_id":1,"currency":"USDT","amount":10}`

	if w := webhookRequest(t, h, body, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing signature: status %d; want 401", w.Code)
	}
	if w := webhookRequest(t, h, body, "deadbeef"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong signature: status %d; want 401", w.Code)
	}
	// valid hex but computed over a different body
	if w := webhookRequest(t, h, body, sign("hook-secret", "other")); w.Code != http.StatusUnauthorized {
		t.Fatalf("replayed signature: status %d; want 401", w.Code)
	}
}

func TestDepositWebhook_RejectsBadPayload(t *testing.T) {
	h := &Handler{Config: HandlerConfig{WebhookSecret: "hook-secret"}}

	for _, body := range []string{
		`not json`,
		`{"currency":"USDT","amount":10}`,
		`{"user_id":1,"amount":10}`,
	} {
		if w := webhookRequest(t, h, body, sign("hook-secret", body)); w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status %d; want 400", body, w.Code)
		}
	}
}
