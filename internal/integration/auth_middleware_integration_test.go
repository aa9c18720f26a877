package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"trading_platform/internal/http/middleware"
	"trading_platform/internal/repository"
	"trading_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// Blocking an account must cut off authenticated routes immediately, not only
// at the next login.
func TestBlockedUserLosesAccessWithValidToken(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createUser(t, db, 1, nil)

	service.InitJWTWithSecret("test-secret")
	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bots/launch", middleware.JWT(), middleware.Blocked(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/bots/launch", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("before block: status %d; want 200", code)
	}

	if err := repository.NewUserRepository(db).SetBlocked(ctx, user.ID, true); err != nil {
		t.Fatalf("block user: %v", err)
	}
	if code := do(); code != http.StatusForbidden {
		t.Fatalf("after block: status %d; want 403", code)
	}

	if err := repository.NewUserRepository(db).SetBlocked(ctx, user.ID, false); err != nil {
		t.Fatalf("unblock user: %v", err)
	}
	if code := do(); code != http.StatusOK {
		t.Fatalf("after unblock: status %d; want 200", code)
	}
}
