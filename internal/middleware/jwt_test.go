package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aegis-safety/backend/internal/constants"
	"github.com/aegis-safety/backend/internal/model"
	"github.com/aegis-safety/backend/internal/service"
	"github.com/aegis-safety/backend/pkg/clock"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type staticAccounts struct {
	account *model.Account
}

func (s *staticAccounts) GetByID(_ context.Context, id uint) (*model.Account, error) {
	if s.account == nil || s.account.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s.account
	return &clone, nil
}

func authRequest(t *testing.T, mw *JWTMiddleware, token string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		id := c.GetUint(constants.GinKeyAccountID)
		c.JSON(http.StatusOK, gin.H{"account_id": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer := service.NewTokenIssuer("test-secret", time.Hour, clk)
	account := &model.Account{IsActive: true, Email: "ada@example.com", Role: model.RoleUser}
	account.ID = 42

	mw := NewJWTMiddleware(issuer, &staticAccounts{account: account})

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if w := authRequest(t, mw, token); w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_MissingOrMalformedHeader(t *testing.T) {
	issuer := service.NewTokenIssuer("test-secret", time.Hour, nil)
	mw := NewJWTMiddleware(issuer, &staticAccounts{})

	if w := authRequest(t, mw, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without header, got %d", w.Code)
	}
	if w := authRequest(t, mw, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for garbage token, got %d", w.Code)
	}
}

func TestRequireAuth_UnknownAccount(t *testing.T) {
	issuer := service.NewTokenIssuer("test-secret", time.Hour, nil)
	mw := NewJWTMiddleware(issuer, &staticAccounts{})

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if w := authRequest(t, mw, token); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unknown account, got %d", w.Code)
	}
}

func TestRequireAuth_StaleSessionAfterPasswordChange(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer := service.NewTokenIssuer("test-secret", 90*24*time.Hour, clk)

	account := &model.Account{IsActive: true, Email: "ada@example.com", Role: model.RoleUser}
	account.ID = 42
	store := &staticAccounts{account: account}
	mw := NewJWTMiddleware(issuer, store)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// The password changes some time after the token was issued.
	changed := clk.Now().Add(time.Hour)
	account.PasswordChangedAt = &changed
	clk.Advance(2 * time.Hour)

	if w := authRequest(t, mw, token); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for session predating password change, got %d", w.Code)
	}

	// A token issued after the change passes.
	fresh, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if w := authRequest(t, mw, fresh); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for fresh session, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_DeactivatedAccount(t *testing.T) {
	issuer := service.NewTokenIssuer("test-secret", time.Hour, nil)
	account := &model.Account{IsActive: false, Email: "ada@example.com", Role: model.RoleUser}
	account.ID = 42
	mw := NewJWTMiddleware(issuer, &staticAccounts{account: account})

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if w := authRequest(t, mw, token); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for deactivated account, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	issuer := service.NewTokenIssuer("test-secret", time.Hour, nil)
	account := &model.Account{IsActive: true, Email: "ada@example.com", Role: model.RoleUser}
	account.ID = 42
	mw := NewJWTMiddleware(issuer, &staticAccounts{account: account})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", mw.RequireAuth(), mw.RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for user role on admin route, got %d", w.Code)
	}

	account.Role = model.RoleAdmin
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin role, got %d", w.Code)
	}
}
