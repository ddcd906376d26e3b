package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aegis-safety/backend/pkg/clock"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

func TestTwoFactorService_GenerateSecret(t *testing.T) {
	svc := NewTwoFactorService("Aegis", "encryption-secret", nil)

	key, err := svc.GenerateSecret("user@example.com")
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	if key.Secret() == "" {
		t.Error("Expected non-empty secret")
	}
	if !strings.Contains(key.URL(), "otpauth://totp/") {
		t.Errorf("Expected otpauth URL, got %q", key.URL())
	}
	if !strings.Contains(key.URL(), "Aegis") {
		t.Errorf("Expected issuer in URL, got %q", key.URL())
	}
}

func TestTwoFactorService_ValidateCode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(now)
	svc := NewTwoFactorService("Aegis", "encryption-secret", clk)

	key, err := svc.GenerateSecret("user@example.com")
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}

	code, err := totp.GenerateCode(key.Secret(), now)
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}

	if !svc.ValidateCode(key.Secret(), code) {
		t.Error("Expected current code to validate")
	}
	if svc.ValidateCode(key.Secret(), "000000") {
		t.Error("Expected arbitrary code to fail")
	}

	// One period of skew is accepted either way.
	clk.Set(now.Add(30 * time.Second))
	if !svc.ValidateCode(key.Secret(), code) {
		t.Error("Expected code from previous period to validate")
	}

	// Two periods out is too stale.
	clk.Set(now.Add(90 * time.Second))
	if svc.ValidateCode(key.Secret(), code) {
		t.Error("Expected stale code to fail")
	}
}

func TestTwoFactorService_EncryptDecryptSecret(t *testing.T) {
	svc := NewTwoFactorService("Aegis", "encryption-secret", nil)

	encrypted, err := svc.EncryptSecret("JBSWY3DPEHPK3PXP")
	if err != nil {
		t.Fatalf("EncryptSecret failed: %v", err)
	}
	if encrypted == "JBSWY3DPEHPK3PXP" {
		t.Fatal("Expected ciphertext to differ from plaintext")
	}

	decrypted, err := svc.DecryptSecret(encrypted)
	if err != nil {
		t.Fatalf("DecryptSecret failed: %v", err)
	}
	if decrypted != "JBSWY3DPEHPK3PXP" {
		t.Errorf("Expected round-trip to restore secret, got %q", decrypted)
	}

	// A different key cannot open the ciphertext.
	other := NewTwoFactorService("Aegis", "different-secret", nil)
	if _, err := other.DecryptSecret(encrypted); err == nil {
		t.Error("Expected decryption with wrong key to fail")
	}

	if _, err := svc.DecryptSecret("not-base64!!"); err == nil {
		t.Error("Expected malformed ciphertext to fail")
	}
}

func TestTwoFactorService_BackupCodes(t *testing.T) {
	svc := NewTwoFactorService("Aegis", "encryption-secret", nil)
	hasher := NewPasswordHasher(bcrypt.MinCost, nil)

	plain, hashes, err := svc.GenerateBackupCodes(context.Background(), hasher)
	if err != nil {
		t.Fatalf("GenerateBackupCodes failed: %v", err)
	}
	if len(plain) != backupCodeCount || len(hashes) != backupCodeCount {
		t.Fatalf("Expected %d codes, got %d plain / %d hashes", backupCodeCount, len(plain), len(hashes))
	}
	for i, code := range plain {
		if len(code) != backupCodeLen {
			t.Errorf("Expected code length %d, got %q", backupCodeLen, code)
		}
		if code == hashes[i] {
			t.Error("Expected stored hash to differ from plaintext code")
		}
	}

	remaining, ok := svc.ConsumeBackupCode(hashes, plain[3])
	if !ok {
		t.Fatal("Expected valid backup code to be accepted")
	}
	if len(remaining) != backupCodeCount-1 {
		t.Errorf("Expected %d codes remaining, got %d", backupCodeCount-1, len(remaining))
	}

	// The burned code no longer matches.
	if _, ok := svc.ConsumeBackupCode(remaining, plain[3]); ok {
		t.Error("Expected burned code to be rejected")
	}

	if _, ok := svc.ConsumeBackupCode(remaining, "NOSUCHCODE"); ok {
		t.Error("Expected unknown code to be rejected")
	}
}
