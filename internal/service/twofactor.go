package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"

	"github.com/aegis-safety/backend/pkg/clock"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

const (
	backupCodeCount = 10
	backupCodeLen   = 10
)

// TwoFactorService implements TOTP enrollment and verification.
// Secrets are AES-GCM encrypted before they reach storage; backup
// codes are bcrypt hashed and single-use.
type TwoFactorService struct {
	issuer        string
	encryptionKey []byte
	clock         clock.Clock
}

// NewTwoFactorService derives a fixed-length encryption key from
// encryptionSecret with SHA-256.
func NewTwoFactorService(issuer, encryptionSecret string, clk clock.Clock) *TwoFactorService {
	if clk == nil {
		clk = clock.NewReal()
	}

	hasher := sha256.New()
	hasher.Write([]byte(encryptionSecret))

	return &TwoFactorService{
		issuer:        issuer,
		encryptionKey: hasher.Sum(nil),
		clock:         clk,
	}
}

// GenerateSecret creates a new TOTP key bound to the account email.
func (s *TwoFactorService) GenerateSecret(email string) (*otp.Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: email,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}
	return key, nil
}

// ValidateCode checks a 6-digit TOTP code against the plaintext
// secret, accepting one 30-second step of clock skew either way.
func (s *TwoFactorService) ValidateCode(secret, code string) bool {
	valid, err := totp.ValidateCustom(code, secret, s.clock.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}

// EncryptSecret seals a TOTP secret with AES-GCM under a random nonce.
func (s *TwoFactorService) EncryptSecret(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptSecret reverses EncryptSecret.
func (s *TwoFactorService) DecryptSecret(encrypted string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// GenerateBackupCodes returns plaintext recovery codes, shown to the
// account holder once, alongside the hashes that get stored.
func (s *TwoFactorService) GenerateBackupCodes(ctx context.Context, hasher *PasswordHasher) ([]string, []string, error) {
	plain := make([]string, backupCodeCount)
	hashes := make([]string, backupCodeCount)

	for i := 0; i < backupCodeCount; i++ {
		code, err := randomCode(backupCodeLen)
		if err != nil {
			return nil, nil, err
		}
		plain[i] = code

		hash, err := hasher.Hash(ctx, code)
		if err != nil {
			return nil, nil, err
		}
		hashes[i] = hash
	}

	return plain, hashes, nil
}

// ConsumeBackupCode matches code against the stored hashes and returns
// the remaining hashes with the matched one removed. ok is false when
// no hash matches.
func (s *TwoFactorService) ConsumeBackupCode(hashes []string, code string) (remaining []string, ok bool) {
	for i, h := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(code)) == nil {
			remaining = append(remaining, hashes[:i]...)
			remaining = append(remaining, hashes[i+1:]...)
			return remaining, true
		}
	}
	return hashes, false
}

func randomCode(length int) (string, error) {
	const chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		result[i] = chars[n.Int64()]
	}
	return string(result), nil
}
