package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aegis-safety/backend/internal/dto"
	apperrors "github.com/aegis-safety/backend/internal/errors"
	"github.com/aegis-safety/backend/internal/model"
	ctxutil "github.com/aegis-safety/backend/pkg/context"
	"github.com/aegis-safety/backend/pkg/clock"
	"github.com/aegis-safety/backend/pkg/logger"
	"github.com/aegis-safety/backend/pkg/mailer"
	"gorm.io/gorm"
)

// AccountStore is the persistence surface AuthService depends on,
// implemented by repository.AccountRepository.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id uint) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, hash string, changedAt time.Time) error
	UpdateLockState(ctx context.Context, id uint, failedAttempts int, lockUntil *time.Time) error
	RecordLogin(ctx context.Context, id uint, ip, userAgent string, at time.Time) error
	SetResetToken(ctx context.Context, id uint, tokenHash string, expiry time.Time) error
	SetVerificationToken(ctx context.Context, id uint, tokenHash string, expiry time.Time) error
	FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*model.Account, error)
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*model.Account, error)
	MarkVerified(ctx context.Context, id uint) error
	SetTwoFactorSecret(ctx context.Context, id uint, encryptedSecret string) error
	EnableTwoFactor(ctx context.Context, id uint, backupCodeHashes []string) error
	UpdateBackupCodes(ctx context.Context, id uint, backupCodeHashes []string) error
	DisableTwoFactor(ctx context.Context, id uint) error
	SetActive(ctx context.Context, id uint, active bool) error
	SetRole(ctx context.Context, id uint, role string) error
}

// AuthConfig carries the tunables AuthService needs from config.
type AuthConfig struct {
	BaseURL              string
	ResetTokenTTL        time.Duration
	VerificationTokenTTL time.Duration
}

// AuthService orchestrates the credential lifecycle: registration,
// email verification, login with lockout and 2FA, password change and
// recovery, and admin account controls.
type AuthService struct {
	store     AccountStore
	hasher    *PasswordHasher
	tokens    *TokenGenerator
	issuer    *TokenIssuer
	lockout   LockoutPolicy
	twoFactor *TwoFactorService
	mail      mailer.Sender
	clock     clock.Clock
	cfg       AuthConfig
}

func NewAuthService(
	store AccountStore,
	hasher *PasswordHasher,
	tokens *TokenGenerator,
	issuer *TokenIssuer,
	lockout LockoutPolicy,
	twoFactor *TwoFactorService,
	mail mailer.Sender,
	clk clock.Clock,
	cfg AuthConfig,
) *AuthService {
	if clk == nil {
		clk = clock.NewReal()
	}
	return &AuthService{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		issuer:    issuer,
		lockout:   lockout,
		twoFactor: twoFactor,
		mail:      mail,
		clock:     clk,
		cfg:       cfg,
	}
}

// Register creates an unverified active account and dispatches the
// verification mail in the background. A mail failure is logged but
// never fails the registration.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Register")

	email := model.NormalizeEmail(req.Email)

	logger.InfoWithContext(ctx, "Registering account").
		String("email", email).
		Log()

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		logger.WarnWithContext(ctx, "Registration rejected: email taken").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	account := &model.Account{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
		IsVerified:   false,
	}

	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		logger.ErrorWithContext(ctx, "Failed to create account").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.issueVerification(ctx, account, true); err != nil {
		// Token issuing failed; the account exists and can request a
		// resend later.
		logger.WarnWithContext(ctx, "Verification mail not sent at registration").
			Uint("account_id", account.ID).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "Account registered").
		Uint("account_id", account.ID).
		String("email", email).
		Log()
	logger.LogAuth(account.ID, "register", true)

	return toAccountResponse(account), nil
}

// issueVerification stores a fresh verification token and sends the
// mail, asynchronously when async is true.
func (s *AuthService) issueVerification(ctx context.Context, account *model.Account, async bool) error {
	token, err := s.tokens.Generate(s.cfg.VerificationTokenTTL)
	if err != nil {
		return err
	}

	if err := s.store.SetVerificationToken(ctx, account.ID, token.Hash, token.ExpiresAt); err != nil {
		return err
	}

	data := map[string]interface{}{
		"Name":      account.FirstName,
		"ActionURL": fmt.Sprintf("%s/verify-email?token=%s", s.cfg.BaseURL, token.Plain),
		"Token":     token.Plain,
		"TTL":       formatTTL(s.cfg.VerificationTokenTTL),
	}

	send := func() error {
		return s.mail.Send(account.Email, "Verify your email", mailer.TemplateVerifyEmail, data)
	}

	if async {
		go func() {
			if err := send(); err != nil {
				logger.ErrorWithContext(context.Background(), "Verification mail delivery failed").
					Uint("account_id", account.ID).
					Err(err).
					Log()
			}
		}()
		return nil
	}

	return send()
}

// VerifyEmail consumes a verification token and marks the account
// verified. The token pair is cleared in the same update, so a token
// can be used once.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "VerifyEmail")

	account, err := s.store.FindByVerificationTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnWithContext(ctx, "Verification token not recognized").Log()
			return apperrors.ErrInvalidToken
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.tokens.Matches(token, account.VerificationTokenHash, account.VerificationTokenExpiry) {
		logger.WarnWithContext(ctx, "Verification token expired").
			Uint("account_id", account.ID).
			Log()
		return apperrors.ErrInvalidToken
	}

	if err := s.store.MarkVerified(ctx, account.ID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Email verified").
		Uint("account_id", account.ID).
		Log()

	return nil
}

// ResendVerification issues a fresh verification token, replacing any
// outstanding one. Mail delivery is synchronous here so the caller
// learns about SMTP trouble.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ResendVerification")

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if account.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	if err := s.issueVerification(ctx, account, false); err != nil {
		logger.ErrorWithContext(ctx, "Failed to resend verification mail").
			Uint("account_id", account.ID).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrEmailDelivery, err)
	}

	return nil
}

// Login authenticates an email/password pair, enforcing lockout,
// deactivation, and two-factor checks, and returns a session token.
//
// Ordering is deliberate: an unknown email and a wrong password are
// indistinguishable to the caller; the lockout check runs before the
// password is verified so a locked account leaks nothing about the
// password; the deactivation check runs only after the password
// proved correct.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	email := model.NormalizeEmail(req.Email)
	now := s.clock.Now()

	logger.InfoWithContext(ctx, "Login attempt").
		String("email", email).
		Log()

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed: unknown email").
				String("email", email).
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	state := LockState{FailedAttempts: account.FailedAttempts, LockUntil: account.LockUntil}

	if s.lockout.IsLocked(state, now) {
		logger.WarnWithContext(ctx, "Login rejected: account locked").
			Uint("account_id", account.ID).
			Time("lock_until", *account.LockUntil).
			Log()
		logger.LogAuth(account.ID, "login", false)
		return nil, apperrors.ErrAccountLocked
	}

	if !s.hasher.Verify(account.PasswordHash, req.Password) {
		next := s.lockout.OnFailure(state, now)
		if err := s.store.UpdateLockState(ctx, account.ID, next.FailedAttempts, next.LockUntil); err != nil {
			logger.ErrorWithContext(ctx, "Failed to persist lock state").
				Uint("account_id", account.ID).
				Err(err).
				Log()
		}

		logger.WarnWithContext(ctx, "Login failed: bad password").
			Uint("account_id", account.ID).
			Int("failed_attempts", next.FailedAttempts).
			Log()
		logger.LogAuth(account.ID, "login", false)

		if s.lockout.IsLocked(next, now) {
			return nil, apperrors.ErrAccountLocked
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if !account.IsActive {
		logger.WarnWithContext(ctx, "Login rejected: account deactivated").
			Uint("account_id", account.ID).
			Log()
		return nil, apperrors.ErrAccountDeactivated
	}

	if account.TwoFactorEnabled {
		if req.TwoFactorCode == "" {
			return &dto.LoginResponse{TwoFactorRequired: true}, nil
		}
		if err := s.verifySecondFactor(ctx, account, req.TwoFactorCode); err != nil {
			logger.LogAuth(account.ID, "login", false)
			return nil, err
		}
	}

	// Failure memory clears only after full authentication.
	if account.FailedAttempts > 0 || account.LockUntil != nil {
		cleared := s.lockout.OnSuccess()
		if err := s.store.UpdateLockState(ctx, account.ID, cleared.FailedAttempts, cleared.LockUntil); err != nil {
			logger.ErrorWithContext(ctx, "Failed to clear lock state").
				Uint("account_id", account.ID).
				Err(err).
				Log()
		}
	}

	if err := s.store.RecordLogin(ctx, account.ID, ip, userAgent, now); err != nil {
		logger.WarnWithContext(ctx, "Failed to record login audit").
			Uint("account_id", account.ID).
			Err(err).
			Log()
	}

	token, err := s.issuer.Issue(account.ID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue session token").
			Uint("account_id", account.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Login succeeded").
		Uint("account_id", account.ID).
		Log()
	logger.LogAuth(account.ID, "login", true)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.issuer.TTL().Seconds()),
		Account:   toAccountResponse(account),
	}, nil
}

// verifySecondFactor accepts a live TOTP code or burns an unused
// backup code.
func (s *AuthService) verifySecondFactor(ctx context.Context, account *model.Account, code string) error {
	secret, err := s.twoFactor.DecryptSecret(account.TwoFactorSecret)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to decrypt two-factor secret").
			Uint("account_id", account.ID).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if s.twoFactor.ValidateCode(secret, code) {
		return nil
	}

	var hashes []string
	if len(account.TwoFactorBackupCodes) > 0 {
		if err := json.Unmarshal(account.TwoFactorBackupCodes, &hashes); err != nil {
			hashes = nil
		}
	}

	remaining, ok := s.twoFactor.ConsumeBackupCode(hashes, code)
	if !ok {
		logger.WarnWithContext(ctx, "Two-factor code rejected").
			Uint("account_id", account.ID).
			Log()
		return apperrors.ErrInvalidTwoFactorCode
	}

	if err := s.store.UpdateBackupCodes(ctx, account.ID, remaining); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Backup code used").
		Uint("account_id", account.ID).
		Int("codes_remaining", len(remaining)).
		Log()

	return nil
}

// Logout has no server-side state to clear; sessions are stateless
// and the client discards its token. Kept as an audit point.
func (s *AuthService) Logout(ctx context.Context, accountID uint) {
	ctx = ctxutil.WithOperation(ctx, "service", "Logout")

	logger.InfoWithContext(ctx, "Logout").
		Uint("account_id", accountID).
		Log()
	logger.LogAuth(accountID, "logout", true)
}

// ChangePassword verifies the current password and swaps in the new
// hash. PasswordChangedAt is backdated by one second so the session
// token issued for this very request survives the stale-session check.
func (s *AuthService) ChangePassword(ctx context.Context, accountID uint, req *dto.ChangePasswordRequest) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ChangePassword")

	logger.InfoWithContext(ctx, "Changing password").
		Uint("account_id", accountID).
		Log()

	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	account, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.hasher.Verify(account.PasswordHash, req.CurrentPassword) {
		logger.WarnWithContext(ctx, "Password change rejected: current password wrong").
			Uint("account_id", accountID).
			Log()
		return apperrors.ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(ctx, req.NewPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	changedAt := s.clock.Now().Add(-time.Second)
	if err := s.store.UpdatePassword(ctx, accountID, hash, changedAt); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password changed").
		Uint("account_id", accountID).
		Log()
	logger.LogAuth(accountID, "change_password", true)

	return nil
}

// ForgotPassword issues a reset token and mails it. The mail is sent
// synchronously: a delivery failure surfaces as ErrEmailDelivery so
// the caller does not wait for a mail that never left.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ForgotPassword")

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Password reset requested for unknown email").Log()
			return apperrors.ErrAccountNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.tokens.Generate(s.cfg.ResetTokenTTL)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.store.SetResetToken(ctx, account.ID, token.Hash, token.ExpiresAt); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	data := map[string]interface{}{
		"Name":      account.FirstName,
		"ActionURL": fmt.Sprintf("%s/reset-password?token=%s", s.cfg.BaseURL, token.Plain),
		"Token":     token.Plain,
		"TTL":       formatTTL(s.cfg.ResetTokenTTL),
	}

	if err := s.mail.Send(account.Email, "Reset your password", mailer.TemplateResetPassword, data); err != nil {
		logger.ErrorWithContext(ctx, "Reset mail delivery failed").
			Uint("account_id", account.ID).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrEmailDelivery, err)
	}

	logger.InfoWithContext(ctx, "Password reset mail sent").
		Uint("account_id", account.ID).
		Log()

	return nil
}

// ResetPassword consumes a reset token and installs the new password.
// UpdatePassword clears the token pair in the same statement, so a
// reset token works exactly once, and the fresh PasswordChangedAt
// invalidates every session issued before the reset.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ResetPassword")

	account, err := s.store.FindByResetTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnWithContext(ctx, "Reset token not recognized").Log()
			return apperrors.ErrInvalidToken
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.tokens.Matches(token, account.ResetTokenHash, account.ResetTokenExpiry) {
		logger.WarnWithContext(ctx, "Reset token expired").
			Uint("account_id", account.ID).
			Log()
		return apperrors.ErrInvalidToken
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.store.UpdatePassword(ctx, account.ID, hash, s.clock.Now()); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// A completed reset proves control of the mailbox; any standing
	// lockout is cleared with it.
	if account.FailedAttempts > 0 || account.LockUntil != nil {
		if err := s.store.UpdateLockState(ctx, account.ID, 0, nil); err != nil {
			logger.WarnWithContext(ctx, "Failed to clear lock state after reset").
				Uint("account_id", account.ID).
				Err(err).
				Log()
		}
	}

	logger.InfoWithContext(ctx, "Password reset completed").
		Uint("account_id", account.ID).
		Log()
	logger.LogAuth(account.ID, "reset_password", true)

	return nil
}

// EnrollTwoFactor generates a TOTP secret for the account, stores it
// encrypted but not yet enabled, and returns the otpauth URL for the
// authenticator app. Re-enrolling replaces a pending secret.
func (s *AuthService) EnrollTwoFactor(ctx context.Context, accountID uint) (*dto.TwoFactorEnrollResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "EnrollTwoFactor")

	account, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	key, err := s.twoFactor.GenerateSecret(account.Email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	encrypted, err := s.twoFactor.EncryptSecret(key.Secret())
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.store.SetTwoFactorSecret(ctx, accountID, encrypted); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Two-factor enrollment started").
		Uint("account_id", accountID).
		Log()

	return &dto.TwoFactorEnrollResponse{
		Secret:     key.Secret(),
		OtpauthURL: key.URL(),
	}, nil
}

// ConfirmTwoFactor verifies a code against the pending secret, enables
// 2FA, and returns the one-time-visible backup codes.
func (s *AuthService) ConfirmTwoFactor(ctx context.Context, accountID uint, code string) (*dto.TwoFactorConfirmResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ConfirmTwoFactor")

	account, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if account.TwoFactorSecret == "" {
		return nil, apperrors.ErrTwoFactorNotEnrolled
	}

	secret, err := s.twoFactor.DecryptSecret(account.TwoFactorSecret)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.twoFactor.ValidateCode(secret, code) {
		logger.WarnWithContext(ctx, "Two-factor confirmation code rejected").
			Uint("account_id", accountID).
			Log()
		return nil, apperrors.ErrInvalidTwoFactorCode
	}

	plain, hashes, err := s.twoFactor.GenerateBackupCodes(ctx, s.hasher)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.store.EnableTwoFactor(ctx, accountID, hashes); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Two-factor enabled").
		Uint("account_id", accountID).
		Log()
	logger.LogAuth(accountID, "enable_two_factor", true)

	return &dto.TwoFactorConfirmResponse{BackupCodes: plain}, nil
}

// DisableTwoFactor turns 2FA off after a final code check (TOTP or
// backup code).
func (s *AuthService) DisableTwoFactor(ctx context.Context, accountID uint, code string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DisableTwoFactor")

	account, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !account.TwoFactorEnabled {
		return apperrors.ErrTwoFactorNotEnrolled
	}

	if err := s.verifySecondFactor(ctx, account, code); err != nil {
		return err
	}

	if err := s.store.DisableTwoFactor(ctx, accountID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Two-factor disabled").
		Uint("account_id", accountID).
		Log()
	logger.LogAuth(accountID, "disable_two_factor", true)

	return nil
}

func toAccountResponse(a *model.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:               a.ID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		Role:             a.Role,
		IsActive:         a.IsActive,
		IsVerified:       a.IsVerified,
		TwoFactorEnabled: a.TwoFactorEnabled,
		LastLogin:        a.LastLogin,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func formatTTL(d time.Duration) string {
	if d >= time.Hour {
		return fmt.Sprintf("%d hours", int(d.Hours()))
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}
