package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aegis-safety/backend/internal/model"
	ctxutil "github.com/aegis-safety/backend/pkg/context"
	"github.com/aegis-safety/backend/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// trackedIPLimit caps the login history kept per account.
const trackedIPLimit = 10

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	logger.DebugWithContext(ctx, "Creating account").
		String("email", account.Email).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return err
	}

	start := time.Now()
	result := r.db.WithContext(ctx).Create(account)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create account").
			String("email", account.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Account created").
		Uint("account_id", account.ID).
		Duration(duration).
		Log()

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uint) (*model.Account, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	logger.DebugWithContext(ctx, "Getting account by ID").
		Uint("account_id", id).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var account model.Account
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&account)
	duration := time.Since(start)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get account by ID").
				Uint("account_id", id).
				Duration(duration).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &account, nil
}

// GetByEmail looks up an account by normalized email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByEmail")

	email = model.NormalizeEmail(email)

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var account model.Account
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&account)
	duration := time.Since(start)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get account by email").
				Duration(duration).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &account, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateProfile")

	if len(updates) == 0 {
		return nil
	}

	logger.DebugWithContext(ctx, "Updating account profile").
		Uint("account_id", id).
		Int("field_count", len(updates)).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(updates)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update account profile").
			Uint("account_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdatePassword stores a new password hash, stamps the change time,
// and clears any outstanding reset token in the same statement.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id uint, hash string, changedAt time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdatePassword")

	logger.DebugWithContext(ctx, "Updating account password").
		Uint("account_id", id).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":       hash,
			"password_changed_at": changedAt,
			"reset_token_hash":    "",
			"reset_token_expiry":  nil,
		})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update password").
			Uint("account_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateLockState persists the failed-attempt counter and lock expiry.
func (r *AccountRepository) UpdateLockState(ctx context.Context, id uint, failedAttempts int, lockUntil *time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateLockState")

	logger.DebugWithContext(ctx, "Updating lock state").
		Uint("account_id", id).
		Int("failed_attempts", failedAttempts).
		Log()

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"failed_attempts": failedAttempts,
			"lock_until":      lockUntil,
		})

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update lock state").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// RecordLogin stamps the login time and appends the client IP and
// device to the account's tracked history, keeping the most recent
// trackedIPLimit entries.
func (r *AccountRepository) RecordLogin(ctx context.Context, id uint, ip, userAgent string, at time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "RecordLogin")

	account, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var ips []string
	if len(account.IPAddresses) > 0 {
		if err := json.Unmarshal(account.IPAddresses, &ips); err != nil {
			ips = nil
		}
	}
	ips = appendCapped(ips, ip, trackedIPLimit)

	var devices []model.DeviceInfo
	if len(account.Devices) > 0 {
		if err := json.Unmarshal(account.Devices, &devices); err != nil {
			devices = nil
		}
	}
	devices = appendDevice(devices, model.DeviceInfo{UserAgent: userAgent, IP: ip, LastUsed: at}, trackedIPLimit)

	ipsJSON, err := json.Marshal(ips)
	if err != nil {
		return err
	}
	devicesJSON, err := json.Marshal(devices)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login":   at,
			"ip_addresses": datatypes.JSON(ipsJSON),
			"devices":      datatypes.JSON(devicesJSON),
		})

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to record login").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

func (r *AccountRepository) SetResetToken(ctx context.Context, id uint, tokenHash string, expiry time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SetResetToken")

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token_hash":   tokenHash,
			"reset_token_expiry": expiry,
		})

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to set reset token").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

func (r *AccountRepository) SetVerificationToken(ctx context.Context, id uint, tokenHash string, expiry time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SetVerificationToken")

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"verification_token_hash":   tokenHash,
			"verification_token_expiry": expiry,
		})

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to set verification token").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// FindByVerificationTokenHash returns the account holding the given
// verification token hash, if any.
func (r *AccountRepository) FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*model.Account, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "FindByVerificationTokenHash")

	var account model.Account
	result := r.db.WithContext(ctx).
		Where("verification_token_hash = ? AND verification_token_hash <> ''", tokenHash).
		First(&account)

	if result.Error != nil {
		return nil, result.Error
	}

	return &account, nil
}

// FindByResetTokenHash returns the account holding the given reset
// token hash, if any.
func (r *AccountRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*model.Account, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "FindByResetTokenHash")

	var account model.Account
	result := r.db.WithContext(ctx).
		Where("reset_token_hash = ? AND reset_token_hash <> ''", tokenHash).
		First(&account)

	if result.Error != nil {
		return nil, result.Error
	}

	return &account, nil
}

// MarkVerified flips the verified flag and clears the verification
// token pair in one statement so the token cannot be replayed.
func (r *AccountRepository) MarkVerified(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "MarkVerified")

	logger.DebugWithContext(ctx, "Marking account verified").
		Uint("account_id", id).
		Log()

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified":               true,
			"verification_token_hash":   "",
			"verification_token_expiry": nil,
		})

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to mark account verified").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) SetTwoFactorSecret(ctx context.Context, id uint, encryptedSecret string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SetTwoFactorSecret")

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("two_factor_secret", encryptedSecret)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to set two-factor secret").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

func (r *AccountRepository) EnableTwoFactor(ctx context.Context, id uint, backupCodeHashes []string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "EnableTwoFactor")

	codesJSON, err := json.Marshal(backupCodeHashes)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"two_factor_enabled":      true,
			"two_factor_backup_codes": datatypes.JSON(codesJSON),
		})

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to enable two-factor").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

func (r *AccountRepository) UpdateBackupCodes(ctx context.Context, id uint, backupCodeHashes []string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateBackupCodes")

	codesJSON, err := json.Marshal(backupCodeHashes)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("two_factor_backup_codes", datatypes.JSON(codesJSON))

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update backup codes").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

func (r *AccountRepository) DisableTwoFactor(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "DisableTwoFactor")

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"two_factor_enabled":      false,
			"two_factor_secret":       "",
			"two_factor_backup_codes": nil,
		})

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to disable two-factor").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

func (r *AccountRepository) SetActive(ctx context.Context, id uint, active bool) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SetActive")

	logger.DebugWithContext(ctx, "Updating account active flag").
		Uint("account_id", id).
		Bool("is_active", active).
		Log()

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("is_active", active)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update active flag").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) SetRole(ctx context.Context, id uint, role string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SetRole")

	logger.DebugWithContext(ctx, "Updating account role").
		Uint("account_id", id).
		String("role", role).
		Log()

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("role", role)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update role").
			Uint("account_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// appendCapped appends value to list, dropping duplicates of the new
// value and trimming the oldest entries beyond limit.
func appendCapped(list []string, value string, limit int) []string {
	if value == "" {
		return list
	}

	out := make([]string, 0, len(list)+1)
	for _, v := range list {
		if !strings.EqualFold(v, value) {
			out = append(out, v)
		}
	}
	out = append(out, value)

	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func appendDevice(list []model.DeviceInfo, dev model.DeviceInfo, limit int) []model.DeviceInfo {
	out := make([]model.DeviceInfo, 0, len(list)+1)
	for _, d := range list {
		if d.UserAgent != dev.UserAgent || d.IP != dev.IP {
			out = append(out, d)
		}
	}
	out = append(out, dev)

	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
