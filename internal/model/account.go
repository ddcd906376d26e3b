package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Account roles
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// DeviceInfo is one entry of the device audit trail, stored as JSON on
// the account row.
type DeviceInfo struct {
	UserAgent string    `json:"user_agent"`
	IP        string    `json:"ip"`
	LastUsed  time.Time `json:"last_used"`
}

// Account is the single persisted record per user. Reset and
// verification tokens live inline as hash+expiry pairs; there is no
// separate token table. Session tokens are self-contained and never
// stored.
type Account struct {
	gorm.Model
	FirstName string `gorm:"column:first_name;not null"`
	LastName  string `gorm:"column:last_name;not null"`
	Phone     string `gorm:"column:phone"`
	Email     string `gorm:"column:email;unique;not null"`

	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"column:role;default:user;not null"`
	IsActive     bool   `gorm:"column:is_active;default:true;not null"`
	IsVerified   bool   `gorm:"column:is_verified;default:false;not null"`

	// Lockout state. LockUntil is only meaningful while in the future;
	// an elapsed value is cleared on the next lockout evaluation.
	FailedAttempts int        `gorm:"column:failed_attempts;default:0;not null"`
	LockUntil      *time.Time `gorm:"column:lock_until"`

	// Session tokens issued before this instant are rejected.
	PasswordChangedAt *time.Time `gorm:"column:password_changed_at"`

	// Out-of-band token pairs; hash and expiry are always set and
	// cleared together. Only a digest of the token is ever stored.
	ResetTokenHash          string     `gorm:"column:reset_token_hash"`
	ResetTokenExpiry        *time.Time `gorm:"column:reset_token_expiry"`
	VerificationTokenHash   string     `gorm:"column:verification_token_hash"`
	VerificationTokenExpiry *time.Time `gorm:"column:verification_token_expiry"`

	// Two-factor state. Secret exists once enrollment has begun and is
	// encrypted at rest; backup codes exist only while 2FA is enabled.
	TwoFactorEnabled     bool           `gorm:"column:two_factor_enabled;default:false;not null"`
	TwoFactorSecret      string         `gorm:"column:two_factor_secret"`
	TwoFactorBackupCodes datatypes.JSON `gorm:"column:two_factor_backup_codes"`

	// Audit trail
	LastLogin   *time.Time     `gorm:"column:last_login"`
	IPAddresses datatypes.JSON `gorm:"column:ip_addresses"`
	Devices     datatypes.JSON `gorm:"column:devices"`
}

// NormalizeEmail lowercases and trims an email address so lookups and
// the unique index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FullName joins the name parts for display and mail templates.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
