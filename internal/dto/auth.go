package dto

import "time"

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,e164"`
	Password  string `json:"password" binding:"required,strongpassword"`
}

type LoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"two_factor_code" binding:"omitempty"`
}

type LoginResponse struct {
	Token             string           `json:"token,omitempty"`
	ExpiresIn         int64            `json:"expires_in,omitempty"`
	TwoFactorRequired bool             `json:"two_factor_required,omitempty"`
	Account           *AccountResponse `json:"account,omitempty"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,strongpassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,strongpassword"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

type TwoFactorEnrollResponse struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}

type TwoFactorConfirmRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

type TwoFactorConfirmResponse struct {
	BackupCodes []string `json:"backup_codes"`
}

type TwoFactorDisableRequest struct {
	Code string `json:"code" binding:"required"`
}

type SessionInfo struct {
	AccountID uint      `json:"account_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
