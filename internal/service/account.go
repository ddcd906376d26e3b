package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aegis-safety/backend/internal/dto"
	apperrors "github.com/aegis-safety/backend/internal/errors"
	"github.com/aegis-safety/backend/internal/model"
	ctxutil "github.com/aegis-safety/backend/pkg/context"
	"github.com/aegis-safety/backend/pkg/logger"
	"gorm.io/gorm"
)

// AccountService covers profile reads and updates plus the admin
// controls over account state.
type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) GetByID(ctx context.Context, id uint) (*dto.AccountResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetByID")

	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return toAccountResponse(account), nil
}

// UpdateProfile applies the non-empty fields of req. Email is not
// updatable through this path.
func (s *AccountService) UpdateProfile(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*dto.AccountResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateProfile")

	logger.InfoWithContext(ctx, "Updating profile").
		Uint("account_id", id).
		Log()

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		updates["last_name"] = strings.TrimSpace(req.LastName)
	}
	if req.Phone != "" {
		updates["phone"] = strings.TrimSpace(req.Phone)
	}

	if len(updates) > 0 {
		if err := s.store.UpdateProfile(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrAccountNotFound
			}
			logger.ErrorWithContext(ctx, "Failed to update profile").
				Uint("account_id", id).
				Err(err).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return s.GetByID(ctx, id)
}

// SetActive blocks or reinstates an account. Admin only; the route
// guard enforces the role.
func (s *AccountService) SetActive(ctx context.Context, id uint, active bool) error {
	ctx = ctxutil.WithOperation(ctx, "service", "SetActive")

	logger.InfoWithContext(ctx, "Setting account active flag").
		Uint("account_id", id).
		Bool("is_active", active).
		Log()

	if err := s.store.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	action := "deactivate_account"
	if active {
		action = "activate_account"
	}
	logger.LogAuth(id, action, true)

	return nil
}

// SetRole changes an account's role. Admin only.
func (s *AccountService) SetRole(ctx context.Context, id uint, role string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "SetRole")

	switch role {
	case model.RoleUser, model.RoleModerator, model.RoleAdmin:
	default:
		return apperrors.ErrInvalidInput
	}

	logger.InfoWithContext(ctx, "Setting account role").
		Uint("account_id", id).
		String("role", role).
		Log()

	if err := s.store.SetRole(ctx, id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return nil
}
