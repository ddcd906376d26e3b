package handler

import (
	"net/http"

	"github.com/aegis-safety/backend/internal/constants"
	"github.com/aegis-safety/backend/internal/dto"
	apperrors "github.com/aegis-safety/backend/internal/errors"
	"github.com/aegis-safety/backend/internal/service"
	ctxutil "github.com/aegis-safety/backend/pkg/context"
	"github.com/aegis-safety/backend/pkg/logger"
	"github.com/aegis-safety/backend/pkg/validation"
	"github.com/gin-gonic/gin"
)

type TwoFactorHandler struct {
	authService *service.AuthService
}

func NewTwoFactorHandler(authService *service.AuthService) *TwoFactorHandler {
	return &TwoFactorHandler{
		authService: authService,
	}
}

// Enroll starts two-factor enrollment and returns the otpauth URL.
func (h *TwoFactorHandler) Enroll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Enroll")

	accountID, ok := accountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	response, err := h.authService.EnrollTwoFactor(ctx, accountID)
	if err != nil {
		logger.WarnWithContext(ctx, "Two-factor enrollment failed").
			Uint("account_id", accountID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Enrollment failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Scan the QR code with your authenticator app, then confirm with a code", response))
}

// Confirm verifies the first code and enables two-factor, returning
// backup codes.
func (h *TwoFactorHandler) Confirm(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Confirm")

	accountID, ok := accountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	var req dto.TwoFactorConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	response, err := h.authService.ConfirmTwoFactor(ctx, accountID, req.Code)
	if err != nil {
		logger.WarnWithContext(ctx, "Two-factor confirmation failed").
			Uint("account_id", accountID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Confirmation failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Two-factor enabled. Store these backup codes; they will not be shown again.", response))
}

// Disable turns two-factor off after a final code check.
func (h *TwoFactorHandler) Disable(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Disable")

	accountID, ok := accountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	var req dto.TwoFactorDisableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.authService.DisableTwoFactor(ctx, accountID, req.Code); err != nil {
		logger.WarnWithContext(ctx, "Two-factor disable failed").
			Uint("account_id", accountID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Disable failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Two-factor disabled"))
}
