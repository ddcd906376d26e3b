package handler

import (
	"net/http"
	"strconv"

	"github.com/aegis-safety/backend/internal/constants"
	"github.com/aegis-safety/backend/internal/dto"
	apperrors "github.com/aegis-safety/backend/internal/errors"
	"github.com/aegis-safety/backend/internal/service"
	ctxutil "github.com/aegis-safety/backend/pkg/context"
	"github.com/aegis-safety/backend/pkg/logger"
	"github.com/aegis-safety/backend/pkg/validation"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Me returns the authenticated account's profile.
func (h *AccountHandler) Me(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Me")

	accountID, ok := accountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	account, err := h.accountService.GetByID(ctx, accountID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Failed to load profile", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Profile", account))
}

// UpdateProfile applies partial profile updates to the authenticated
// account.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateProfile")

	accountID, ok := accountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	account, err := h.accountService.UpdateProfile(ctx, accountID, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Profile update failed").
			Uint("account_id", accountID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Profile update failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Profile updated", account))
}

// SetActive blocks or reinstates a target account. Admin route.
func (h *AccountHandler) SetActive(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SetActive")

	targetID, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid account ID", nil))
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.accountService.SetActive(ctx, targetID, *req.IsActive); err != nil {
		logger.WarnWithContext(ctx, "Account state change failed").
			Uint("target_account_id", targetID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Account state change failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Account state updated"))
}

// SetRole changes a target account's role. Admin route.
func (h *AccountHandler) SetRole(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SetRole")

	targetID, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid account ID", nil))
		return
	}

	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.accountService.SetRole(ctx, targetID, req.Role); err != nil {
		logger.WarnWithContext(ctx, "Role change failed").
			Uint("target_account_id", targetID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Role change failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Role updated"))
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
