package handlers

import (
	"medipay/internal/models"
	"medipay/internal/services/withdrawal"
	"medipay/internal/utils"
	"medipay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WithdrawalHandler struct {
	withdrawalService withdrawal.Service
}

func NewWithdrawalHandler(withdrawalService withdrawal.Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// RequestWithdrawal creates a withdrawal request for the calling
// doctor, reserving the amount against their wallet.
func (h *WithdrawalHandler) RequestWithdrawal(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount string `json:"amount" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "amount must be a decimal number")
	}

	v := validation.New()
	v.WithdrawalAmount("amount", amount)
	if !v.Valid() {
		return utils.BadRequest(c, v.Error())
	}

	req, err := h.withdrawalService.Create(c.Context(), claims.UserID, amount)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"withdrawal": req,
	})
}

// ListMyWithdrawals returns the calling doctor's withdrawal history,
// newest first.
func (h *WithdrawalHandler) ListMyWithdrawals(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	list, err := h.withdrawalService.ListByDoctor(c.Context(), claims.UserID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"withdrawals": list,
	})
}

// GetWithdrawal returns a single request. Doctors can only read their
// own; admins can read any.
func (h *WithdrawalHandler) GetWithdrawal(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	req, err := h.withdrawalService.Get(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}

	if claims.Role != models.RoleAdmin && req.DoctorID != claims.UserID {
		return utils.Forbidden(c, "access denied")
	}

	return utils.Success(c, fiber.Map{
		"withdrawal": req,
	})
}

// ListAllWithdrawals returns every withdrawal request. Admin only.
func (h *WithdrawalHandler) ListAllWithdrawals(c *fiber.Ctx) error {
	list, err := h.withdrawalService.ListAll(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"withdrawals": list,
	})
}

// ApproveWithdrawal marks a pending request as approved. Admin only.
func (h *WithdrawalHandler) ApproveWithdrawal(c *fiber.Ctx) error {
	return h.transition(c, models.WithdrawalStatusApproved, "")
}

// CreditWithdrawal marks a request as paid out. Admin only.
func (h *WithdrawalHandler) CreditWithdrawal(c *fiber.Ctx) error {
	return h.transition(c, models.WithdrawalStatusCredited, "")
}

// DeclineWithdrawal declines a request with a reason and refunds the
// reserved amount. Admin only.
func (h *WithdrawalHandler) DeclineWithdrawal(c *fiber.Ctx) error {
	var input struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	v := validation.New()
	v.Required("reason", input.Reason)
	v.MaxLength("reason", input.Reason, validation.MaxReasonLength)
	if !v.Valid() {
		return utils.BadRequest(c, v.Error())
	}

	return h.transition(c, models.WithdrawalStatusDeclined, input.Reason)
}

func (h *WithdrawalHandler) transition(c *fiber.Ctx, target, reason string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	req, err := h.withdrawalService.Transition(c.Context(), id, target, reason)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"withdrawal": req,
	})
}
