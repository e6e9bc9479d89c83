package handlers

import (
	"medipay/internal/services/wallet"
	"medipay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetWallet returns the calling doctor's wallet.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

// GetBalance returns the calling doctor's balance after reconciling it
// against the ledger.
func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.walletService.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"balance": balance,
	})
}

// GetDoctorWallet returns any doctor's wallet. Admin only.
func (h *WalletHandler) GetDoctorWallet(c *fiber.Ctx) error {
	doctorID, err := parseIDParam(c, "doctorID")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	w, err := h.walletService.GetWallet(c.Context(), doctorID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

// ReconcileWallet recomputes a doctor's balance from the ledger and
// reports whether a repair happened. Admin only.
func (h *WalletHandler) ReconcileWallet(c *fiber.Ctx) error {
	doctorID, err := parseIDParam(c, "doctorID")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	balance, err := h.walletService.Reconcile(c.Context(), doctorID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"doctor_id": doctorID,
		"balance":   balance,
	})
}
