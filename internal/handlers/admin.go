package handlers

import (
	"medipay/internal/repositories"
	"medipay/internal/utils"
	"medipay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	doctorRepo   repositories.DoctorRepository
	settingsRepo repositories.SettingsRepository
}

func NewAdminHandler(doctorRepo repositories.DoctorRepository, settingsRepo repositories.SettingsRepository) *AdminHandler {
	return &AdminHandler{
		doctorRepo:   doctorRepo,
		settingsRepo: settingsRepo,
	}
}

// GetPayouts lists doctors holding a positive balance, largest first.
func (h *AdminHandler) GetPayouts(c *fiber.Ctx) error {
	payouts, err := h.doctorRepo.ListPayable(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to list payouts")
	}

	return utils.Success(c, fiber.Map{
		"payouts": payouts,
	})
}

// GetSettings returns the commission rates currently in force.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsRepo.Get(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to load settings")
	}

	return utils.Success(c, fiber.Map{
		"settings": settings,
	})
}

// UpdateSettings changes the commission rates. Existing consultations
// keep the rates they were created under.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var input struct {
		StandardCommission  string `json:"standard_commission" validate:"required"`
		EmergencyCommission string `json:"emergency_commission" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	standard, err := decimal.NewFromString(input.StandardCommission)
	if err != nil {
		return utils.BadRequest(c, "standard_commission must be a decimal number")
	}
	emergency, err := decimal.NewFromString(input.EmergencyCommission)
	if err != nil {
		return utils.BadRequest(c, "emergency_commission must be a decimal number")
	}

	v := validation.New()
	v.CommissionRate("standard_commission", standard)
	v.CommissionRate("emergency_commission", emergency)
	if !v.Valid() {
		return utils.BadRequest(c, v.Error())
	}

	settings, err := h.settingsRepo.Get(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to load settings")
	}

	settings.StandardCommission = standard
	settings.EmergencyCommission = emergency
	if err := h.settingsRepo.Update(c.Context(), settings); err != nil {
		return utils.InternalError(c, "failed to update settings")
	}

	return utils.Success(c, fiber.Map{
		"settings": settings,
	})
}

// GetDoctor returns a doctor's profile including payout details, for
// review alongside the payouts view. Admin only.
func (h *AdminHandler) GetDoctor(c *fiber.Ctx) error {
	doctorID, err := parseIDParam(c, "doctorID")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	doctor, err := h.doctorRepo.GetByID(c.Context(), doctorID)
	if err != nil {
		return utils.NotFound(c, "doctor not found")
	}

	return utils.Success(c, fiber.Map{
		"doctor": doctor,
	})
}
