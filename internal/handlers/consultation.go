package handlers

import (
	"errors"

	"medipay/internal/services/consultation"
	"medipay/internal/utils"
	"medipay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ConsultationHandler struct {
	consultationService consultation.Service
}

func NewConsultationHandler(consultationService consultation.Service) *ConsultationHandler {
	return &ConsultationHandler{
		consultationService: consultationService,
	}
}

type consultationInput struct {
	DoctorID  uint   `json:"doctor_id" validate:"required"`
	PatientID uint   `json:"patient_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Fee       string `json:"fee" validate:"required"`
}

// parseInput decodes and validates the request body. The returned
// error is a caller-facing message suitable for a 400 response.
func (h *ConsultationHandler) parseInput(c *fiber.Ctx) (*consultationInput, decimal.Decimal, error) {
	var input consultationInput
	if err := c.BodyParser(&input); err != nil {
		return nil, decimal.Zero, errors.New("invalid request format")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, decimal.Zero, err
	}

	fee, err := decimal.NewFromString(input.Fee)
	if err != nil {
		return nil, decimal.Zero, errors.New("fee must be a decimal number")
	}

	v := validation.New()
	v.ConsultationFee("fee", fee)
	if !v.Valid() {
		return nil, decimal.Zero, errors.New(v.Error())
	}

	return &input, fee, nil
}

// CreateConsultation records a new consultation in ringing state with
// the fee split fixed at current commission rates. Admin only; call
// setup is driven by the signalling subsystem.
func (h *ConsultationHandler) CreateConsultation(c *fiber.Ctx) error {
	input, fee, err := h.parseInput(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	created, err := h.consultationService.Create(c.Context(), input.DoctorID, input.PatientID, input.Type, fee)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"consultation": created,
	})
}

// CompleteConsultation marks a consultation completed and credits the
// doctor's earning. Admin only.
func (h *ConsultationHandler) CompleteConsultation(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	completed, err := h.consultationService.Complete(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"consultation": completed,
	})
}

// RecordCompletedConsultation records an already-finished consultation
// and credits the earning in one call. Admin only.
func (h *ConsultationHandler) RecordCompletedConsultation(c *fiber.Ctx) error {
	input, fee, err := h.parseInput(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	recorded, err := h.consultationService.RecordCompleted(c.Context(), input.DoctorID, input.PatientID, input.Type, fee)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"consultation": recorded,
	})
}

// ListMyConsultations returns the calling doctor's consultations.
func (h *ConsultationHandler) ListMyConsultations(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	list, err := h.consultationService.ListByDoctor(c.Context(), claims.UserID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"consultations": list,
	})
}
