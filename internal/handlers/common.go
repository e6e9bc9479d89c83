package handlers

import (
	"errors"
	"fmt"
	"strconv"

	apperrors "medipay/internal/errors"
	"medipay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// handleDomainError translates service errors into HTTP responses.
// Validation problems map to 400, missing resources to 404 and refused
// state transitions to 409; anything else is a 500 with a generic body.
func handleDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrMissingPayoutDetails):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		return utils.Conflict(c, err.Error())
	default:
		return utils.InternalError(c, "internal server error")
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
