package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

const invalidBody = "Invalid request body format"

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrDuplicateName),
		errors.Is(err, models.ErrDuplicatePhone),
		errors.Is(err, models.ErrReferentialConflict),
		errors.Is(err, models.ErrInvalidStatusTransition):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrMissingMandatoryComplement):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidQuantityOrPrice),
		errors.Is(err, models.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(ctx *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	var missing *models.MissingMandatoryComplementError
	if errors.As(err, &missing) {
		body["item_id"] = missing.ItemID
		body["complement"] = missing.Complement
		body["complement_name"] = missing.Name
	}
	return ctx.Status(statusFor(err)).JSON(body)
}

func badRequest(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// paramID parses a positive numeric route parameter.
func paramID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, models.InvalidInputf("invalid %s", name)
	}
	return uint(id), nil
}
