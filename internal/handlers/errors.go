package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/smartmatch/internal/repositories"
	"alfredoptarigan/smartmatch/internal/services"
)

var errFileTooLarge = errors.New("resume file too large")

func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingInput),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, errFileTooLarge):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrIngestion):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrModelUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, repositories.ErrMatchNotFound),
		errors.Is(err, services.ErrArtifactNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
