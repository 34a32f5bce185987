package api

import (
	"errors"
	"koronvoice/app/util/errcode"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/oops"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorHandler renders every handler error as {"error": "..."}. Validation
// failures become 400, everything else 500.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error

	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else if oopsErr, ok := oops.AsOops(err); ok {
		switch oopsErr.Code() {
		case errcode.Validation:
			status = fiber.StatusBadRequest
			message = oopsErr.Public()
			if message == "" {
				message = oopsErr.Error()
			}
		case errcode.Provider:
			message = oopsErr.Error()
		}
	}

	if status >= fiber.StatusInternalServerError {
		slog.Error("Request failed",
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err,
		)
	}

	return c.Status(status).JSON(errorResponse{Error: message})
}
