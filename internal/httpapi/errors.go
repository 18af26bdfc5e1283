package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nutritrack/nutritrack/internal/auth"
)

// newErrorHandler maps structured errors onto the HTTP taxonomy. Unexpected
// errors are logged and surfaced as a generic 500 with no internal detail.
func newErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if goerrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			status := statusFor(richErr)
			if status >= fiber.StatusInternalServerError {
				logger.Error("request failed: %v", richErr)
				return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
			}

			body := fiber.Map{"error": richErr.Message}
			if richErr.Category == goerrors.CategoryValidation && len(richErr.Metadata) > 0 {
				body["details"] = richErr.Metadata
			}
			return c.Status(status).JSON(body)
		}

		logger.Error("unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func statusFor(err *goerrors.Error) int {
	if err.Code >= fiber.StatusBadRequest && err.Code < 600 {
		return err.Code
	}

	switch err.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return fiber.StatusBadRequest
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return fiber.StatusForbidden
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// validationError wraps an ozzo-validation failure, carrying the per-field
// messages as metadata.
func validationError(err error, msg string) error {
	richErr := goerrors.Wrap(err, goerrors.CategoryValidation, msg).
		WithCode(goerrors.CodeBadRequest)

	if verrs, ok := err.(validation.Errors); ok {
		fields := make(map[string]any, len(verrs))
		for name, ferr := range verrs {
			fields[name] = ferr.Error()
		}
		richErr = richErr.WithMetadata(fields)
	}

	return richErr
}

// badRequest is for unparseable bodies.
func badRequest(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
		WithCode(goerrors.CodeBadRequest)
}
