package http

import (
	"context"
	"errors"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/api/dto"
	"github.com/Night40050/support-copilot/internal/observability"
	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

// Envelope messages per error code.
var envelopeMessages = map[string]string{
	apperrors.CodeInvalidBody:     "Request body must be a JSON object.",
	apperrors.CodeInputValidation: "Invalid input.",
	apperrors.CodeEmptyInput:      "Failed to classify the ticket.",
	apperrors.CodeLLMInvocation:   "Failed to classify the ticket.",
	apperrors.CodeMalformedOutput: "Failed to classify the ticket.",
	apperrors.CodeSchemaViolation: "Failed to classify the ticket.",
	apperrors.CodeStoreConnection: "Failed to update the ticket.",
	apperrors.CodeRecordNotFound:  "Failed to update the ticket.",
	apperrors.CodeUnauthorized:    "Unauthorized.",
	apperrors.CodeForbidden:       "Forbidden.",
	apperrors.CodeInternal:        "Failed to process the ticket.",
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, verbose bool) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, verbose))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, verbose bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				status, envelope, code := renderError(err, verbose)
				metrics.RecordError(c.Route().Path, c.Method(), code)
				if status >= fiber.StatusInternalServerError {
					logger.Error("request failed", zap.String("code", code), zap.Error(err))
				} else {
					logger.Warn("request rejected", zap.String("code", code), zap.Error(err))
				}
				c.Status(status)
				_ = c.JSON(envelope)
				err = nil
			}
		}()
		return c.Next()
	}
}

// renderError maps an error to its status code and envelope. Cause text is
// only exposed when verbose is set.
func renderError(err error, verbose bool) (int, dto.Envelope, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.Failure(fe.Message, []string{fe.Message}), "HTTP_" + strconv.Itoa(fe.Code)
	}

	de := apperrors.ToDomainError(err)
	message, ok := envelopeMessages[de.Code]
	if !ok {
		message = envelopeMessages[apperrors.CodeInternal]
	}

	var details []string
	switch {
	case len(de.Details) > 0:
		details = append(details, de.Details...)
		if verbose && de.Err != nil {
			details = append(details, de.Err.Error())
		}
	case verbose:
		details = []string{de.Error()}
	default:
		details = []string{de.Message}
	}
	return de.HTTPStatus, dto.Failure(message, details), de.Code
}
