package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/armaan-yadav/apna-resume/internal/model"
	"github.com/armaan-yadav/apna-resume/internal/usecase"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

func badRequest(message string, cause error) *AppError {
	return NewAppError(fiber.StatusBadRequest, message, nil, cause)
}

// NewErrorHandler returns the app-wide error handler. It writes every error
// as a SemanticResponse.
func NewErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg, data := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", "method", c.Method(), "path", c.Path(), "status", status, "error", err)
		}
		return Error(c, status, msg, data)
	}
}

type validationData struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Reason  string `json:"reason"`
}

// mapUsecaseError turns domain errors into AppErrors.
func mapUsecaseError(err error) error {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return NewAppError(fiber.StatusUnprocessableEntity, verr.Error(), validationData{
			Section: string(verr.Section), Index: verr.Index, Field: verr.Field, Reason: verr.Reason,
		}, err)
	}
	var serr *usecase.SaveError
	if errors.As(err, &serr) {
		return NewAppError(fiber.StatusBadGateway, serr.Detail, fiber.Map{"section": serr.Section, "detail": serr.Detail}, err)
	}
	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrIndexOutOfRange),
		errors.Is(err, usecase.ErrUnknownTemplate),
		errors.Is(err, usecase.ErrInvalidColor),
		errors.Is(err, usecase.ErrUnknownPlatform),
		errors.Is(err, usecase.ErrNotCategory),
		errors.Is(err, usecase.ErrBlankSkill),
		errors.Is(err, model.ErrFieldKind),
		errors.Is(err, model.ErrInvalidSectionOrder),
		errors.Is(err, model.ErrUnknownField):
		return NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}
	return err
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return fiber.StatusInternalServerError, MessageInternalServerError, nil
		}

		status := appErr.StatusCode
		msg := appErr.Message
		if msg == "" {
			msg = defaultMessageForStatus(status)
		}

		// Gateway failures carry a user-facing detail; other 5xx are opaque.
		if status >= 500 && status != fiber.StatusBadGateway && status != fiber.StatusServiceUnavailable {
			return fiber.StatusInternalServerError, MessageInternalServerError, nil
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			return fiber.StatusInternalServerError, MessageInternalServerError, nil
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = defaultMessageForStatus(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, MessageInternalServerError, nil
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusBadGateway:
		return MessageBadGateway
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
