package http

import "github.com/gofiber/fiber/v2"

const (
	MessageOK                  = "OK"
	MessageCreated             = "Created"
	MessageBadRequest          = "Bad request"
	MessageNotFound            = "Not found"
	MessageUnprocessableEntity = "Validation failed"
	MessageBadGateway          = "Save failed"
	MessageInternalServerError = "Internal server error"
	MessageServiceUnavailable  = "Service unavailable"
	MessageError               = "Error"
)

// SemanticResponse is the envelope of every JSON response.
type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

func Error(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}
