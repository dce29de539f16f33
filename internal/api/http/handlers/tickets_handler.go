package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/Night40050/support-copilot/internal/api/dto"
	"github.com/Night40050/support-copilot/internal/service"
	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

const processedMessage = "Ticket processed successfully."

// TicketsHandler exposes the ticket processing endpoint.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ProcessTicket POST /process-ticket.
func (h *TicketsHandler) ProcessTicket(c *fiber.Ctx) error {
	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return apperrors.NewInvalidBody(err)
	}
	// a literal null decodes into a nil map without error
	if payload == nil {
		return apperrors.NewInvalidBody(nil)
	}

	result, err := h.service.ProcessTicket(c.UserContext(), payload)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(processedMessage, result))
}
