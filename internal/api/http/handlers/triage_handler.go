package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/ticket-triage/internal/api/dto"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/triage"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

// TriageHandler exposes the classification pipeline over HTTP.
type TriageHandler struct {
	pipeline *triage.Pipeline
}

// NewTriageHandler constructs handler.
func NewTriageHandler(pipeline *triage.Pipeline) *TriageHandler {
	return &TriageHandler{pipeline: pipeline}
}

// Triage POST /tickets/triage.
func (h *TriageHandler) Triage(c *fiber.Ctx) error {
	var req dto.TriageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.TicketSubject) == "" || strings.TrimSpace(req.TicketBody) == "" {
		return apperrors.NewValidationError("ticketSubject and ticketBody required", nil)
	}

	ticket := domain.Ticket{
		ID:              req.TicketID,
		Subject:         req.TicketSubject,
		Body:            req.TicketBody,
		CustomerContact: req.CustomerEmail,
	}
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}

	record := h.pipeline.Process(c.UserContext(), ticket)
	switch record.Status {
	case domain.ResultSuccess:
		return c.JSON(dto.TriageSuccessResponse{
			Status:        string(record.Status),
			TicketID:      record.TicketID,
			CustomerEmail: record.CustomerEmail,
			Category:      string(record.Topic),
			Confidence:    record.Confidence,
			Language:      record.Language,
			AgentUsed:     record.AgentUsed,
			Reply:         record.Reply,
			Escalated:     record.Escalated,
		})
	case domain.ResultFallback:
		return c.JSON(dto.TriageFallbackResponse{
			Status:         string(record.Status),
			Message:        record.Message,
			Classification: string(record.Topic),
			Confidence:     record.Confidence,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.TriageErrorResponse{
			Error: record.ErrorMessage,
		})
	}
}
