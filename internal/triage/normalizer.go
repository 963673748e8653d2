package triage

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/capability"
	"github.com/spec-kit/ticket-triage/internal/domain"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

// Normalizer detects the ticket language and translates the working text to
// the canonical working language when needed. Capability failures propagate;
// retries, if any, belong to the transport adapter.
type Normalizer struct {
	language        capability.LanguageService
	workingLanguage string
	logger          *zap.Logger
}

// NewNormalizer constructs the normalizer.
func NewNormalizer(language capability.LanguageService, workingLanguage string, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		language:        language,
		workingLanguage: workingLanguage,
		logger:          logger,
	}
}

// Normalize produces the immutable normalized view of a ticket.
func (n *Normalizer) Normalize(ctx context.Context, ticket domain.Ticket) (domain.NormalizedTicket, error) {
	description := ticket.Description()

	lang, err := n.language.DetectLanguage(ctx, description)
	if err != nil {
		return domain.NormalizedTicket{}, apperrors.NewCapabilityError("language detection", err)
	}
	n.logger.Info("detected language",
		zap.String("ticket_id", ticket.ID),
		zap.String("language", lang))

	working := description
	if lang != n.workingLanguage {
		n.logger.Info("translating ticket",
			zap.String("ticket_id", ticket.ID),
			zap.String("from", lang),
			zap.String("to", n.workingLanguage))
		working, err = n.language.Translate(ctx, description, lang, n.workingLanguage)
		if err != nil {
			return domain.NormalizedTicket{}, apperrors.NewCapabilityError("translation", err)
		}
	}

	return domain.NormalizedTicket{
		SourceLanguage: lang,
		WorkingText:    working,
	}, nil
}
