// Package whatsapp pushes text notifications to the boutique owner.
package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
	client "github.com/mamadbah2/boutique/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// MessagingService describes the outbound operations the rest of the app uses.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	client client.Client
	logger *zap.Logger
}

var _ MessagingService = (*MetaWhatsAppService)(nil)

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{client: client, logger: logger}
}

// SendOutbound delivers one text message.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	to := strings.TrimSpace(req.To)
	if to == "" || strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: recipient and message are required", models.ErrValidation)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	id, err := s.client.SendText(ctxWithTimeout, to, req.Message)
	if err != nil {
		s.logger.Error("failed to send whatsapp message", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("whatsapp message sent", zap.String("to", to), zap.String("message_id", id))
	return nil
}
