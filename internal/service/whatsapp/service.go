package whatsapp

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/config"
	"github.com/mamadbah2/homy/internal/domain/models"
	client "github.com/mamadbah2/homy/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// ErrNoRecipient is returned when a message has nowhere to go.
var ErrNoRecipient = errors.New("whatsapp recipient not configured")

// Notifier pushes text messages to the household chat.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	NotifyHousehold(ctx context.Context, message string) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// NotifyHousehold sends message to the configured household number.
func (s *MetaWhatsAppService) NotifyHousehold(ctx context.Context, message string) error {
	return s.SendOutbound(ctx, models.OutboundMessageRequest{
		To:      s.cfg.HouseholdID,
		Message: message,
	})
}

// SendOutbound delivers a single text message.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if req.To == "" {
		return ErrNoRecipient
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.String("to", req.To)}
	if resp != nil && len(resp.Messages) > 0 {
		fields = append(fields, zap.String("message_id", resp.Messages[0].ID), zap.Int("parts", len(resp.Messages)))
	}
	s.logger.Info("whatsapp message sent", fields...)
	return nil
}
