package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"registration-backend/internal/config"
	"registration-backend/internal/domain"
	"registration-backend/internal/logger"
)

//go:embed templates/*.html
var templateFiles embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// mailSender abstracts the mail transport so SMTP and SendGrid share the
// same notification code.
type mailSender interface {
	Send(to, subject, htmlBody string) error
}

type mailData struct {
	EventName       string
	FullName        string
	ReferenceCode   string
	Institution     domain.Institution
	TransactionID   string
	StayDates       []string
	StayDatesJoined string
	StayDays        int
	TotalAmount     int
	Reason          string
}

type emailService struct {
	sender    mailSender
	eventName string
}

// NewEmailService builds the notification service over the configured
// transport.
func NewEmailService(cfg config.MailConfig, eventName string) (EmailService, error) {
	var sender mailSender
	switch cfg.Provider {
	case "sendgrid":
		sender = newSendGridSender(cfg)
	case "smtp", "":
		sender = newSMTPSender(cfg)
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
	return &emailService{sender: sender, eventName: eventName}, nil
}

func (s *emailService) data(reg *domain.Registration) mailData {
	return mailData{
		EventName:       s.eventName,
		FullName:        reg.FullName,
		ReferenceCode:   reg.ReferenceCode,
		Institution:     reg.Institution,
		TransactionID:   reg.TransactionID,
		StayDates:       reg.StayDates,
		StayDatesJoined: strings.Join(reg.StayDates, ", "),
		StayDays:        reg.StayDays,
		TotalAmount:     reg.TotalAmount,
		Reason:          reg.RejectionReason,
	}
}

func (s *emailService) send(ctx context.Context, reg *domain.Registration, templateName, subject string) error {
	data := s.data(reg)

	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to render %s email: %w", templateName, err)
	}

	logger.ExternalServiceCall("mail", templateName, "to", reg.Email)
	if err := s.sender.Send(reg.Email, subject, body.String()); err != nil {
		logger.ExternalServiceResult("mail", templateName, err)
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	logger.ExternalServiceResult("mail", templateName, nil)
	return nil
}

func (s *emailService) SendReceiptNotification(ctx context.Context, reg *domain.Registration) error {
	subject := fmt.Sprintf("%s - Registration Received (%s)", s.eventName, reg.ReferenceCode)
	return s.send(ctx, reg, "receipt.html", subject)
}

func (s *emailService) SendApprovalNotification(ctx context.Context, reg *domain.Registration) error {
	subject := fmt.Sprintf("%s - Registration Confirmed (%s)", s.eventName, reg.ReferenceCode)
	return s.send(ctx, reg, "approval.html", subject)
}

func (s *emailService) SendRejectionNotification(ctx context.Context, reg *domain.Registration) error {
	subject := fmt.Sprintf("%s - Registration Update (%s)", s.eventName, reg.ReferenceCode)
	return s.send(ctx, reg, "rejection.html", subject)
}
