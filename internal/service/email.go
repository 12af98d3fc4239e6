package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
)

type sendGridEmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	return &sendGridEmailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridEmailService) SendOrderStatusUpdate(ctx context.Context, email, name string, order *domain.Order) error {
	subject := fmt.Sprintf("Your rental order is now %s", order.Status)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour order %s has moved to status %s.\nRental period: %s to %s.\nTotal: %s, paid so far: %s.\n\nThank you for renting with us.",
		name, order.ID, order.Status,
		order.StartDate.Format("Jan 2, 2006"), order.EndDate.Format("Jan 2, 2006"),
		formatCents(order.TotalAmountCents), formatCents(order.PaidAmountCents),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendPickupReminder(ctx context.Context, email, name, productName string, scheduled time.Time) error {
	subject := "Pickup reminder for your rental"
	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder that pickup for %s is scheduled on %s.\n\nSee you soon.",
		name, productName, scheduled.Format("Jan 2, 2006"),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendReturnReminder(ctx context.Context, email, name, productName string, scheduled time.Time) error {
	subject := "Return reminder for your rental"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour rental of %s is due for return on %s. Please plan the return to avoid late fees.\n\nThank you.",
		name, productName, scheduled.Format("Jan 2, 2006"),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendOverdueNotice(ctx context.Context, email, name, productName string, daysOverdue int, lateFeeCents int64) error {
	subject := "Your rental is overdue"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour rental of %s is overdue by %d day(s). A late fee of %s has accrued so far and will be added to your total on return.\n\nPlease return the equipment as soon as possible.",
		name, productName, daysOverdue, formatCents(lateFeeCents),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) send(ctx context.Context, toEmail, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d: %s", response.StatusCode, response.Body)
	}
	logger.Debug("Email sent", "to", toEmail, "subject", subject, "status", response.StatusCode)
	return nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
