package utils

import (
	"fmt"

	"github.com/keighl/postmark"
	"github.com/sirupsen/logrus"
)

// EmailService sends transactional mail through Postmark. A nil service is
// valid and drops every send, so mail stays optional in development.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService builds an EmailService, or nil when no API token is
// configured.
func NewEmailService(apiToken, sender string) *EmailService {
	if apiToken == "" {
		logrus.Info("postmark token not set, order confirmation mail disabled")
		return nil
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic HTML email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmation mails the buyer after a successful charge.
func (es *EmailService) SendOrderConfirmation(toEmail, name, transactionID string, amount float64) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your payment of <strong>$%.2f</strong> was received (transaction %s) and your order is being processed.<br><br>Thank you for shopping with us!",
		name, amount, transactionID,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
