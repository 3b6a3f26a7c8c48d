package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends transactional email through SendGrid.
type SendGridMailer struct {
	apiKey   string
	fromName string
	fromAddr string
}

// NewSendGridMailer constructs the mailer. The API key is checked at send
// time so local setups without SendGrid still boot.
func NewSendGridMailer(apiKey, fromName, fromAddr string) *SendGridMailer {
	return &SendGridMailer{apiKey: apiKey, fromName: fromName, fromAddr: fromAddr}
}

// SendOTPEmail mails the password-reset code to the user.
func (m *SendGridMailer) SendOTPEmail(ctx context.Context, email, code string) error {
	if m.apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail(email, email)
	message := mail.NewSingleEmail(from, "Password Reset OTP", to,
		fmt.Sprintf("Your OTP for password reset is: %s", code),
		fmt.Sprintf("<h1>Your OTP for password reset is: <strong>%s</strong></h1>", code))
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid API Error: Status Code %d, Body: %s", response.StatusCode, response.Body)
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}
	return nil
}
