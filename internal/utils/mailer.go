package utils

import (
	"fmt" // Error formatting

	"github.com/sendgrid/sendgrid-go"              // SendGrid client
	"github.com/sendgrid/sendgrid-go/helpers/mail" // SendGrid mail helpers
)

// SendgridMailer sends transactional mail through the SendGrid API
type SendgridMailer struct {
	APIKey string // SendGrid API key
	Sender string // From address
}

// Send delivers a plain-text email to a single recipient
func (m *SendgridMailer) Send(to, subject, body string) error {
	from := mail.NewEmail("Helpdesk", m.Sender)                  // From address
	recipient := mail.NewEmail("", to)                           // Recipient address
	message := mail.NewSingleEmail(from, subject, recipient, body, body) // Build the message
	client := sendgrid.NewSendClient(m.APIKey)                   // SendGrid client
	resp, err := client.Send(message)                            // Send the message
	if err != nil {
		return err // Return transport error
	}
	// SendGrid reports delivery problems through the status code
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
