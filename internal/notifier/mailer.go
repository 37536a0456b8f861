// Package notifier delivers analysis reports over SMTP.
package notifier

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"time"
)

// Mailer sends report emails through an authenticated SMTP relay.
type Mailer struct {
	Host       string
	Port       int
	Sender     string
	Password   string
	Recipients []string

	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a Mailer for the given SMTP account.
func NewMailer(host string, port int, sender, password string, recipients []string) *Mailer {
	return &Mailer{
		Host:       host,
		Port:       port,
		Sender:     sender,
		Password:   password,
		Recipients: recipients,
		send:       smtp.SendMail,
	}
}

// Send delivers one message to all configured recipients.
func (m *Mailer) Send(msg *Message) error {
	if len(m.Recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}
	msg.From = m.Sender
	msg.To = m.Recipients

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)

	if err := m.send(addr, auth, m.Sender, m.Recipients, msg.Bytes()); err != nil {
		return fmt.Errorf("smtp send via %s: %w", addr, err)
	}
	log.Printf("[INFO] email sent to %d recipients via %s", len(m.Recipients), addr)
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (m *Mailer) SendWithRetry(ctx context.Context, msg *Message, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := m.Send(msg); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] email send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// SendTest sends a short plain message to verify SMTP credentials.
func (m *Mailer) SendTest() error {
	msg := &Message{
		Subject: fmt.Sprintf("NSE Sentinel Test Email - %s", time.Now().Format("2006-01-02 15:04:05")),
		HTMLBody: "<html><body><h2>Email Configuration Test</h2>" +
			"<p>If you are reading this, the SMTP settings are working correctly.</p></body></html>",
	}
	return m.Send(msg)
}
