package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Email sends alert mail over SMTP with STARTTLS and plain auth.
type Email struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string

	// sendMail is swappable for tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmail(host string, port int, user, password, to string) *Email {
	if host == "" || user == "" || password == "" || to == "" {
		return nil
	}
	return &Email{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		To:       to,
		sendMail: smtp.SendMail,
	}
}

func (e *Email) Send(ctx context.Context, title, text string) error {
	if e == nil {
		return errors.New("email disabled")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	to := strings.Split(e.To, ",")
	for i := range to {
		to[i] = strings.TrimSpace(to[i])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.User)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", title)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(text)

	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	auth := smtp.PlainAuth("", e.User, e.Password, e.Host)
	send := e.sendMail
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(addr, auth, e.User, to, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
