// Package mail delivers the onboarding welcome email over SMTP with
// implicit TLS. The Sender interface decouples the auth service from the
// transport; [NopSender] is used when mail is disabled.
package mail

import (
	"context"
	"crypto/tls"
	_ "embed"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/models"
)

//go:embed welcome_email.html
var welcomeTemplate string

// Sender delivers application email. Implementations report an error when
// the message could not be handed to the mail server.
type Sender interface {
	SendWelcome(ctx context.Context, user models.User, plainPassword string) error
}

// SMTPSender sends mail through an SMTP endpoint with implicit TLS
// (SMTPS, typically port 465), authenticating with the sender address.
type SMTPSender struct {
	host     string
	port     int
	sender   string
	password string
	logger   *logger.Logger
}

// NewSender returns the Sender matching cfg: an [SMTPSender] when mail is
// enabled, a [NopSender] otherwise.
func NewSender(cfg config.Mail, log *logger.Logger) Sender {
	if !cfg.Enabled {
		return NopSender{}
	}

	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		sender:   cfg.Sender,
		password: cfg.Password,
		logger:   log,
	}
}

// SendWelcome renders the embedded welcome template with the user's email,
// id and plaintext password and delivers it to the user's address.
func (s *SMTPSender) SendWelcome(ctx context.Context, user models.User, plainPassword string) error {
	log := logger.FromContext(ctx)

	subject := fmt.Sprintf("Welcome to PlateUp - %s", user.Name)
	body := fmt.Sprintf(welcomeTemplate, user.Email, user.ID, plainPassword)

	message := "From: " + s.sender + "\r\n" +
		"To: " + user.Email + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + body

	if err := s.send(ctx, user.Email, []byte(message)); err != nil {
		log.Err(err).Str("func", "*SMTPSender.SendWelcome").Str("to", user.Email).Msg("welcome email send failed")
		return err
	}

	return nil
}

// send dials the SMTPS endpoint, authenticates, and submits the message.
func (s *SMTPSender) send(ctx context.Context, to string, message []byte) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))

	dialer := &tls.Dialer{NetDialer: &net.Dialer{}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.sender, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(s.sender); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		writer.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp close message: %w", err)
	}

	return client.Quit()
}

// NopSender is the disabled-mail implementation; every send succeeds
// without touching the network.
type NopSender struct{}

func (NopSender) SendWelcome(ctx context.Context, user models.User, plainPassword string) error {
	return nil
}
