package accounts

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"resumecraft/internal/shared/telemetry"
)

// Mailer delivers one-time passcodes.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// LogMailer writes codes to the log. Dev only.
type LogMailer struct{}

func (LogMailer) SendOTP(_ context.Context, to, code string) error {
	telemetry.Info("accounts.otp", map[string]any{"email": to, "otp": code})
	return nil
}

// SMTPMailer sends codes through an SMTP relay using PLAIN auth when a
// username is configured.
type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string
	From string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer constructs an SMTPMailer.
func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, From: from, send: smtp.SendMail}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	envelopeFrom := m.From
	if start := strings.LastIndex(envelopeFrom, "<"); start >= 0 {
		envelopeFrom = strings.TrimSuffix(envelopeFrom[start+1:], ">")
	}
	send := m.send
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(addr, auth, envelopeFrom, []string{to}, otpMessage(m.From, to, code)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func otpMessage(from, to, code string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Your Registration OTP\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	fmt.Fprintf(&b, "<p>Your OTP for ResumeCraft is: <strong>%s</strong></p>\r\n", code)
	return []byte(b.String())
}
