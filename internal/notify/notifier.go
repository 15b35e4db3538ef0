package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	intconfig "travelbook/internal/config"
	"travelbook/internal/logger"
)

// Notifier delivers a message to one recipient. Implementations are
// best-effort collaborators: the reservation engine never lets a
// Notify error reach the caller.
type Notifier interface {
	Notify(to, subject, body string) error
}

// LogNotifier writes the notification to the log instead of sending
// mail. Default when no SMTP endpoint is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(to, subject, body string) error {
	logger.L().Infow("notification", "to", to, "subject", subject, "body", body)
	return nil
}

// SMTPNotifier sends plain-text mail through a relay that accepts
// unauthenticated submission (the usual in-cluster setup).
type SMTPNotifier struct {
	Addr string // host:port
	From string
}

func (n SMTPNotifier) Notify(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}
	msg := []byte("From: " + n.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")
	return smtp.SendMail(n.Addr, nil, n.From, []string{to}, msg)
}

// FromEnv picks the notifier implementation from configuration.
func FromEnv(env intconfig.Env) Notifier {
	if env.NotifyDriver == "smtp" && env.SMTPAddr != "" {
		return SMTPNotifier{Addr: env.SMTPAddr, From: env.SMTPFrom}
	}
	return LogNotifier{}
}
