package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers/message"
)

type Config struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" default:"587"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"required,email"`

	Messages domain.NotificationMessages `mapstructure:"-"`
}

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Notifier delivers notifications as plain text emails
type Notifier struct {
	config Config
	send   SendFunc
	logger log.Logger
}

func NewNotifier(config Config, send SendFunc, logger log.Logger) *Notifier {
	if send == nil {
		send = smtp.SendMail
	}
	return &Notifier{config: config, send: send, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, items []domain.Notification) []error {
	errs := make([]error, 0)
	for _, item := range items {
		labels := labelString(item.Labels)
		n.logger.Debug(ctx, "sending mail notification", "user", item.User, "type", item.Message.Type, "labels", labels)

		subject, body, err := message.Render(item.Message, n.config.Messages)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s | error parsing message: %w", labels, err))
			continue
		}

		if err := n.send(n.addr(), n.auth(), n.config.From, []string{item.User}, n.compose(item.User, subject, body)); err != nil {
			errs = append(errs, fmt.Errorf("%s | error sending mail to %s: %w", labels, item.User, err))
			continue
		}
	}
	return errs
}

func (n *Notifier) addr() string {
	return net.JoinHostPort(n.config.Host, strconv.Itoa(n.config.Port))
}

func (n *Notifier) auth() smtp.Auth {
	if n.config.Username == "" {
		return nil
	}
	return smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)
}

func (n *Notifier) compose(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func labelString(labels map[string]string) string {
	parts := make([]string, 0, len(labels))
	for k, v := range labels {
		parts = append(parts, k+"="+v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
