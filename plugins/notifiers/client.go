package notifiers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goto/signoff/domain"
	signoffhttp "github.com/goto/signoff/pkg/http"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/pkg/opentelemetry/otelhttpclient"
	"github.com/goto/signoff/plugins/notifiers/lark"
	"github.com/goto/signoff/plugins/notifiers/mail"
	"github.com/goto/signoff/plugins/notifiers/message"
)

type Client interface {
	Notify(context.Context, []domain.Notification) []error
}

const (
	ProviderTypeSMTP = "smtp"
	ProviderTypeLark = "lark"
	ProviderTypeLog  = "log"
)

type Config struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=smtp lark log" default:"log"`

	SMTP mail.Config    `mapstructure:"smtp" validate:"required_if=Provider smtp"`
	Lark lark.Workspace `mapstructure:"lark" validate:"required_if=Provider lark"`

	// Messages overrides the embedded templates, keyed by notification type or policy reminder template
	Messages domain.NotificationMessages `mapstructure:"messages"`
}

func NewClient(config *Config, logger log.Logger) (Client, error) {
	switch config.Provider {
	case ProviderTypeSMTP:
		smtpConfig := config.SMTP
		smtpConfig.Messages = config.Messages
		return mail.NewNotifier(smtpConfig, nil, logger), nil
	case ProviderTypeLark:
		httpClient := otelhttpclient.New("lark", &http.Client{
			Timeout:   30 * time.Second,
			Transport: signoffhttp.NewRetryableTransport(http.DefaultTransport, 3),
		})
		return lark.NewNotifier(&lark.Config{Workspace: config.Lark, Messages: config.Messages}, httpClient, logger), nil
	case ProviderTypeLog, "":
		return &logNotifier{messages: config.Messages, logger: logger}, nil
	}

	return nil, errors.New("invalid notifier provider type")
}

// logNotifier writes rendered notifications to the logger, used for local setups
type logNotifier struct {
	messages domain.NotificationMessages
	logger   log.Logger
}

func (n *logNotifier) Notify(ctx context.Context, items []domain.Notification) []error {
	var errs []error
	for _, item := range items {
		subject, body, err := message.Render(item.Message, n.messages)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		n.logger.Info(ctx, "notification", "user", item.User, "type", item.Message.Type, "subject", subject, "body", body)
	}
	return errs
}
