package lark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers/message"
)

const (
	defaultHost = "https://open.larksuite.com"
)

type tokenResponse struct {
	Msg    string `json:"msg"`
	Token  string `json:"tenant_access_token"`
	Code   int    `json:"code"`
	Expire int    `json:"expire"`
}

type tokenRequest struct {
	AppID     string `json:"app_id"`
	AppSecret string `json:"app_secret"`
}

type Workspace struct {
	Name         string `mapstructure:"workspace" validate:"required"`
	ClientID     string `mapstructure:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`
	// Host overrides the Lark open platform host
	Host string `mapstructure:"host"`
}

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Config struct {
	Workspace Workspace
	Messages  domain.NotificationMessages
}

// Notifier sends notifications as Lark text messages addressed by email
type Notifier struct {
	workspace  Workspace
	messages   domain.NotificationMessages
	httpClient HTTPClient
	logger     log.Logger
}

func NewNotifier(config *Config, httpClient HTTPClient, logger log.Logger) *Notifier {
	if config.Workspace.Host == "" {
		config.Workspace.Host = defaultHost
	}
	return &Notifier{
		workspace:  config.Workspace,
		messages:   config.Messages,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, items []domain.Notification) []error {
	errs := make([]error, 0)
	if len(items) == 0 {
		return errs
	}

	token, err := n.tenantAccessToken(ctx)
	if err != nil {
		return append(errs, err)
	}

	for _, item := range items {
		n.logger.Debug(ctx, "sending lark notification", "user", item.User, "type", item.Message.Type)
		subject, body, err := message.Render(item.Message, n.messages)
		if err != nil {
			errs = append(errs, fmt.Errorf("error parsing message for %s: %w", item.User, err))
			continue
		}
		if err := n.sendMessage(ctx, token, item.User, subject+"\n\n"+body); err != nil {
			errs = append(errs, fmt.Errorf("error sending message to user:%s in workspace:%s | %w", item.User, n.workspace.Name, err))
		}
	}
	return errs
}

func (n *Notifier) sendMessage(ctx context.Context, token, email, text string) error {
	content, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]string{
		"receive_id": email,
		"msg_type":   "text",
		"content":    string(content),
	})
	if err != nil {
		return err
	}

	url := n.workspace.Host + "/open-apis/im/v1/messages?receive_id_type=email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", "Bearer "+token)
	req.Header.Add("Content-Type", "application/json")
	_, err = n.sendRequest(req)
	return err
}

func (n *Notifier) tenantAccessToken(ctx context.Context) (string, error) {
	data, err := json.Marshal(tokenRequest{AppID: n.workspace.ClientID, AppSecret: n.workspace.ClientSecret})
	if err != nil {
		return "", err
	}
	url := n.workspace.Host + "/open-apis/auth/v3/tenant_access_token/internal/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	result, err := n.sendRequest(req)
	if err != nil {
		return "", fmt.Errorf("error get tenant access token for workspace: %s - %w", n.workspace.Name, err)
	}
	return result.Token, nil
}

func (n *Notifier) sendRequest(req *http.Request) (*tokenResponse, error) {
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Code != 0 || (result.Msg != "" && result.Msg != "ok" && result.Msg != "success") {
		return &result, errors.New(result.Msg)
	}
	return &result, nil
}
