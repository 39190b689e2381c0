package mail_test

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers/mail"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func TestNotify(t *testing.T) {
	var sent []sentMail
	send := func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if to[0] == "broken@example.com" {
			return errors.New("mailbox unavailable")
		}
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	n := mail.NewNotifier(mail.Config{Host: "smtp.example.com", Port: 2525, From: "signoff@example.com"}, send, log.NewNoop())

	notification := func(user string) domain.Notification {
		return domain.Notification{
			User: user,
			Message: domain.NotificationMessage{
				Type: domain.NotificationTypeDocumentApproved,
				Variables: map[string]interface{}{
					"document_model": "purchase.order",
					"document_id":    "PO-1",
					"state":          "purchase",
				},
			},
		}
	}

	errs := n.Notify(context.Background(), []domain.Notification{
		notification("ana@example.com"),
		notification("broken@example.com"),
		{User: "bo@example.com", Message: domain.NotificationMessage{Type: "Unknown"}},
	})

	assert.Len(t, errs, 2)
	assert.Len(t, sent, 1)
	assert.Equal(t, "smtp.example.com:2525", sent[0].addr)
	assert.Equal(t, "signoff@example.com", sent[0].from)
	assert.Equal(t, []string{"ana@example.com"}, sent[0].to)
	assert.Contains(t, sent[0].msg, "Subject: purchase.order PO-1 approved\r\n")
	assert.Contains(t, sent[0].msg, "The document is now purchase.")
}
