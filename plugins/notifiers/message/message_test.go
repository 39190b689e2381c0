package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/plugins/notifiers/message"
)

func TestRender(t *testing.T) {
	vars := map[string]interface{}{
		"document_model": "purchase.order",
		"document_id":    "PO-1",
		"rejected_by":    "dir@example.com",
		"level_name":     "director",
		"reason":         "over budget",
	}

	t.Run("should use embedded default", func(t *testing.T) {
		subject, body, err := message.Render(domain.NotificationMessage{Type: domain.NotificationTypeDocumentRejected, Variables: vars}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "purchase.order PO-1 rejected", subject)
		assert.Contains(t, body, "Reason: over budget")
	})

	t.Run("should prefer custom template keyed by template name", func(t *testing.T) {
		custom := domain.NotificationMessages{
			"po_reminder": {Subject: "PO {{.document_id}}", Body: "nudge"},
		}
		subject, body, err := message.Render(domain.NotificationMessage{
			Type:      domain.NotificationTypeApprovalReminder,
			Template:  "po_reminder",
			Variables: vars,
		}, custom)

		assert.NoError(t, err)
		assert.Equal(t, "PO PO-1", subject)
		assert.Equal(t, "nudge", body)
	})

	t.Run("should fall back to type default when template key is unknown", func(t *testing.T) {
		subject, _, err := message.Render(domain.NotificationMessage{
			Type:      domain.NotificationTypeApprovalReminder,
			Template:  "unknown",
			Variables: vars,
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "Reminder: purchase.order PO-1 is waiting for you", subject)
	})

	t.Run("should fail without any template", func(t *testing.T) {
		_, _, err := message.Render(domain.NotificationMessage{Type: "Unknown"}, nil)
		assert.Error(t, err)
	})
}
