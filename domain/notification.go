package domain

const (
	NotificationTypeApproverNotification   = "ApproverNotification"
	NotificationTypeApprovalReminder       = "ApprovalReminder"
	NotificationTypeDocumentApproved       = "DocumentApproved"
	NotificationTypeDocumentRejected       = "DocumentRejected"
	NotificationTypePendingApprovalsDigest = "PendingApprovalsDigest"
	NotificationTypeNewComment             = "NewComment"
)

type NotificationMessage struct {
	Type string `json:"type"`
	// Template overrides the message key looked up by the notifier, defaults to Type
	Template  string                 `json:"template,omitempty"`
	Variables map[string]interface{} `json:"variables"`
}

func (m NotificationMessage) Key() string {
	if m.Template != "" {
		return m.Template
	}
	return m.Type
}

type Notification struct {
	User    string              `json:"user"`
	Labels  map[string]string   `json:"labels,omitempty"`
	Message NotificationMessage `json:"message"`
}

// MessageTemplate is a text/template pair rendered with the notification variables
type MessageTemplate struct {
	Subject string `mapstructure:"subject" json:"subject" yaml:"subject"`
	Body    string `mapstructure:"body" json:"body" yaml:"body"`
}

// NotificationMessages maps a message key to its template
type NotificationMessages map[string]MessageTemplate
