package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/goto/salt/audit"
)

const (
	EventParentDocument = "document"
	EventParentPolicy   = "policy"
)

// Event is an audit log entry seen from the document or policy it belongs to
type Event struct {
	ParentType string         `json:"parent_type"`
	ParentID   string         `json:"parent_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Type       string         `json:"type"`
	Actor      string         `json:"actor"`
	Data       map[string]any `json:"data"`
}

func (e *Event) FromAuditLog(l *audit.Log) error {
	parentType := strings.Split(l.Action, ".")[0]
	data, ok := l.Data.(map[string]any)
	if !ok {
		return fmt.Errorf("invalid data type %T", l.Data)
	}

	switch parentType {
	case EventParentDocument:
		model, _ := data["document_model"].(string)
		id, _ := data["document_id"].(string)
		if model == "" || id == "" {
			return fmt.Errorf("invalid parent_id for parent_type=%q", parentType)
		}
		e.ParentID = DocumentRef{Model: model, ID: id}.String()
	case EventParentPolicy:
		id, ok := data["policy_id"].(string)
		if !ok || id == "" {
			return fmt.Errorf("invalid parent_id=%q for parent_type=%q", id, parentType)
		}
		e.ParentID = id
	default:
		return fmt.Errorf("invalid parent type %q", parentType)
	}

	e.Data = data
	e.Timestamp = l.Timestamp
	e.Type = l.Action
	e.Actor = l.Actor
	e.ParentType = parentType
	return nil
}

type ListEventsFilter struct {
	Types    []string
	Document *DocumentRef
	PolicyID string
}

type ListAuditLogFilter struct {
	Actions       []string
	DocumentModel string
	DocumentID    string
	PolicyID      string
}
