package report

import "time"

// PendingApprovalsReport is one pending request seen from one of its approvers
type PendingApprovalsReport struct {
	RequestID     string    `json:"request_id" yaml:"request_id"`
	Approver      string    `json:"approver" yaml:"approver"`
	DocumentModel string    `json:"document_model" yaml:"document_model"`
	DocumentID    string    `json:"document_id" yaml:"document_id"`
	LevelName     string    `json:"level_name" yaml:"level_name"`
	RequestedBy   string    `json:"requested_by" yaml:"requested_by"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

type PendingApprovalsReportFilter struct {
	RequestStatuses []string `mapstructure:"request_statuses" validate:"omitempty,min=1"`
	DocumentModels  []string `mapstructure:"document_models" validate:"omitempty,min=1"`
	Approvers       []string `mapstructure:"approvers" validate:"omitempty,min=1"`
}
