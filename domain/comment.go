package domain

import "time"

// Comment is a note posted on a document, also used to store rejection reasons
type Comment struct {
	ID            string    `json:"id" yaml:"id"`
	DocumentModel string    `json:"document_model" yaml:"document_model"`
	DocumentID    string    `json:"document_id" yaml:"document_id"`
	CreatedBy     string    `json:"created_by" yaml:"created_by"`
	Body          string    `json:"body" yaml:"body"`
	CreatedAt     time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

type ListCommentsFilter struct {
	DocumentModel string
	DocumentID    string
	OrderBy       []string
}
