package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/goto/signoff/domain"
)

type ApprovalRequest struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentModel    string
	DocumentID       string
	PolicyID         string
	PolicyVersion    uint
	LevelName        string
	Sequence         int
	Status           string
	ApproverGroup    string
	RequestedBy      string
	ApprovedBy       string
	ApproveDate      *time.Time
	RejectedBy       string
	RejectDate       *time.Time
	Reason           string
	Attachments      datatypes.JSON
	LastReminderDate *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`

	Approvers []*Approver `gorm:"foreignKey:RequestID;references:ID"`
}

func (ApprovalRequest) TableName() string {
	return "approval_requests"
}

func (m *ApprovalRequest) FromDomain(r *domain.ApprovalRequest) error {
	id := uuid.New()
	if r.ID != "" {
		parsed, err := uuid.Parse(r.ID)
		if err != nil {
			return err
		}
		id = parsed
	}

	var attachments datatypes.JSON
	if len(r.Attachments) > 0 {
		b, err := json.Marshal(r.Attachments)
		if err != nil {
			return err
		}
		attachments = b
	}

	approvers := make([]*Approver, 0, len(r.Approvers))
	for _, email := range r.Approvers {
		approvers = append(approvers, &Approver{RequestID: id, Email: email})
	}

	m.ID = id
	m.DocumentModel = r.DocumentModel
	m.DocumentID = r.DocumentID
	m.PolicyID = r.PolicyID
	m.PolicyVersion = r.PolicyVersion
	m.LevelName = r.LevelName
	m.Sequence = r.Sequence
	m.Status = r.Status
	m.ApproverGroup = r.Group
	m.RequestedBy = r.RequestedBy
	m.ApprovedBy = r.ApprovedBy
	m.ApproveDate = r.ApproveDate
	m.RejectedBy = r.RejectedBy
	m.RejectDate = r.RejectDate
	m.Reason = r.Reason
	m.Attachments = attachments
	m.LastReminderDate = r.LastReminderDate
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	m.Approvers = approvers
	return nil
}

func (m *ApprovalRequest) ToDomain() (*domain.ApprovalRequest, error) {
	var attachments []domain.Attachment
	if len(m.Attachments) > 0 && string(m.Attachments) != "null" {
		if err := json.Unmarshal(m.Attachments, &attachments); err != nil {
			return nil, err
		}
	}

	var approvers []string
	for _, a := range m.Approvers {
		approvers = append(approvers, a.Email)
	}

	return &domain.ApprovalRequest{
		ID:               m.ID.String(),
		DocumentModel:    m.DocumentModel,
		DocumentID:       m.DocumentID,
		PolicyID:         m.PolicyID,
		PolicyVersion:    m.PolicyVersion,
		LevelName:        m.LevelName,
		Sequence:         m.Sequence,
		Status:           m.Status,
		Approvers:        approvers,
		Group:            m.ApproverGroup,
		RequestedBy:      m.RequestedBy,
		ApprovedBy:       m.ApprovedBy,
		ApproveDate:      m.ApproveDate,
		RejectedBy:       m.RejectedBy,
		RejectDate:       m.RejectDate,
		Reason:           m.Reason,
		Attachments:      attachments,
		LastReminderDate: m.LastReminderDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

// Approver is one row of approval_request_approvers
type Approver struct {
	RequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"primaryKey"`
}

func (Approver) TableName() string {
	return "approval_request_approvers"
}
