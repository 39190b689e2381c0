package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goto/signoff/domain"
)

type Comment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentModel string
	DocumentID    string
	CreatedBy     string
	Body          string
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}

func (m *Comment) FromDomain(c *domain.Comment) error {
	m.ID = uuid.New()
	if c.ID != "" {
		id, err := uuid.Parse(c.ID)
		if err != nil {
			return err
		}
		m.ID = id
	}

	m.DocumentModel = c.DocumentModel
	m.DocumentID = c.DocumentID
	m.CreatedBy = c.CreatedBy
	m.Body = c.Body
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
	return nil
}

func (m *Comment) ToDomain() *domain.Comment {
	return &domain.Comment{
		ID:            m.ID.String(),
		DocumentModel: m.DocumentModel,
		DocumentID:    m.DocumentID,
		CreatedBy:     m.CreatedBy,
		Body:          m.Body,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
