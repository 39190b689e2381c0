package model

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/goto/signoff/domain"
)

type Document struct {
	Model          string `gorm:"primaryKey"`
	ID             string `gorm:"primaryKey"`
	Name           string
	State          string
	Amount         float64
	Currency       string
	LineCount      int
	Unit           string
	ApplyUnitRoles bool
	FinalizedState string
	RequireLines   bool
	RequireAmount  bool
	Exempt         pq.StringArray `gorm:"type:text[]"`
	Fields         datatypes.JSON
	CreatedBy      string
	RequestedBy    string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}

func (m *Document) FromDomain(r *domain.Record) error {
	var fields datatypes.JSON
	if r.Fields != nil {
		b, err := json.Marshal(r.Fields)
		if err != nil {
			return err
		}
		fields = b
	}

	m.Model = r.Model
	m.ID = r.ID
	m.Name = r.Name
	m.State = string(r.State)
	m.Amount = r.Amount
	m.Currency = r.Currency
	m.LineCount = r.LineCount
	m.Unit = r.Unit
	m.ApplyUnitRoles = r.ApplyUnitRoles
	m.FinalizedState = string(r.FinalizedState)
	m.RequireLines = r.RequireLines
	m.RequireAmount = r.RequireAmount
	m.Exempt = r.Exempt
	m.Fields = fields
	m.CreatedBy = r.CreatedBy
	m.RequestedBy = r.RequestedBy
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	return nil
}

func (m *Document) ToDomain() (*domain.Record, error) {
	var fields map[string]interface{}
	if len(m.Fields) > 0 && string(m.Fields) != "null" {
		if err := json.Unmarshal(m.Fields, &fields); err != nil {
			return nil, err
		}
	}

	var exempt []string
	if len(m.Exempt) > 0 {
		exempt = []string(m.Exempt)
	}

	return &domain.Record{
		Model:          m.Model,
		ID:             m.ID,
		Name:           m.Name,
		State:          domain.DocumentState(m.State),
		Amount:         m.Amount,
		Currency:       m.Currency,
		LineCount:      m.LineCount,
		Unit:           m.Unit,
		ApplyUnitRoles: m.ApplyUnitRoles,
		FinalizedState: domain.DocumentState(m.FinalizedState),
		RequireLines:   m.RequireLines,
		RequireAmount:  m.RequireAmount,
		Exempt:         exempt,
		Fields:         fields,
		CreatedBy:      m.CreatedBy,
		RequestedBy:    m.RequestedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}
