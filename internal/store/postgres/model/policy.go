package model

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/goto/signoff/domain"
)

type Policy struct {
	ID           string `gorm:"primaryKey"`
	Version      uint   `gorm:"primaryKey"`
	Model        string `gorm:"index"`
	Description  string
	Priority     int
	Currency     string
	Levels       datatypes.JSON
	BypassGroups pq.StringArray `gorm:"type:text[]"`
	Reminder     datatypes.JSON
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Policy) TableName() string {
	return "policies"
}

func (m *Policy) FromDomain(p *domain.Policy) error {
	levels, err := json.Marshal(p.Levels)
	if err != nil {
		return err
	}

	var reminder datatypes.JSON
	if p.Reminder != nil {
		reminder, err = json.Marshal(p.Reminder)
		if err != nil {
			return err
		}
	}

	m.ID = p.ID
	m.Version = p.Version
	m.Model = p.Model
	m.Description = p.Description
	m.Priority = p.Priority
	m.Currency = p.Currency
	m.Levels = levels
	m.BypassGroups = p.BypassGroups
	m.Reminder = reminder
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	return nil
}

func (m *Policy) ToDomain() (*domain.Policy, error) {
	var levels []*domain.Level
	if m.Levels != nil {
		if err := json.Unmarshal(m.Levels, &levels); err != nil {
			return nil, err
		}
	}

	var reminder *domain.ReminderConfig
	if len(m.Reminder) > 0 && string(m.Reminder) != "null" {
		reminder = new(domain.ReminderConfig)
		if err := json.Unmarshal(m.Reminder, reminder); err != nil {
			return nil, err
		}
	}

	var bypassGroups []string
	if len(m.BypassGroups) > 0 {
		bypassGroups = []string(m.BypassGroups)
	}

	return &domain.Policy{
		ID:           m.ID,
		Version:      m.Version,
		Model:        m.Model,
		Description:  m.Description,
		Priority:     m.Priority,
		Currency:     m.Currency,
		Levels:       levels,
		BypassGroups: bypassGroups,
		Reminder:     reminder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}
