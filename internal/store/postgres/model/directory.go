package model

import (
	"time"

	"github.com/lib/pq"

	"github.com/goto/signoff/domain"
)

type Group struct {
	Name      string         `gorm:"primaryKey"`
	Members   pq.StringArray `gorm:"type:text[]"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Group) TableName() string {
	return "groups"
}

func (m *Group) FromDomain(g *domain.Group) {
	m.Name = g.Name
	m.Members = g.Members
}

func (m *Group) ToDomain() *domain.Group {
	return &domain.Group{Name: m.Name, Members: []string(m.Members)}
}

type RoleAssignment struct {
	Role      string         `gorm:"primaryKey"`
	Unit      string         `gorm:"primaryKey"`
	Users     pq.StringArray `gorm:"type:text[]"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}

func (m *RoleAssignment) FromDomain(a *domain.RoleAssignment) {
	m.Role = a.Role
	m.Unit = a.Unit
	m.Users = a.Users
}

func (m *RoleAssignment) ToDomain() *domain.RoleAssignment {
	return &domain.RoleAssignment{Role: m.Role, Unit: m.Unit, Users: []string(m.Users)}
}

type CurrencyRate struct {
	Currency      string    `gorm:"primaryKey"`
	EffectiveDate time.Time `gorm:"primaryKey"`
	Rate          float64
}

func (CurrencyRate) TableName() string {
	return "currency_rates"
}

func (m *CurrencyRate) FromDomain(r *domain.CurrencyRate) {
	m.Currency = r.Currency
	m.EffectiveDate = r.EffectiveDate
	m.Rate = r.Rate
}

func (m *CurrencyRate) ToDomain() *domain.CurrencyRate {
	return &domain.CurrencyRate{Currency: m.Currency, EffectiveDate: m.EffectiveDate, Rate: m.Rate}
}
