package models

import (
	"github.com/erp/ledger/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer aggregate.
type CustomerModel struct {
	AggregateModel
	Code        string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_code"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	ContactName string                 `gorm:"type:varchar(100)"`
	Phone       string                 `gorm:"type:varchar(50)"`
	Level       partner.CustomerLevel  `gorm:"type:varchar(20);not null;default:'NORMAL'"`
	Status      partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreditLimit decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Balance     decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		ContactName:       m.ContactName,
		Phone:             m.Phone,
		Level:             m.Level,
		Status:            m.Status,
		CreditLimit:       m.CreditLimit,
		Balance:           m.Balance,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Level = c.Level
	m.Status = c.Status
	m.CreditLimit = c.CreditLimit
	m.Balance = c.Balance
}
