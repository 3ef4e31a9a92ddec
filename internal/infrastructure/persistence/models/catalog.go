package models

import (
	"github.com/erp/ledger/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate.
// Stock carries a CHECK-style guard through the conditional decrement in
// the repository rather than a database constraint alone.
type ProductModel struct {
	AggregateModel
	Code             string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_code"`
	Name             string                `gorm:"type:varchar(200);not null"`
	NormalPrice      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	VIPPrice         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Stock            int64                 `gorm:"not null;default:0"`
	ReorderThreshold int64                 `gorm:"not null;default:0"`
	Status           catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'ON_SALE'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		NormalPrice:       m.NormalPrice,
		VIPPrice:          m.VIPPrice,
		Stock:             m.Stock,
		ReorderThreshold:  m.ReorderThreshold,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.NormalPrice = p.NormalPrice
	m.VIPPrice = p.VIPPrice
	m.Stock = p.Stock
	m.ReorderThreshold = p.ReorderThreshold
	m.Status = p.Status
}
