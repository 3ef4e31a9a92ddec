package models

import (
	"time"

	"github.com/erp/ledger/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate.
// Lines are saved through the association so order and lines commit in one
// statement batch.
type SalesOrderModel struct {
	AggregateModel
	OrderNo      string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_no"`
	CustomerID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName string            `gorm:"type:varchar(200);not null"`
	TotalAmount  decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Status       trade.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Remark       string            `gorm:"type:text"`
	ApprovedAt   *time.Time
	ShippedAt    *time.Time
	CompletedAt  *time.Time
	Lines        []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// OrderLineModel is the persistence model for an order line.
type OrderLineModel struct {
	BaseModel
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int64           `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain SalesOrder
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	lines := make([]trade.OrderLine, len(m.Lines))
	for i, lm := range m.Lines {
		lines[i] = trade.OrderLine{
			BaseEntity:  lm.BaseModel.ToDomain(),
			OrderID:     lm.OrderID,
			ProductID:   lm.ProductID,
			ProductName: lm.ProductName,
			UnitPrice:   lm.UnitPrice,
			Quantity:    lm.Quantity,
			Subtotal:    lm.Subtotal,
		}
	}

	return &trade.SalesOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNo:           m.OrderNo,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		Remark:            m.Remark,
		ApprovedAt:        m.ApprovedAt,
		ShippedAt:         m.ShippedAt,
		CompletedAt:       m.CompletedAt,
		Lines:             lines,
	}
}

// FromDomain populates the persistence model from a domain SalesOrder
func (m *SalesOrderModel) FromDomain(o *trade.SalesOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNo = o.OrderNo
	m.CustomerID = o.CustomerID
	m.CustomerName = o.CustomerName
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.Remark = o.Remark
	m.ApprovedAt = o.ApprovedAt
	m.ShippedAt = o.ShippedAt
	m.CompletedAt = o.CompletedAt

	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i, line := range o.Lines {
		m.Lines[i] = OrderLineModel{
			OrderID:     line.OrderID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal,
		}
		m.Lines[i].FromDomainBaseEntity(line.BaseEntity)
	}
}
