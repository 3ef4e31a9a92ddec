package catalog

import (
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the sale status of a product
type ProductStatus string

const (
	ProductStatusOnSale   ProductStatus = "ON_SALE"
	ProductStatusOffShelf ProductStatus = "OFF_SHELF"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusOnSale || s == ProductStatusOffShelf
}

// Product represents a sellable product aggregate root.
// Stock mutations go through the repository's conditional decrement so
// concurrent reservations cannot oversell; the aggregate only carries the
// last loaded snapshot.
type Product struct {
	shared.BaseAggregateRoot
	Code             string
	Name             string
	NormalPrice      decimal.Decimal
	VIPPrice         decimal.Decimal
	Stock            int64
	ReorderThreshold int64
	Status           ProductStatus
}

// NewProduct creates a new on-sale product
func NewProduct(code, name string, normalPrice, vipPrice decimal.Decimal, stock, reorderThreshold int64) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !normalPrice.IsPositive() || !vipPrice.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Product prices must be positive")
	}
	if stock < 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Product stock cannot be negative")
	}
	if reorderThreshold < 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Reorder threshold cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		NormalPrice:       normalPrice,
		VIPPrice:          vipPrice,
		Stock:             stock,
		ReorderThreshold:  reorderThreshold,
		Status:            ProductStatusOnSale,
	}, nil
}

// PriceFor resolves the unit price for the given pricing tier
func (p *Product) PriceFor(vip bool) valueobject.Money {
	if vip {
		return valueobject.NewMoneyCNY(p.VIPPrice)
	}
	return valueobject.NewMoneyCNY(p.NormalPrice)
}

// SetPrices updates the tier prices
func (p *Product) SetPrices(normalPrice, vipPrice decimal.Decimal) error {
	if !normalPrice.IsPositive() || !vipPrice.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Product prices must be positive")
	}
	p.NormalPrice = normalPrice
	p.VIPPrice = vipPrice
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsOnSale returns true if the product can be ordered
func (p *Product) IsOnSale() bool {
	return p.Status == ProductStatusOnSale
}

// TakeOffShelf removes the product from sale
func (p *Product) TakeOffShelf() {
	p.Status = ProductStatusOffShelf
	p.Touch()
	p.IncrementVersion()
}

// PutOnSale makes the product orderable again
func (p *Product) PutOnSale() {
	p.Status = ProductStatusOnSale
	p.Touch()
	p.IncrementVersion()
}

// IsBelowReorderThreshold returns true if stock has fallen to or below the
// reorder threshold
func (p *Product) IsBelowReorderThreshold() bool {
	return p.Stock <= p.ReorderThreshold
}
