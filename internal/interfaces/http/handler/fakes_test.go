package handler

import (
	"context"
	"sort"
	"time"

	"github.com/erp/ledger/internal/domain/catalog"
	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/partner"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory fakes backing the handler tests. They enforce the same
// uniqueness rules as the real repositories so the services behave
// identically.

type fakeCustomerRepository struct {
	customers map[uuid.UUID]*partner.Customer
}

func newFakeCustomerRepository() *fakeCustomerRepository {
	return &fakeCustomerRepository{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (f *fakeCustomerRepository) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	if c, ok := f.customers[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeCustomerRepository) FindByCode(_ context.Context, code string) (*partner.Customer, error) {
	for _, c := range f.customers {
		if c.Code == code {
			copied := *c
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepository) Save(_ context.Context, customer *partner.Customer) error {
	copied := *customer
	f.customers[customer.ID] = &copied
	return nil
}

func (f *fakeCustomerRepository) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	c, ok := f.customers[id]
	if !ok {
		return shared.ErrNotFound
	}
	c.Balance = balance
	return nil
}

type fakeProductRepository struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (f *fakeProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := f.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepository) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepository) Save(_ context.Context, product *catalog.Product) error {
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepository) DecrementStock(_ context.Context, id uuid.UUID, qty int64) (int64, error) {
	p, ok := f.products[id]
	if !ok || p.Stock < qty {
		return 0, nil
	}
	p.Stock -= qty
	return 1, nil
}

func (f *fakeProductRepository) IncrementStock(_ context.Context, id uuid.UUID, qty int64) error {
	p, ok := f.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Stock += qty
	return nil
}

type fakeSalesOrderRepository struct {
	orders map[uuid.UUID]*trade.SalesOrder
}

func newFakeSalesOrderRepository() *fakeSalesOrderRepository {
	return &fakeSalesOrderRepository{orders: make(map[uuid.UUID]*trade.SalesOrder)}
}

func (f *fakeSalesOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	if o, ok := f.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSalesOrderRepository) FindByOrderNo(_ context.Context, orderNo string) (*trade.SalesOrder, error) {
	for _, o := range f.orders {
		if o.OrderNo == orderNo {
			copied := *o
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSalesOrderRepository) FindByCustomer(_ context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	var result []trade.SalesOrder
	for _, o := range f.orders {
		if o.CustomerID != customerID {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && o.Status != status.(trade.OrderStatus) {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeSalesOrderRepository) Save(_ context.Context, order *trade.SalesOrder) error {
	for _, existing := range f.orders {
		if existing.OrderNo == order.OrderNo && existing.ID != order.ID {
			return shared.ErrAlreadyExists
		}
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeSalesOrderRepository) CountByStatus(_ context.Context, status trade.OrderStatus) (int64, error) {
	var count int64
	for _, o := range f.orders {
		if o.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeReceivableRepository struct {
	receivables map[uuid.UUID]*finance.Receivable
}

func newFakeReceivableRepository() *fakeReceivableRepository {
	return &fakeReceivableRepository{receivables: make(map[uuid.UUID]*finance.Receivable)}
}

func (f *fakeReceivableRepository) FindByID(_ context.Context, id uuid.UUID) (*finance.Receivable, error) {
	if r, ok := f.receivables[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeReceivableRepository) FindByOrderID(_ context.Context, orderID uuid.UUID) (*finance.Receivable, error) {
	for _, r := range f.receivables {
		if r.OrderID == orderID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeReceivableRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]finance.Receivable, error) {
	var result []finance.Receivable
	for _, r := range f.receivables {
		if r.CustomerID == customerID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeReceivableRepository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.Receivable, error) {
	all, _ := f.FindByCustomer(ctx, customerID)
	var result []finance.Receivable
	for _, r := range all {
		if !r.IsPaid() {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReceivableRepository) Save(_ context.Context, receivable *finance.Receivable) error {
	for _, existing := range f.receivables {
		if existing.OrderID == receivable.OrderID && existing.ID != receivable.ID {
			return shared.ErrAlreadyExists
		}
	}
	copied := *receivable
	f.receivables[receivable.ID] = &copied
	return nil
}

func (f *fakeReceivableRepository) SumOutstandingByCustomer(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range f.receivables {
		if r.CustomerID == customerID && !r.IsPaid() {
			total = total.Add(r.Outstanding())
		}
	}
	return total, nil
}

type fakePaymentRepository struct {
	payments map[uuid.UUID]*finance.Payment
}

func newFakePaymentRepository() *fakePaymentRepository {
	return &fakePaymentRepository{payments: make(map[uuid.UUID]*finance.Payment)}
}

func (f *fakePaymentRepository) FindByID(_ context.Context, id uuid.UUID) (*finance.Payment, error) {
	if p, ok := f.payments[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakePaymentRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]finance.Payment, error) {
	var result []finance.Payment
	for _, p := range f.payments {
		if p.CustomerID == customerID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakePaymentRepository) FindByCustomerCreatedBefore(ctx context.Context, customerID uuid.UUID, before time.Time) ([]finance.Payment, error) {
	all, _ := f.FindByCustomer(ctx, customerID)
	var result []finance.Payment
	for _, p := range all {
		if p.CreatedAt.Before(before) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakePaymentRepository) Save(_ context.Context, payment *finance.Payment) error {
	for _, existing := range f.payments {
		if existing.PaymentNo == payment.PaymentNo && existing.ID != payment.ID {
			return shared.ErrAlreadyExists
		}
	}
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakePaymentRepository) SumAllocatedByReceivable(_ context.Context, receivableID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.payments {
		total = total.Add(p.AllocatedTo(receivableID))
	}
	return total, nil
}
