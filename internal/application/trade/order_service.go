package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/trade"
	"github.com/google/uuid"
)

// OrderService handles the order-to-cash order workflow
type OrderService struct {
	scope     TransactionScope
	orderRepo trade.SalesOrderRepository
}

// NewOrderService creates a new OrderService. The scope carries every
// repository the creation transaction needs; orderRepo serves the
// single-aggregate reads and status transitions.
func NewOrderService(scope TransactionScope, orderRepo trade.SalesOrderRepository) *OrderService {
	return &OrderService{
		scope:     scope,
		orderRepo: orderRepo,
	}
}

// Create creates a sales order atomically with its stock reservation and
// its receivable. The whole unit runs inside one transaction: the customer
// row is locked, the outstanding balance is re-read under that lock for the
// credit check, each line takes a conditional stock decrement, and the
// order, receivable and balance projection are written together. Any error
// rolls everything back.
//
// Order number conflicts under the unique constraint retry the whole
// transaction with a fresh candidate, bounded by shared.MaxNumberAttempts.
func (s *OrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Order must have at least one line")
	}

	var created *trade.SalesOrder
	var lastErr error

	for attempt := 0; attempt < shared.MaxNumberAttempts; attempt++ {
		orderNo := shared.NewDocumentNo("ORD", time.Now())

		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			order, err := s.createInTx(ctx, repos, orderNo, req)
			if err != nil {
				return err
			}
			created = order
			return nil
		})
		if lastErr == nil {
			response := ToSalesOrderResponse(created)
			return &response, nil
		}
		if !errors.Is(lastErr, shared.ErrAlreadyExists) {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("order number generation exhausted retries: %w", lastErr)
}

func (s *OrderService) createInTx(ctx context.Context, repos TransactionalRepositories, orderNo string, req CreateSalesOrderRequest) (*trade.SalesOrder, error) {
	customer, err := repos.Customers().FindByIDForUpdate(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Customer %s is inactive and cannot place orders", customer.Code))
	}

	order, err := trade.NewSalesOrder(orderNo, customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	vip := customer.PriceTierIsVIP()
	for _, input := range req.Lines {
		product, err := repos.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsOnSale() {
			return nil, shared.NewDomainError(shared.CodeInvalidStateTransition,
				fmt.Sprintf("Product %s is not on sale", product.Code))
		}
		if _, err := order.AddLine(product.ID, product.Name, product.PriceFor(vip), input.Quantity); err != nil {
			return nil, err
		}
	}

	// The outstanding sum is read inside the transaction, after the
	// customer row lock, so concurrent orders for the same customer
	// serialize on the credit check.
	outstanding, err := repos.Receivables().SumOutstandingByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if err := customer.CheckCredit(outstanding, order.TotalAmount); err != nil {
		return nil, err
	}

	for _, line := range order.Lines {
		affected, err := repos.Products().DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, shared.NewDomainError(shared.CodeInsufficientStock,
				fmt.Sprintf("Insufficient stock for product %s: requested %d", line.ProductName, line.Quantity))
		}
	}

	if err := repos.Orders().Save(ctx, order); err != nil {
		return nil, err
	}

	receivable, err := finance.NewReceivable(order.ID, customer.ID, order.GetTotalAmountMoney())
	if err != nil {
		return nil, err
	}
	if err := repos.Receivables().Save(ctx, receivable); err != nil {
		return nil, err
	}

	newOutstanding := outstanding.Add(order.TotalAmount)
	if err := repos.Customers().UpdateBalance(ctx, customer.ID, newOutstanding); err != nil {
		return nil, err
	}

	return order, nil
}

// Approve moves an order from PENDING to APPROVED
func (s *OrderService) Approve(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, orderID, (*trade.SalesOrder).Approve)
}

// Ship moves an order from APPROVED to SHIPPED
func (s *OrderService) Ship(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, orderID, (*trade.SalesOrder).Ship)
}

// Complete moves an order from SHIPPED to COMPLETED
func (s *OrderService) Complete(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, orderID, (*trade.SalesOrder).Complete)
}

func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, step func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := step(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order with its lines
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByOrderNo retrieves a sales order by its order number
func (s *OrderService) GetByOrderNo(ctx context.Context, orderNo string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// ListByCustomer retrieves a customer's sales orders, newest first
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter SalesOrderListFilter) ([]SalesOrderResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToSalesOrderResponses(orders), nil
}
