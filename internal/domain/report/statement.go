package report

import (
	"sort"
	"time"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementEntryType distinguishes debit and credit statement lines
type StatementEntryType string

const (
	StatementEntrySale    StatementEntryType = "SALE"    // receivable issued, debit
	StatementEntryPayment StatementEntryType = "PAYMENT" // payment recorded, credit
)

// StatementLine is one ledger event inside the statement period with the
// running balance after the event.
type StatementLine struct {
	OccurredAt time.Time          `json:"occurred_at"`
	Type       StatementEntryType `json:"type"`
	DocumentNo string             `json:"document_no"`
	Debit      decimal.Decimal    `json:"debit"`
	Credit     decimal.Decimal    `json:"credit"`
	Balance    decimal.Decimal    `json:"balance"`
}

// AccountStatement is a month-scoped running-balance statement computed
// from the full receivable and payment history of one customer. The opening
// balance uses a net-ledger approach: everything invoiced before the period
// minus everything collected before the period.
type AccountStatement struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	PeriodSales    decimal.Decimal `json:"period_sales"`
	PeriodPayments decimal.Decimal `json:"period_payments"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Lines          []StatementLine `json:"lines"`
}

// statementEvent is an internal merge record before sorting
type statementEvent struct {
	occurredAt time.Time
	entryType  StatementEntryType
	documentNo string
	amount     decimal.Decimal
}

// BuildStatement computes the statement for one calendar month. orderNos
// maps receivable OrderIDs to their order numbers for the document column.
// Same-period events are ordered by creation timestamp; exact timestamp
// ties put sales before payments and then order by document number, so the
// result is deterministic for identical inputs.
func BuildStatement(
	customerID uuid.UUID,
	customerName string,
	year, month int,
	receivables []finance.Receivable,
	orderNos map[uuid.UUID]string,
	payments []finance.Payment,
) (*AccountStatement, error) {
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Month must be between 1 and 12")
	}
	if year < 1970 {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Year is out of range")
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	nextPeriod := periodStart.AddDate(0, 1, 0)

	stmt := &AccountStatement{
		CustomerID:     customerID,
		CustomerName:   customerName,
		Year:           year,
		Month:          month,
		PeriodStart:    periodStart,
		PeriodEnd:      nextPeriod.Add(-time.Second),
		OpeningBalance: decimal.Zero,
		PeriodSales:    decimal.Zero,
		PeriodPayments: decimal.Zero,
		Lines:          []StatementLine{},
	}

	var events []statementEvent

	for i := range receivables {
		r := &receivables[i]
		if r.CreatedAt.Before(periodStart) {
			stmt.OpeningBalance = stmt.OpeningBalance.Add(r.Amount)
			continue
		}
		if r.CreatedAt.Before(nextPeriod) {
			events = append(events, statementEvent{
				occurredAt: r.CreatedAt,
				entryType:  StatementEntrySale,
				documentNo: orderNos[r.OrderID],
				amount:     r.Amount,
			})
		}
	}

	for i := range payments {
		p := &payments[i]
		if p.CreatedAt.Before(periodStart) {
			stmt.OpeningBalance = stmt.OpeningBalance.Sub(p.Amount)
			continue
		}
		if p.CreatedAt.Before(nextPeriod) {
			events = append(events, statementEvent{
				occurredAt: p.CreatedAt,
				entryType:  StatementEntryPayment,
				documentNo: p.PaymentNo,
				amount:     p.Amount,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].occurredAt.Equal(events[j].occurredAt) {
			return events[i].occurredAt.Before(events[j].occurredAt)
		}
		if events[i].entryType != events[j].entryType {
			return events[i].entryType == StatementEntrySale
		}
		return events[i].documentNo < events[j].documentNo
	})

	running := stmt.OpeningBalance
	for _, ev := range events {
		line := StatementLine{
			OccurredAt: ev.occurredAt,
			Type:       ev.entryType,
			DocumentNo: ev.documentNo,
			Debit:      decimal.Zero,
			Credit:     decimal.Zero,
		}
		if ev.entryType == StatementEntrySale {
			running = running.Add(ev.amount)
			stmt.PeriodSales = stmt.PeriodSales.Add(ev.amount)
			line.Debit = ev.amount
		} else {
			running = running.Sub(ev.amount)
			stmt.PeriodPayments = stmt.PeriodPayments.Add(ev.amount)
			line.Credit = ev.amount
		}
		line.Balance = running
		stmt.Lines = append(stmt.Lines, line)
	}

	stmt.ClosingBalance = stmt.OpeningBalance.Add(stmt.PeriodSales).Sub(stmt.PeriodPayments)
	return stmt, nil
}
