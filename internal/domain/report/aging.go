package report

import (
	"time"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgingAnalysis is a read model bucketing a customer's outstanding
// receivables by days since issuance: [0,15], (15,30], (30,60], (60,inf).
type AgingAnalysis struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	AsOf         time.Time       `json:"as_of"`
	Within15Days decimal.Decimal `json:"within_15_days"`
	Days16To30   decimal.Decimal `json:"days_16_to_30"`
	Days31To60   decimal.Decimal `json:"days_31_to_60"`
	Over60Days   decimal.Decimal `json:"over_60_days"`
	Total        decimal.Decimal `json:"total"`
}

// AnalyzeAging partitions the outstanding amount of every non-PAID
// receivable into age buckets. The total always equals the exact sum of the
// four buckets; decimal arithmetic leaves no rounding drift.
func AnalyzeAging(customerID uuid.UUID, customerName string, receivables []finance.Receivable, now time.Time) AgingAnalysis {
	analysis := AgingAnalysis{
		CustomerID:   customerID,
		CustomerName: customerName,
		AsOf:         now,
		Within15Days: decimal.Zero,
		Days16To30:   decimal.Zero,
		Days31To60:   decimal.Zero,
		Over60Days:   decimal.Zero,
		Total:        decimal.Zero,
	}

	for i := range receivables {
		r := &receivables[i]
		if r.IsPaid() {
			continue
		}
		outstanding := r.Outstanding()
		switch days := r.AgeInDays(now); {
		case days <= 15:
			analysis.Within15Days = analysis.Within15Days.Add(outstanding)
		case days <= 30:
			analysis.Days16To30 = analysis.Days16To30.Add(outstanding)
		case days <= 60:
			analysis.Days31To60 = analysis.Days31To60.Add(outstanding)
		default:
			analysis.Over60Days = analysis.Over60Days.Add(outstanding)
		}
		analysis.Total = analysis.Total.Add(outstanding)
	}

	return analysis
}
