package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const PayrollBatchCompletedTopic = "hr.payroll.batch.completed.v1"

// PayrollBatchCompletedEvent closes a batch run with its headline
// totals so finance dashboards do not need to sum payslip events.
type PayrollBatchCompletedEvent struct {
	EventType         string          `json:"event_type"`
	BatchID           string          `json:"batch_id"`
	TaxYear           string          `json:"tax_year"`
	PeriodStart       string          `json:"period_start"`
	PeriodEnd         string          `json:"period_end"`
	Requested         int             `json:"requested"`
	Succeeded         int             `json:"succeeded"`
	Failed            int             `json:"failed"`
	TotalGross        decimal.Decimal `json:"total_gross"`
	TotalIncomeTax    decimal.Decimal `json:"total_income_tax"`
	TotalEmployeeNI   decimal.Decimal `json:"total_employee_ni"`
	TotalEmployerNI   decimal.Decimal `json:"total_employer_ni"`
	TotalNet          decimal.Decimal `json:"total_net"`
	TotalEmployerCost decimal.Decimal `json:"total_employer_cost"`
	OccurredAt        time.Time       `json:"occurred_at"`
}
