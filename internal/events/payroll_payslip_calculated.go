package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const PayrollPayslipCalculatedTopic = "hr.payroll.payslip.calculated.v1"

// PayrollPayslipCalculatedEvent is emitted once per successful
// employee in a batch run. Downstream payment and reporting systems
// key on employee_id; amounts are final rounded values in pounds.
type PayrollPayslipCalculatedEvent struct {
	EventType         string          `json:"event_type"`
	BatchID           string          `json:"batch_id"`
	EmployeeID        string          `json:"employee_id"`
	TaxYear           string          `json:"tax_year"`
	PeriodStart       string          `json:"period_start"`
	PeriodEnd         string          `json:"period_end"`
	PayDate           string          `json:"pay_date"`
	GrossPay          decimal.Decimal `json:"gross_pay"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	EmployeeNI        decimal.Decimal `json:"employee_ni"`
	EmployerNI        decimal.Decimal `json:"employer_ni"`
	EmployeePension   decimal.Decimal `json:"employee_pension"`
	EmployerPension   decimal.Decimal `json:"employer_pension"`
	StudentLoan       decimal.Decimal `json:"student_loan"`
	NetPay            decimal.Decimal `json:"net_pay"`
	EmployerTotalCost decimal.Decimal `json:"employer_total_cost"`
	OccurredAt        time.Time       `json:"occurred_at"`
}
