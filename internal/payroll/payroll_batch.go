package payroll

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/kashiee/HRMS/internal/shared/apperror"
	"github.com/kashiee/HRMS/internal/taxyear"
)

// DefaultBatchWorkers bounds batch concurrency when the caller does
// not choose a pool size.
const DefaultBatchWorkers = 8

// EmployeeResult is one employee's outcome inside a batch: a payslip
// or the error that excluded them.
type EmployeeResult struct {
	EmployeeID string
	Payslip    *PayslipResult
	Err        error
}

// BatchTotals aggregates the rounded payslip components across every
// successful employee in a run.
type BatchTotals struct {
	GrossPay          decimal.Decimal
	IncomeTax         decimal.Decimal
	EmployeeNI        decimal.Decimal
	EmployerNI        decimal.Decimal
	EmployeePension   decimal.Decimal
	EmployerPension   decimal.Decimal
	StudentLoan       decimal.Decimal
	NetPay            decimal.Decimal
	EmployerTotalCost decimal.Decimal
}

func (t BatchTotals) add(p PayslipResult) BatchTotals {
	t.GrossPay = t.GrossPay.Add(p.GrossPay)
	t.IncomeTax = t.IncomeTax.Add(p.IncomeTax)
	t.EmployeeNI = t.EmployeeNI.Add(p.EmployeeNI)
	t.EmployerNI = t.EmployerNI.Add(p.EmployerNI)
	t.EmployeePension = t.EmployeePension.Add(p.EmployeePension)
	t.EmployerPension = t.EmployerPension.Add(p.EmployerPension)
	t.StudentLoan = t.StudentLoan.Add(p.StudentLoan)
	t.NetPay = t.NetPay.Add(p.NetPay)
	t.EmployerTotalCost = t.EmployerTotalCost.Add(p.EmployerTotalCost)
	return t
}

// BatchSummary is the outcome of one payroll run. Results preserves
// the input order of every employee that was processed.
type BatchSummary struct {
	TaxYear   string
	Period    PayPeriod
	Requested int
	Succeeded int
	Failed    int
	Totals    BatchTotals
	Results   []EmployeeResult
}

// RunBatch calculates every employee's payslip over a bounded worker
// pool. One employee's validation or calculation failure never stops
// the others; it is recorded in the summary instead. A broken rate
// table aborts the whole run because it would poison every payslip
// the same way. When ctx is cancelled, employees not yet dispatched
// are skipped, in-flight calculations finish, and the partial summary
// is returned with the context error.
func RunBatch(ctx context.Context, cfg *taxyear.Config, period PayPeriod, inputs []EmployeePayInputs, workers int) (*BatchSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = DefaultBatchWorkers
	}
	results := make([]*EmployeeResult, len(inputs))

	g := new(errgroup.Group)
	g.SetLimit(workers)
dispatch:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break dispatch
		default:
		}
		i, in := i, inputs[i]
		g.Go(func() error {
			payslip, err := CalculatePayslip(cfg, period, in)
			if err != nil {
				// Only the documented per-employee kinds are recordable;
				// anything else stops the run.
				if apperror.HasCode(err, apperror.CodeValidationError) || apperror.HasCode(err, apperror.CodeCalculationError) {
					results[i] = &EmployeeResult{EmployeeID: in.EmployeeID, Err: err}
					return nil
				}
				return err
			}
			results[i] = &EmployeeResult{EmployeeID: in.EmployeeID, Payslip: &payslip}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &BatchSummary{
		TaxYear:   cfg.Year,
		Period:    period,
		Requested: len(inputs),
		Results:   make([]EmployeeResult, 0, len(inputs)),
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		summary.Results = append(summary.Results, *r)
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Totals = summary.Totals.add(*r.Payslip)
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
