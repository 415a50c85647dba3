package payroll_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kashiee/HRMS/internal/payroll"
	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
	"github.com/kashiee/HRMS/internal/shared/apperror"
	"github.com/kashiee/HRMS/internal/taxyear"
)

func TestRunBatch_MixedOutcomes(t *testing.T) {
	cfg := testConfig(t, "2024-25")
	period := monthlyPeriod(t)

	first := salariedEmployee("36000")
	first.EmployeeID = "emp-001"
	second := salariedEmployee("45000")
	second.EmployeeID = "emp-002"
	badCode := salariedEmployee("30000")
	badCode.EmployeeID = "emp-003"
	badCode.TaxCode = "ZZZ"
	noID := salariedEmployee("30000")
	noID.EmployeeID = ""

	inputs := []payroll.EmployeePayInputs{first, second, badCode, noID}
	summary, err := payroll.RunBatch(context.Background(), cfg, period, inputs, 4)

	assert.NoError(t, err)
	assert.Equal(t, "2024-25", summary.TaxYear)
	assert.Equal(t, 4, summary.Requested)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)

	// results come back in input order regardless of worker scheduling
	assert.Len(t, summary.Results, 4)
	assert.Equal(t, "emp-001", summary.Results[0].EmployeeID)
	assert.Equal(t, "emp-002", summary.Results[1].EmployeeID)
	assert.NotNil(t, summary.Results[0].Payslip)
	assert.NotNil(t, summary.Results[1].Payslip)

	assert.Nil(t, summary.Results[2].Payslip)
	assert.True(t, apperror.HasCode(summary.Results[2].Err, apperror.CodeValidationError))
	assert.True(t, errors.Is(summary.Results[3].Err, payrollerrors.ErrMissingEmployeeID))
}

func TestRunBatch_TotalsSumSuccessfulPayslips(t *testing.T) {
	cfg := testConfig(t, "2024-25")
	period := monthlyPeriod(t)

	first := salariedEmployee("36000")
	first.EmployeeID = "emp-001"
	second := salariedEmployee("45000")
	second.EmployeeID = "emp-002"
	failing := salariedEmployee("30000")
	failing.EmployeeID = "emp-003"
	failing.TaxCode = "ZZZ"

	inputs := []payroll.EmployeePayInputs{first, second, failing}
	summary, err := payroll.RunBatch(context.Background(), cfg, period, inputs, 2)

	assert.NoError(t, err)
	assert.Equal(t, "6750.00", summary.Totals.GrossPay.StringFixed(2))
	assert.Equal(t, "931.00", summary.Totals.IncomeTax.StringFixed(2))
	assert.Equal(t, "558.60", summary.Totals.EmployeeNI.StringFixed(2))
	assert.Equal(t, "722.20", summary.Totals.EmployerNI.StringFixed(2))
	assert.Equal(t, "5260.40", summary.Totals.NetPay.StringFixed(2))
	assert.Equal(t, "7472.20", summary.Totals.EmployerTotalCost.StringFixed(2))

	deductions := summary.Totals.IncomeTax.
		Add(summary.Totals.EmployeeNI).
		Add(summary.Totals.EmployeePension).
		Add(summary.Totals.StudentLoan)
	assert.True(t, summary.Totals.NetPay.Equal(summary.Totals.GrossPay.Sub(deductions)))
}

func TestRunBatch_InvalidConfig(t *testing.T) {
	period := monthlyPeriod(t)
	broken := &taxyear.Config{Year: "2099-00"}

	summary, err := payroll.RunBatch(context.Background(), broken, period, []payroll.EmployeePayInputs{salariedEmployee("36000")}, 2)

	assert.Nil(t, summary)
	assert.True(t, apperror.HasCode(err, apperror.CodeConfigError))
}

func TestRunBatch_CancelledContext(t *testing.T) {
	cfg := testConfig(t, "2024-25")
	period := monthlyPeriod(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := make([]payroll.EmployeePayInputs, 20)
	for i := range inputs {
		inputs[i] = salariedEmployee("36000")
	}

	summary, err := payroll.RunBatch(ctx, cfg, period, inputs, 2)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, summary)
	assert.Equal(t, 20, summary.Requested)
	assert.Empty(t, summary.Results)
	assert.Equal(t, 0, summary.Succeeded)
}

func TestRunBatch_DefaultsWorkerCount(t *testing.T) {
	cfg := testConfig(t, "2024-25")
	period := monthlyPeriod(t)

	summary, err := payroll.RunBatch(context.Background(), cfg, period, []payroll.EmployeePayInputs{salariedEmployee("36000")}, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
}
