package payroll_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kashiee/HRMS/internal/events"
	"github.com/kashiee/HRMS/internal/payroll"
	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
	"github.com/kashiee/HRMS/internal/shared/apperror"
	"github.com/kashiee/HRMS/internal/taxyear"
)

type publishedEvent struct {
	topic     string
	key       string
	eventType string
	payload   any
}

type fakePublisher struct {
	published []publishedEvent
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, topic, key, eventType string, payload any) error {
	f.published = append(f.published, publishedEvent{topic: topic, key: key, eventType: eventType, payload: payload})
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

func newTestService(pub *fakePublisher) payroll.Service {
	return payroll.NewService(taxyear.NewRegistry(), pub, 2)
}

func calculateRequest() payroll.CalculatePayslipRequest {
	return payroll.CalculatePayslipRequest{
		TaxYear: "2024-25",
		Period: payroll.PayPeriodRequest{
			Start:          "2024-05-01",
			End:            "2024-05-31",
			PayDate:        "2024-05-28",
			PeriodsPerYear: 12,
		},
		Employee: payroll.EmployeePayRequest{
			EmployeeID:   "emp-001",
			FullName:     "Jane Doe",
			NINumber:     "QQ123456C",
			TaxCode:      "1257L",
			NICategory:   "A",
			AnnualSalary: d("35000"),
			Pension: &payroll.PensionRequest{
				SchemeID: "auto_enrolment",
			},
			StudentLoanPlan: "plan_2",
		},
	}
}

func TestServiceCalculate(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(pub)

	got, err := svc.Calculate(context.Background(), calculateRequest())

	assert.NoError(t, err)
	assert.Equal(t, "emp-001", got.EmployeeID)
	assert.Equal(t, "2024-25", got.TaxYear)
	assert.Equal(t, "2024-05-01", got.PeriodStart)
	assert.Equal(t, "2024-05-31", got.PeriodEnd)
	assert.Equal(t, "2024-05-28", got.PayDate)
	assert.Equal(t, "2916.67", got.GrossPay.StringFixed(2))
	assert.Equal(t, "373.83", got.IncomeTax.StringFixed(2))
	assert.Equal(t, "224.30", got.EmployeeNI.StringFixed(2))
	assert.Equal(t, "297.85", got.EmployerNI.StringFixed(2))
	assert.Equal(t, "145.83", got.EmployeePension.StringFixed(2))
	assert.Equal(t, "87.50", got.EmployerPension.StringFixed(2))
	assert.Equal(t, "57.79", got.StudentLoan.StringFixed(2))
	assert.Equal(t, "801.75", got.TotalDeductions.StringFixed(2))
	assert.Equal(t, "2114.92", got.NetPay.StringFixed(2))
	assert.Equal(t, "3302.02", got.EmployerTotalCost.StringFixed(2))

	// a single what-if calculation is not a payroll run; nothing is announced
	assert.Empty(t, pub.published)
}

func TestServiceCalculate_SchemeDefaultsApply(t *testing.T) {
	svc := newTestService(&fakePublisher{})
	req := calculateRequest()
	req.Employee.Pension = &payroll.PensionRequest{SchemeID: "NEST "}

	got, err := svc.Calculate(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "145.83", got.EmployeePension.StringFixed(2))
	assert.Equal(t, "87.50", got.EmployerPension.StringFixed(2))
}

func TestServiceCalculate_UnknownTaxYear(t *testing.T) {
	svc := newTestService(&fakePublisher{})
	req := calculateRequest()
	req.TaxYear = "2031-32"

	_, err := svc.Calculate(context.Background(), req)

	assert.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeConfigError))
}

func TestServiceCalculate_BadPeriodDate(t *testing.T) {
	svc := newTestService(&fakePublisher{})
	req := calculateRequest()
	req.Period.Start = "01/05/2024"

	_, err := svc.Calculate(context.Background(), req)

	assert.True(t, errors.Is(err, payrollerrors.ErrInvalidDateFormat))
}

func batchRequest() payroll.BatchPayrollRequest {
	base := calculateRequest()
	first := base.Employee
	second := base.Employee
	second.EmployeeID = "emp-002"
	second.AnnualSalary = d("50000")
	return payroll.BatchPayrollRequest{
		TaxYear:   base.TaxYear,
		Period:    base.Period,
		Employees: []payroll.EmployeePayRequest{first, second},
	}
}

func TestServiceRunBatch(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(pub)

	got, err := svc.RunBatch(context.Background(), "", "usr-1", batchRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, got.BatchID)
	assert.Equal(t, 2, got.Requested)
	assert.Equal(t, 2, got.Succeeded)
	assert.Equal(t, 0, got.Failed)
	assert.Len(t, got.Results, 2)
	assert.Equal(t, payroll.StatusOK, got.Results[0].Status)
	assert.Equal(t, "emp-001", got.Results[0].EmployeeID)
	assert.Equal(t, "emp-002", got.Results[1].EmployeeID)

	// one event per payslip plus the closing summary
	assert.Len(t, pub.published, 3)
	assert.Equal(t, events.PayrollPayslipCalculatedTopic, pub.published[0].topic)
	assert.Equal(t, "emp-001", pub.published[0].key)
	assert.Equal(t, events.PayrollPayslipCalculatedTopic, pub.published[1].topic)
	assert.Equal(t, events.PayrollBatchCompletedTopic, pub.published[2].topic)
	assert.Equal(t, got.BatchID, pub.published[2].key)

	completed, ok := pub.published[2].payload.(events.PayrollBatchCompletedEvent)
	assert.True(t, ok)
	assert.Equal(t, 2, completed.Succeeded)
	assert.True(t, completed.TotalGross.Equal(got.Totals.GrossPay))
}

func TestServiceRunBatch_KeepsProvidedBatchID(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(pub)

	got, err := svc.RunBatch(context.Background(), "batch-42", "usr-1", batchRequest())

	assert.NoError(t, err)
	assert.Equal(t, "batch-42", got.BatchID)
	assert.Equal(t, "batch-42", pub.published[len(pub.published)-1].key)
}

func TestServiceRunBatch_RowFailuresAreIsolated(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(pub)

	req := batchRequest()
	badDate := "2024-13-45"
	broken := req.Employees[0]
	broken.EmployeeID = "emp-003"
	broken.StartDate = &badDate
	req.Employees = append(req.Employees, broken)

	got, err := svc.RunBatch(context.Background(), "", "usr-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 3, got.Requested)
	assert.Equal(t, 2, got.Succeeded)
	assert.Equal(t, 1, got.Failed)

	// row order is preserved and the broken row carries its own error
	assert.Equal(t, "emp-003", got.Results[2].EmployeeID)
	assert.Equal(t, payroll.StatusFailed, got.Results[2].Status)
	assert.NotNil(t, got.Results[2].Error)
	assert.Equal(t, apperror.CodeValidationError, got.Results[2].Error.Code)

	// only the two successful payslips are announced
	assert.Len(t, pub.published, 3)
}

func TestServiceRunBatch_PublishFailureIsTolerated(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker unavailable")}
	svc := newTestService(pub)

	got, err := svc.RunBatch(context.Background(), "", "usr-1", batchRequest())

	assert.NoError(t, err)
	assert.Equal(t, 2, got.Succeeded)
}

func TestServiceRunBatch_UnknownTaxYear(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(pub)
	req := batchRequest()
	req.TaxYear = "1999-00"

	_, err := svc.RunBatch(context.Background(), "", "usr-1", req)

	assert.True(t, apperror.HasCode(err, apperror.CodeConfigError))
	assert.Empty(t, pub.published)
}

func TestServiceGetTaxYears(t *testing.T) {
	svc := newTestService(&fakePublisher{})

	years := svc.GetTaxYears(context.Background())

	assert.Contains(t, years, "2024-25")
	assert.Contains(t, years, "2025-26")
	assert.True(t, sortedAscending(years))
}

func sortedAscending(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}

func TestServiceGetTaxYear(t *testing.T) {
	svc := newTestService(&fakePublisher{})

	got, err := svc.GetTaxYear(context.Background(), "2024-25")

	assert.NoError(t, err)
	assert.Equal(t, "2024-25", got.Year)
	assert.Equal(t, "12570", got.PersonalAllowance.String())
	assert.Len(t, got.TaxBands, 3)
	assert.Contains(t, got.NICategories, "A")
	assert.Contains(t, got.StudentLoanPlans, "plan_2")

	_, err = svc.GetTaxYear(context.Background(), "2031-32")
	assert.True(t, apperror.HasCode(err, apperror.CodeConfigError))
}

func TestServiceGetPensionSchemes(t *testing.T) {
	svc := newTestService(&fakePublisher{})

	schemes := svc.GetPensionSchemes(context.Background())

	assert.Len(t, schemes, 11)
	assert.Equal(t, "auto_enrolment", schemes[0].ID)
	assert.Equal(t, "0.05", schemes[0].EmployeeRate.String())
	assert.Equal(t, "0.03", schemes[0].EmployerRate.String())
	assert.Equal(t, payroll.SchemeNone, schemes[len(schemes)-1].ID)
}

func TestServiceGetTaxBands(t *testing.T) {
	svc := newTestService(&fakePublisher{})

	got, err := svc.GetTaxBands(context.Background(), payroll.TaxBandsRequest{
		TaxYear:      "2024-25",
		AnnualSalary: d("60000"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "2024-25", got.TaxYear)
	assert.Equal(t, "12570", got.PersonalAllowance.String())
	assert.Equal(t, "47430", got.TaxableIncome.String())
	assert.Equal(t, "11432", got.TotalTax.String())
	assert.Len(t, got.Bands, 3)
	assert.Equal(t, "7540", got.Bands[0].Tax.String())
	assert.Equal(t, "3892", got.Bands[1].Tax.String())
	assert.True(t, got.Bands[2].Tax.IsZero())
}

func TestServiceGetTaxBands_NegativeSalary(t *testing.T) {
	svc := newTestService(&fakePublisher{})

	_, err := svc.GetTaxBands(context.Background(), payroll.TaxBandsRequest{
		TaxYear:      "2024-25",
		AnnualSalary: d("-1"),
	})

	assert.True(t, errors.Is(err, payrollerrors.ErrNegativeSalary))
}

func TestServiceRenderPayslip(t *testing.T) {
	svc := newTestService(&fakePublisher{})

	pdf, filename, err := svc.RenderPayslip(context.Background(), calculateRequest())

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "payslip_emp-001_2024-05-31.pdf", filename)
}

func TestServiceRenderPayslip_InvalidRequest(t *testing.T) {
	svc := newTestService(&fakePublisher{})
	req := calculateRequest()
	req.Employee.TaxCode = "WRONG"

	_, _, err := svc.RenderPayslip(context.Background(), req)

	assert.True(t, apperror.HasCode(err, apperror.CodeValidationError))
}
