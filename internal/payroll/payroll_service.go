package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kashiee/HRMS/internal/events"
	"github.com/kashiee/HRMS/internal/messaging/kafka/producer"
	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
	"github.com/kashiee/HRMS/internal/shared/apperror"
	"github.com/kashiee/HRMS/internal/shared/contextutil"
	"github.com/kashiee/HRMS/internal/taxyear"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, req CalculatePayslipRequest) (PayslipResponse, error)
	RunBatch(ctx context.Context, batchID, actorID string, req BatchPayrollRequest) (BatchPayrollResponse, error)
	GetTaxYears(ctx context.Context) []string
	GetTaxYear(ctx context.Context, year string) (TaxYearConfigResponse, error)
	GetPensionSchemes(ctx context.Context) []PensionSchemeResponse
	GetTaxBands(ctx context.Context, req TaxBandsRequest) (TaxBandsResponse, error)
	RenderPayslip(ctx context.Context, req CalculatePayslipRequest) ([]byte, string, error)
}

type service struct {
	years     *taxyear.Registry
	publisher producer.Publisher
	workers   int
}

func NewService(years *taxyear.Registry, publisher producer.Publisher, workers int) Service {
	if publisher == nil {
		publisher = producer.NopPublisher{}
	}
	if workers < 1 {
		workers = DefaultBatchWorkers
	}
	return &service{years: years, publisher: publisher, workers: workers}
}

func (s *service) Calculate(
	ctx context.Context,
	req CalculatePayslipRequest,
) (PayslipResponse, error) {
	payslip, err := s.calculate(req)
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToPayslipResponse(payslip), nil
}

func (s *service) calculate(req CalculatePayslipRequest) (PayslipResult, error) {
	cfg, err := s.years.Get(req.TaxYear)
	if err != nil {
		return PayslipResult{}, err
	}

	period, err := buildPeriod(req.Period)
	if err != nil {
		return PayslipResult{}, err
	}

	inputs, err := buildInputs(req.Employee)
	if err != nil {
		return PayslipResult{}, err
	}

	return CalculatePayslip(cfg, period, inputs)
}

func (s *service) RunBatch(
	ctx context.Context,
	batchID, actorID string,
	req BatchPayrollRequest,
) (BatchPayrollResponse, error) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("payroll.batch")
	if batchID == "" {
		batchID = uuid.New().String()
	}

	cfg, err := s.years.Get(req.TaxYear)
	if err != nil {
		return BatchPayrollResponse{}, err
	}

	period, err := buildPeriod(req.Period)
	if err != nil {
		return BatchPayrollResponse{}, err
	}

	// Employees whose request rows cannot be mapped fail individually,
	// the way an in-calculation failure would.
	inputs := make([]EmployeePayInputs, 0, len(req.Employees))
	mapErrs := make([]error, len(req.Employees))
	for i, emp := range req.Employees {
		in, err := buildInputs(emp)
		if err != nil {
			mapErrs[i] = err
			continue
		}
		inputs = append(inputs, in)
	}

	summary, err := RunBatch(ctx, cfg, period, inputs, s.workers)
	if err != nil {
		return BatchPayrollResponse{}, err
	}

	resp := BatchPayrollResponse{
		BatchID:     batchID,
		TaxYear:     summary.TaxYear,
		PeriodStart: period.Start.Format("2006-01-02"),
		PeriodEnd:   period.End.Format("2006-01-02"),
		PayDate:     period.PayDate.Format("2006-01-02"),
		Requested:   len(req.Employees),
		Succeeded:   summary.Succeeded,
		Failed:      summary.Failed,
		Totals:      mapToTotalsResponse(summary.Totals),
		Results:     make([]BatchEmployeeResponse, 0, len(req.Employees)),
	}

	next := 0
	for i, emp := range req.Employees {
		if mapErrs[i] != nil {
			resp.Failed++
			resp.Results = append(resp.Results, failedEmployeeResponse(emp.EmployeeID, mapErrs[i]))
			continue
		}
		r := summary.Results[next]
		next++
		if r.Err != nil {
			resp.Results = append(resp.Results, failedEmployeeResponse(r.EmployeeID, r.Err))
			continue
		}
		payslip := mapToPayslipResponse(*r.Payslip)
		resp.Results = append(resp.Results, BatchEmployeeResponse{
			EmployeeID: r.EmployeeID,
			Status:     StatusOK,
			Payslip:    &payslip,
		})
	}

	for _, r := range resp.Results {
		if r.Error != nil {
			log.Warn("employee excluded from payroll batch",
				zap.String("batch_id", batchID),
				zap.String("employee_id", r.EmployeeID),
				zap.String("code", r.Error.Code),
				zap.String("reason", r.Error.Message),
			)
		}
	}
	log.Info("payroll batch calculated",
		zap.String("batch_id", batchID),
		zap.String("tax_year", resp.TaxYear),
		zap.String("requested_by", actorID),
		zap.Int("requested", resp.Requested),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
		zap.String("total_net", resp.Totals.NetPay.StringFixed(2)),
	)

	s.publishBatchEvents(ctx, log, resp)

	return resp, nil
}

// publishBatchEvents emits one event per payslip plus a closing
// summary. Publishing is best effort: the payslips are already
// calculated and returned to the caller, so a broker outage only
// costs the notifications.
func (s *service) publishBatchEvents(ctx context.Context, log *zap.Logger, resp BatchPayrollResponse) {
	now := time.Now().UTC()
	for _, r := range resp.Results {
		if r.Payslip == nil {
			continue
		}
		event := events.PayrollPayslipCalculatedEvent{
			EventType:         "payroll.payslip.calculated",
			BatchID:           resp.BatchID,
			EmployeeID:        r.EmployeeID,
			TaxYear:           resp.TaxYear,
			PeriodStart:       resp.PeriodStart,
			PeriodEnd:         resp.PeriodEnd,
			PayDate:           resp.PayDate,
			GrossPay:          r.Payslip.GrossPay,
			IncomeTax:         r.Payslip.IncomeTax,
			EmployeeNI:        r.Payslip.EmployeeNI,
			EmployerNI:        r.Payslip.EmployerNI,
			EmployeePension:   r.Payslip.EmployeePension,
			EmployerPension:   r.Payslip.EmployerPension,
			StudentLoan:       r.Payslip.StudentLoan,
			NetPay:            r.Payslip.NetPay,
			EmployerTotalCost: r.Payslip.EmployerTotalCost,
			OccurredAt:        now,
		}
		if err := s.publisher.Publish(ctx, events.PayrollPayslipCalculatedTopic, r.EmployeeID, event.EventType, event); err != nil {
			log.Warn("publish payslip calculated event failed",
				zap.String("batch_id", resp.BatchID),
				zap.String("employee_id", r.EmployeeID),
				zap.Error(err),
			)
		}
	}

	completed := events.PayrollBatchCompletedEvent{
		EventType:         "payroll.batch.completed",
		BatchID:           resp.BatchID,
		TaxYear:           resp.TaxYear,
		PeriodStart:       resp.PeriodStart,
		PeriodEnd:         resp.PeriodEnd,
		Requested:         resp.Requested,
		Succeeded:         resp.Succeeded,
		Failed:            resp.Failed,
		TotalGross:        resp.Totals.GrossPay,
		TotalIncomeTax:    resp.Totals.IncomeTax,
		TotalEmployeeNI:   resp.Totals.EmployeeNI,
		TotalEmployerNI:   resp.Totals.EmployerNI,
		TotalNet:          resp.Totals.NetPay,
		TotalEmployerCost: resp.Totals.EmployerTotalCost,
		OccurredAt:        now,
	}
	if err := s.publisher.Publish(ctx, events.PayrollBatchCompletedTopic, resp.BatchID, completed.EventType, completed); err != nil {
		log.Warn("publish batch completed event failed",
			zap.String("batch_id", resp.BatchID),
			zap.Error(err),
		)
	}
}

func (s *service) GetTaxYears(ctx context.Context) []string {
	return s.years.Years()
}

func (s *service) GetTaxYear(
	ctx context.Context,
	year string,
) (TaxYearConfigResponse, error) {
	cfg, err := s.years.Get(year)
	if err != nil {
		return TaxYearConfigResponse{}, err
	}
	return mapToTaxYearResponse(cfg), nil
}

func (s *service) GetPensionSchemes(ctx context.Context) []PensionSchemeResponse {
	schemes := PensionSchemes()
	resp := make([]PensionSchemeResponse, len(schemes))
	for i, scheme := range schemes {
		resp[i] = PensionSchemeResponse{
			ID:           scheme.ID,
			Name:         scheme.Name,
			EmployeeRate: scheme.EmployeeRate,
			EmployerRate: scheme.EmployerRate,
		}
	}
	return resp
}

func (s *service) GetTaxBands(
	ctx context.Context,
	req TaxBandsRequest,
) (TaxBandsResponse, error) {
	cfg, err := s.years.Get(req.TaxYear)
	if err != nil {
		return TaxBandsResponse{}, err
	}
	if req.AnnualSalary.IsNegative() {
		return TaxBandsResponse{}, payrollerrors.ErrNegativeSalary
	}

	occupancy := TaxBandsForSalary(cfg, req.AnnualSalary)
	resp := TaxBandsResponse{
		TaxYear:           cfg.Year,
		AnnualSalary:      req.AnnualSalary,
		PersonalAllowance: occupancy.PersonalAllowance,
		TaxableIncome:     occupancy.TaxableIncome,
		TotalTax:          occupancy.TotalTax,
		Bands:             make([]TaxBandAmountResponse, len(occupancy.Bands)),
	}
	for i, band := range occupancy.Bands {
		resp.Bands[i] = TaxBandAmountResponse{
			Name:    band.Name,
			Rate:    band.Rate,
			Taxable: band.Taxable,
			Tax:     band.Tax,
		}
	}
	return resp, nil
}

func (s *service) RenderPayslip(
	ctx context.Context,
	req CalculatePayslipRequest,
) ([]byte, string, error) {
	payslip, err := s.calculate(req)
	if err != nil {
		return nil, "", err
	}

	pdf, err := renderPayslipPDF(payslip, req.Employee.FullName)
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeInternalError, "failed to render payslip", 500)
	}

	filename := fmt.Sprintf("payslip_%s_%s.pdf", payslip.EmployeeID, payslip.PeriodEnd.Format("2006-01-02"))
	return pdf, filename, nil
}

func buildPeriod(req PayPeriodRequest) (PayPeriod, error) {
	start, err := parseDate(req.Start)
	if err != nil {
		return PayPeriod{}, err
	}
	end, err := parseDate(req.End)
	if err != nil {
		return PayPeriod{}, err
	}
	payDate, err := parseDate(req.PayDate)
	if err != nil {
		return PayPeriod{}, err
	}
	return NewPayPeriod(start, end, payDate, req.PeriodsPerYear)
}

func buildInputs(req EmployeePayRequest) (EmployeePayInputs, error) {
	in := EmployeePayInputs{
		EmployeeID:      strings.TrimSpace(req.EmployeeID),
		FullName:        strings.TrimSpace(req.FullName),
		NINumber:        req.NINumber,
		TaxCode:         req.TaxCode,
		NICategory:      req.NICategory,
		AnnualSalary:    req.AnnualSalary,
		HourlyRate:      req.HourlyRate,
		HoursWorked:     req.HoursWorked,
		Pension:         buildEnrolment(req.Pension),
		StudentLoanPlan: req.StudentLoanPlan,
	}

	if req.StartDate != nil && *req.StartDate != "" {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return EmployeePayInputs{}, err
		}
		in.StartDate = &start
	}
	if req.LeavingDate != nil && *req.LeavingDate != "" {
		leaving, err := parseDate(*req.LeavingDate)
		if err != nil {
			return EmployeePayInputs{}, err
		}
		in.LeavingDate = &leaving
	}
	return in, nil
}

// buildEnrolment resolves the scheme's default rates and lets the
// request override them. Unknown scheme ids pass through so the
// validator reports them with the right error.
func buildEnrolment(req *PensionRequest) *PensionEnrolment {
	if req == nil {
		return nil
	}
	enrolment := &PensionEnrolment{
		SchemeID: strings.ToLower(strings.TrimSpace(req.SchemeID)),
		Basis:    BasisGrossPay,
	}
	if scheme, ok := PensionSchemeByID(enrolment.SchemeID); ok {
		enrolment.EmployeeRate = scheme.EmployeeRate
		enrolment.EmployerRate = scheme.EmployerRate
	}
	if req.EmployeeRate != nil {
		enrolment.EmployeeRate = *req.EmployeeRate
	}
	if req.EmployerRate != nil {
		enrolment.EmployerRate = *req.EmployerRate
	}
	if req.Basis != "" {
		enrolment.Basis = ContributionBasis(req.Basis)
	}
	return enrolment
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func failedEmployeeResponse(employeeID string, err error) BatchEmployeeResponse {
	httpErr := apperror.ToHTTP(err)
	return BatchEmployeeResponse{
		EmployeeID: employeeID,
		Status:     StatusFailed,
		Error: &EmployeeErrorResponse{
			Code:    httpErr.Code,
			Message: httpErr.Message,
			Details: httpErr.Details,
		},
	}
}

func mapToPayslipResponse(p PayslipResult) PayslipResponse {
	return PayslipResponse{
		EmployeeID:        p.EmployeeID,
		TaxYear:           p.TaxYear,
		PeriodStart:       p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:         p.PeriodEnd.Format("2006-01-02"),
		PayDate:           p.PayDate.Format("2006-01-02"),
		GrossPay:          p.GrossPay,
		IncomeTax:         p.IncomeTax,
		EmployeeNI:        p.EmployeeNI,
		EmployerNI:        p.EmployerNI,
		EmployeePension:   p.EmployeePension,
		EmployerPension:   p.EmployerPension,
		StudentLoan:       p.StudentLoan,
		NetPay:            p.NetPay,
		TotalDeductions:   p.TotalDeductions(),
		EmployerTotalCost: p.EmployerTotalCost,
		Breakdown:         p.Breakdown,
	}
}

func mapToTotalsResponse(t BatchTotals) BatchTotalsResponse {
	return BatchTotalsResponse{
		GrossPay:          t.GrossPay,
		IncomeTax:         t.IncomeTax,
		EmployeeNI:        t.EmployeeNI,
		EmployerNI:        t.EmployerNI,
		EmployeePension:   t.EmployeePension,
		EmployerPension:   t.EmployerPension,
		StudentLoan:       t.StudentLoan,
		NetPay:            t.NetPay,
		EmployerTotalCost: t.EmployerTotalCost,
	}
}

func mapToTaxYearResponse(cfg *taxyear.Config) TaxYearConfigResponse {
	resp := TaxYearConfigResponse{
		Year:              cfg.Year,
		PersonalAllowance: cfg.PersonalAllowance,
		TaxBands:          mapToBandResponses(cfg.TaxBands),
		ScottishTaxBands:  mapToBandResponses(cfg.ScottishTaxBands),
		NI: NIThresholdsResponse{
			PrimaryThreshold:   cfg.NI.PrimaryThreshold,
			UpperEarningsLimit: cfg.NI.UpperEarningsLimit,
			SecondaryThreshold: cfg.NI.SecondaryThreshold,
		},
		NICategories: make(map[string]NICategoryResponse, len(cfg.NICategories)),
		Pension: PensionBandResponse{
			LowerQualifyingEarnings: cfg.Pension.LowerQualifyingEarnings,
			UpperQualifyingEarnings: cfg.Pension.UpperQualifyingEarnings,
		},
		StudentLoanPlans: make(map[string]StudentLoanPlanResponse, len(cfg.StudentLoanPlans)),
	}
	for letter, rates := range cfg.NICategories {
		resp.NICategories[letter] = NICategoryResponse{
			EmployeeMainRate:       rates.EmployeeMainRate,
			EmployeeUpperRate:      rates.EmployeeUpperRate,
			EmployerRate:           rates.EmployerRate,
			EmployerFromUpperLimit: rates.EmployerFromUpperLimit,
		}
	}
	for plan, p := range cfg.StudentLoanPlans {
		resp.StudentLoanPlans[plan] = StudentLoanPlanResponse{
			AnnualThreshold: p.AnnualThreshold,
			Rate:            p.Rate,
		}
	}
	return resp
}

func mapToBandResponses(bands []taxyear.TaxBand) []TaxBandResponse {
	if len(bands) == 0 {
		return nil
	}
	resp := make([]TaxBandResponse, len(bands))
	for i, band := range bands {
		resp[i] = TaxBandResponse{
			Name:         band.Name,
			UpperTaxable: band.UpperTaxable,
			Rate:         band.Rate,
		}
	}
	return resp
}
