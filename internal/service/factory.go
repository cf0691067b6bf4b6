package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/leasing-engine/internal/domain"
	"github.com/segyhp/leasing-engine/internal/pricing"
	"github.com/segyhp/leasing-engine/internal/schedule"
	"github.com/segyhp/leasing-engine/pkg/utils"
)

// NewAgreementID builds an id of the form LA-<unix millis>-<9 alphanumerics>
func NewAgreementID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("LA-%d-%s", now.UnixMilli(), suffix)
}

// AgreementFactory assembles draft agreements from validated requests.
// It has no side effects beyond reading the employee directory.
type AgreementFactory struct {
	employees EmployeeDirectory
	pricing   *pricing.Engine
	schedules *schedule.Generator
	now       func() time.Time
	newID     func(time.Time) string
}

func NewAgreementFactory(
	employees EmployeeDirectory,
	pricingEngine *pricing.Engine,
	generator *schedule.Generator,
	now func() time.Time,
) *AgreementFactory {
	if now == nil {
		now = time.Now
	}
	return &AgreementFactory{
		employees: employees,
		pricing:   pricingEngine,
		schedules: generator,
		now:       now,
		newID:     NewAgreementID,
	}
}

// FromRequest builds a DRAFT agreement whose price is the discounted cost and
// whose schedule distributes that discounted cost
func (f *AgreementFactory) FromRequest(ctx context.Context, req *domain.CreateAgreementRequest) (*domain.LeasingAgreement, error) {
	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date: %w", err)
	}

	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date: %w", err)
	}

	basePrice, err := utils.DecimalFromString(req.Price.String())
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}

	tier, err := f.employees.GetEmployeeType(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := f.now()
	agreement := &domain.LeasingAgreement{
		ID:               f.newID(now),
		EmployeeID:       req.EmployeeID,
		ItemID:           req.ItemID,
		CompanyID:        req.CompanyID,
		StartDate:        startDate,
		EndDate:          endDate,
		Status:           domain.AgreementStatusDraft,
		Price:            f.pricing.CalculateCost(basePrice, startDate, endDate, tier),
		Currency:         req.Currency,
		PaymentFrequency: domain.PaymentFrequency(req.PaymentFrequency),
		Metadata:         req.Metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	entries, err := f.schedules.Generate(agreement, agreement.PaymentFrequency)
	if err != nil {
		return nil, err
	}
	agreement.PaymentSchedule = entries

	return agreement, nil
}
