package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/segyhp/leasing-engine/internal/config"
	"github.com/segyhp/leasing-engine/internal/domain"
	"github.com/segyhp/leasing-engine/internal/repository"
	"github.com/segyhp/leasing-engine/internal/saga"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
)

// TransactionExecutor performs the side effects of agreement creation.
// Each call runs its own saga: reserve -> persist PENDING -> bill -> notify -> activate.
type TransactionExecutor struct {
	repo      repository.AgreementRepository
	inventory Inventory
	billing   Billing
	notifier  Notifier
	employees EmployeeDirectory
	policy    config.LeasingPolicy
	logger    *zap.Logger
	now       func() time.Time
}

func NewTransactionExecutor(
	repo repository.AgreementRepository,
	inventory Inventory,
	billing Billing,
	notifier Notifier,
	employees EmployeeDirectory,
	policy config.LeasingPolicy,
	logger *zap.Logger,
	now func() time.Time,
) *TransactionExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &TransactionExecutor{
		repo:      repo,
		inventory: inventory,
		billing:   billing,
		notifier:  notifier,
		employees: employees,
		policy:    policy,
		logger:    logger,
		now:       now,
	}
}

// Execute turns a draft into an ACTIVE persisted agreement.
// On a fatal failure every completed step is compensated and the original error is returned unchanged.
func (e *TransactionExecutor) Execute(ctx context.Context, draft *domain.LeasingAgreement) (*domain.LeasingAgreement, error) {
	log := e.logger.With(
		zap.String("agreement_id", draft.ID),
		zap.String("employee_id", draft.EmployeeID),
		zap.String("item_id", draft.ItemID),
	)
	tx := saga.New("create_agreement", log)

	if err := tx.Run(ctx, saga.Step{
		Name:   "check_business_rules",
		Action: func(ctx context.Context) error { return e.checkBusinessRules(ctx, draft) },
	}); err != nil {
		return nil, err
	}

	itemID := draft.ItemID
	if err := tx.Run(ctx, saga.Step{
		Name: "reserve_item",
		Action: func(ctx context.Context) error {
			reserved, err := e.inventory.ReserveItem(ctx, itemID)
			if err != nil {
				return err
			}
			if !reserved {
				return customError.WrapItemUnavailable(itemID)
			}
			return nil
		},
		Compensate: func(ctx context.Context) error {
			return e.inventory.ReleaseItem(ctx, itemID)
		},
	}); err != nil {
		return nil, err
	}

	pending := draft.WithStatus(domain.AgreementStatusPending, e.now())
	if err := tx.Run(ctx, saga.Step{
		Name: "persist_pending",
		Action: func(ctx context.Context) error {
			saved, err := e.repo.Save(ctx, pending)
			if err != nil {
				return err
			}
			if saved != nil {
				pending = saved
			}
			return nil
		},
		Compensate: e.cancelAgreement(pending),
	}); err != nil {
		return nil, err
	}

	agreementID := pending.ID
	if err := tx.Run(ctx, saga.Step{
		Name: "create_billing_record",
		Action: func(ctx context.Context) error {
			billingID, err := e.billing.CreateBillingRecord(ctx, pending)
			if err != nil {
				return err
			}
			log.Info("billing record created", zap.String("billing_id", billingID))
			return nil
		},
		Compensate: func(ctx context.Context) error {
			return e.billing.UpdateBillingRecord(ctx, agreementID, domain.BillingStatusCancelled)
		},
	}); err != nil {
		return nil, err
	}

	employeeID := pending.EmployeeID
	tx.RunBestEffort(ctx, saga.Step{
		Name: "notify_agreement_created",
		Action: func(ctx context.Context) error {
			return e.notifier.SendAgreementCreated(ctx, employeeID, agreementID)
		},
	})

	active := pending.WithStatus(domain.AgreementStatusActive, e.now())
	if err := tx.Run(ctx, saga.Step{
		Name: "activate",
		Action: func(ctx context.Context) error {
			saved, err := e.repo.Save(ctx, active)
			if err != nil {
				return err
			}
			if saved != nil {
				active = saved
			}
			return nil
		},
	}); err != nil {
		return nil, err
	}

	log.Info("agreement activated", zap.String("price", active.Price.String()))
	return active, nil
}

func (e *TransactionExecutor) checkBusinessRules(ctx context.Context, draft *domain.LeasingAgreement) error {
	valid, err := e.employees.ValidateEmployee(ctx, draft.EmployeeID, draft.CompanyID)
	if err != nil {
		return err
	}
	if !valid {
		return customError.WrapInvalidEmployee(draft.EmployeeID, draft.CompanyID)
	}

	available, err := e.inventory.CheckAvailability(ctx, draft.ItemID)
	if err != nil {
		return err
	}
	if !available {
		return customError.WrapItemUnavailable(draft.ItemID)
	}

	if draft.Price.GreaterThan(e.policy.MaxPrice) {
		return customError.WrapPriceExceeded(draft.Price.StringFixed(2), e.policy.MaxPrice.StringFixed(2))
	}

	return nil
}

// cancelAgreement re-saves a persisted agreement as CANCELLED so a failed saga
// leaves no PENDING row behind
func (e *TransactionExecutor) cancelAgreement(persisted *domain.LeasingAgreement) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cancelled := persisted.WithStatus(domain.AgreementStatusCancelled, e.now())
		for i := range cancelled.PaymentSchedule {
			cancelled.PaymentSchedule[i].Status = domain.PaymentStatusCancelled
		}
		_, err := e.repo.Save(ctx, cancelled)
		return err
	}
}
