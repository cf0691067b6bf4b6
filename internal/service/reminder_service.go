package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/segyhp/leasing-engine/internal/domain"
	"github.com/segyhp/leasing-engine/internal/repository"
	"github.com/segyhp/leasing-engine/pkg/utils"
)

// ReminderService runs the periodic payment jobs
type ReminderService struct {
	repo      repository.AgreementRepository
	notifier  Notifier
	daysAhead int
	logger    *zap.Logger
}

func NewReminderService(repo repository.AgreementRepository, notifier Notifier, daysAhead int, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		repo:      repo,
		notifier:  notifier,
		daysAhead: daysAhead,
		logger:    logger,
	}
}

// MarkOverdue flips PENDING installments of active agreements that fell due
// before today to OVERDUE and returns how many were updated
func (s *ReminderService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	agreements, err := s.repo.FindByStatus(ctx, domain.AgreementStatusActive)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, agreement := range agreements {
		for _, payment := range agreement.PaymentSchedule {
			if payment.Status != domain.PaymentStatusPending || !utils.IsDateOverdue(payment.DueDate, now) {
				continue
			}

			if err := s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusOverdue); err != nil {
				return updated, err
			}
			updated++
		}
	}

	s.logger.Info("overdue payments marked", zap.Int("count", updated))
	return updated, nil
}

// SendPaymentReminders notifies employees about PENDING installments due
// between today and today+daysAhead. Failed reminders are logged and skipped.
func (s *ReminderService) SendPaymentReminders(ctx context.Context, now time.Time) (int, error) {
	agreements, err := s.repo.FindByStatus(ctx, domain.AgreementStatusActive)
	if err != nil {
		return 0, err
	}

	today := utils.DateOnly(now)
	horizon := today.AddDate(0, 0, s.daysAhead)

	sent := 0
	for _, agreement := range agreements {
		for _, payment := range agreement.PaymentSchedule {
			due := utils.DateOnly(payment.DueDate)
			if payment.Status != domain.PaymentStatusPending || due.Before(today) || due.After(horizon) {
				continue
			}

			if err := s.notifier.SendPaymentDue(ctx, agreement.EmployeeID, payment); err != nil {
				s.logger.Warn("payment reminder failed",
					zap.String("agreement_id", agreement.ID),
					zap.String("payment_id", payment.ID),
					zap.Error(err))
				continue
			}
			sent++
		}
	}

	s.logger.Info("payment reminders sent", zap.Int("count", sent))
	return sent, nil
}
