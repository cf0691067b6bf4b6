package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/segyhp/leasing-engine/internal/domain"
	"github.com/segyhp/leasing-engine/internal/repository"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
)

// RequestValidator checks a creation request before any side effect
type RequestValidator interface {
	Validate(req *domain.CreateAgreementRequest) error
}

type LeasingService struct {
	validator RequestValidator
	factory   *AgreementFactory
	executor  *TransactionExecutor
	repo      repository.AgreementRepository
	logger    *zap.Logger
}

func NewLeasingService(
	validator RequestValidator,
	factory *AgreementFactory,
	executor *TransactionExecutor,
	repo repository.AgreementRepository,
	logger *zap.Logger,
) *LeasingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeasingService{
		validator: validator,
		factory:   factory,
		executor:  executor,
		repo:      repo,
		logger:    logger,
	}
}

// CreateAgreement validates the request, builds the draft and runs the creation saga.
// Validation and business rule failures come back as typed errors; collaborator
// failures come back unchanged.
func (s *LeasingService) CreateAgreement(ctx context.Context, req *domain.CreateAgreementRequest) (*domain.LeasingAgreement, error) {
	if err := s.validator.Validate(req); err != nil {
		if ve, ok := customError.IsValidation(err); ok {
			s.logger.Info("agreement request rejected",
				zap.String("field", ve.Field),
				zap.String("code", ve.Code))
		}
		return nil, err
	}

	draft, err := s.factory.FromRequest(ctx, req)
	if err != nil {
		s.logger.Error("failed to build agreement", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return nil, err
	}

	agreement, err := s.executor.Execute(ctx, draft)
	if err != nil {
		return nil, err
	}

	return agreement, nil
}

// GetAgreement returns a single agreement by id
func (s *LeasingService) GetAgreement(ctx context.Context, agreementID string) (*domain.LeasingAgreement, error) {
	agreement, err := s.repo.FindByID(ctx, agreementID)
	if err != nil {
		if errors.Is(err, customError.ErrAgreementNotFound) {
			return nil, customError.WrapAgreementNotFound(agreementID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return agreement, nil
}

// ListEmployeeAgreements returns every agreement of an employee
func (s *LeasingService) ListEmployeeAgreements(ctx context.Context, employeeID string) ([]*domain.LeasingAgreement, error) {
	agreements, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if agreements == nil {
		agreements = []*domain.LeasingAgreement{}
	}
	return agreements, nil
}
