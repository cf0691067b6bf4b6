package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/leasing-engine/internal/domain"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
	"github.com/segyhp/leasing-engine/pkg/response"
)

const maxRequestBodyBytes = 1 << 20

// AgreementService is what the HTTP layer needs from the leasing service
type AgreementService interface {
	CreateAgreement(ctx context.Context, req *domain.CreateAgreementRequest) (*domain.LeasingAgreement, error)
	GetAgreement(ctx context.Context, agreementID string) (*domain.LeasingAgreement, error)
	ListEmployeeAgreements(ctx context.Context, employeeID string) ([]*domain.LeasingAgreement, error)
}

type AgreementHandler struct {
	service AgreementService
	logger  *zap.Logger
}

func NewAgreementHandler(service AgreementService, logger *zap.Logger) *AgreementHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgreementHandler{
		service: service,
		logger:  logger,
	}
}

// CreateAgreement handles POST /api/v1/agreements
func (h *AgreementHandler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAgreementRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, response.ErrorResponse{
			Error:   "validation_error",
			Message: "request body is not a valid agreement request",
			Code:    customError.CodeInvalidFormat,
			Field:   "body",
		})
		return
	}

	agreement, err := h.service.CreateAgreement(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, agreement)
}

// GetAgreement handles GET /api/v1/agreements/{agreementId}
func (h *AgreementHandler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	agreementID := mux.Vars(r)["agreementId"]
	if strings.TrimSpace(agreementID) == "" {
		response.BadRequest(w, "agreement id is required", nil)
		return
	}

	agreement, err := h.service.GetAgreement(r.Context(), agreementID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, agreement)
}

// ListEmployeeAgreements handles GET /api/v1/employees/{employeeId}/agreements
func (h *AgreementHandler) ListEmployeeAgreements(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]
	if strings.TrimSpace(employeeID) == "" {
		response.BadRequest(w, "employee id is required", nil)
		return
	}

	agreements, err := h.service.ListEmployeeAgreements(r.Context(), employeeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, domain.AgreementListResponse{
		EmployeeID: employeeID,
		Agreements: agreements,
	})
}

// writeError maps the error taxonomy onto HTTP status codes
func (h *AgreementHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := customError.IsValidation(err); ok {
		response.Fail(w, http.StatusBadRequest, response.ErrorResponse{
			Error:   "validation_error",
			Message: ve.Message,
			Code:    ve.Code,
			Field:   ve.Field,
		})
		return
	}

	if be, ok := customError.IsBusinessRule(err); ok {
		response.Fail(w, http.StatusUnprocessableEntity, response.ErrorResponse{
			Error:   "business_rule_violation",
			Message: be.Message,
			Code:    be.Code,
			Rule:    be.Rule,
		})
		return
	}

	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) && businessErr.Code == customError.ErrCodeAgreementNotFound {
		response.Fail(w, http.StatusNotFound, response.ErrorResponse{
			Error:   "not_found",
			Message: businessErr.Message,
			Code:    businessErr.Code,
		})
		return
	}

	h.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	response.InternalServerError(w, "internal error")
}
