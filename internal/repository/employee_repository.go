package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/leasing-engine/internal/domain"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
)

// EmployeeRepository reads the employee directory table
type EmployeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) FindByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT id, company_id, tier
		FROM employees
		WHERE id = $1
	`

	var employee domain.Employee
	if err := r.db.GetContext(ctx, &employee, query, employeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// GetEmployeeType returns the tier of an employee.
// Unknown employees are STANDARD; company membership is checked separately.
func (r *EmployeeRepository) GetEmployeeType(ctx context.Context, employeeID string) (domain.EmployeeTier, error) {
	employee, err := r.FindByID(ctx, employeeID)
	if errors.Is(err, customError.ErrEmployeeNotFound) {
		return domain.EmployeeTierStandard, nil
	}
	if err != nil {
		return "", err
	}
	return employee.Tier, nil
}

func (r *EmployeeRepository) ValidateEmployee(ctx context.Context, employeeID, companyID string) (bool, error) {
	employee, err := r.FindByID(ctx, employeeID)
	if errors.Is(err, customError.ErrEmployeeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return employee.CompanyID == companyID, nil
}
