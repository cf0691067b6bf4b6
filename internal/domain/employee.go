package domain

// EmployeeTier classifies an employee for discount purposes
type EmployeeTier string

const (
	EmployeeTierStandard EmployeeTier = "STANDARD"
	EmployeeTierPremium  EmployeeTier = "PREMIUM"
	EmployeeTierVIP      EmployeeTier = "VIP"
)

// Employee is a row of the employee directory
type Employee struct {
	ID        string       `json:"id" db:"id"`
	CompanyID string       `json:"company_id" db:"company_id"`
	Tier      EmployeeTier `json:"tier" db:"tier"`
}
