package employee

import (
	"context"
)

// EmployeeRepository defines data access for the employee roster.
type EmployeeRepository interface {
	// GetByID retrieves one employee.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive retrieves all active employees ordered by employee code.
	ListActive(ctx context.Context) ([]Employee, error)

	// FindByCodeNameOrCard resolves a time-card row to an employee: exact
	// employee-code match first, then normalized name or card name, then card
	// number. Nil when nothing matches.
	FindByCodeNameOrCard(ctx context.Context, employeeCode, name, cardNumber string) (*Employee, error)

	// Create inserts a roster entry.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// UpdateLeaveFields updates the grant-date override, grant month and
	// initial-balance anchor.
	UpdateLeaveFields(ctx context.Context, emp Employee) error
}
