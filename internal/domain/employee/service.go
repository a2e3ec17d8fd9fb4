package employee

import (
	"context"
)

// EmployeeService defines business logic for roster management.
type EmployeeService interface {
	// List retrieves all active employees.
	List(ctx context.Context) ([]Response, error)

	// Get retrieves one employee.
	Get(ctx context.Context, id string) (Response, error)

	// UpdateLeaveFields updates the leave-settings form fields.
	UpdateLeaveFields(ctx context.Context, req UpdateLeaveFieldsRequest) (Response, error)
}
