package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
)

// Service implements employee.EmployeeService.
type Service struct {
	employeeRepo employee.EmployeeRepository
}

// NewService creates an employee service.
func NewService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &Service{employeeRepo: employeeRepo}
}

// List retrieves all active employees.
func (s *Service) List(ctx context.Context) ([]employee.Response, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.Response, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, toResponse(emp))
	}
	return resp, nil
}

// Get retrieves one employee.
func (s *Service) Get(ctx context.Context, id string) (employee.Response, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Response{}, err
	}
	return toResponse(emp), nil
}

// UpdateLeaveFields updates the leave-settings form fields. Setting an
// initial balance also marks the ledger as migrated; clearing it reverts the
// employee to the hire-date derivation.
func (s *Service) UpdateLeaveFields(ctx context.Context, req employee.UpdateLeaveFieldsRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Response{}, err
	}

	if emp.HireDate, err = applyDateField(emp.HireDate, req.HireDate); err != nil {
		return employee.Response{}, err
	}
	if emp.LeaveGrantDate, err = applyDateField(emp.LeaveGrantDate, req.LeaveGrantDate); err != nil {
		return employee.Response{}, err
	}
	if emp.InitialLeaveDate, err = applyDateField(emp.InitialLeaveDate, req.InitialLeaveDate); err != nil {
		return employee.Response{}, err
	}
	if req.LeaveGrantMonth != nil {
		if *req.LeaveGrantMonth == 0 {
			emp.LeaveGrantMonth = nil
		} else {
			month := *req.LeaveGrantMonth
			emp.LeaveGrantMonth = &month
		}
	}
	if req.InitialLeaveBalance != nil {
		if *req.InitialLeaveBalance == "" {
			emp.InitialLeaveBalance = nil
			emp.InitialLeaveImported = false
		} else {
			balance, err := decimal.NewFromString(*req.InitialLeaveBalance)
			if err != nil {
				return employee.Response{}, employee.ErrInvalidLeaveFields
			}
			emp.InitialLeaveBalance = &balance
			emp.InitialLeaveImported = true
		}
	}

	if err := s.employeeRepo.UpdateLeaveFields(ctx, emp); err != nil {
		return employee.Response{}, err
	}
	return toResponse(emp), nil
}

// applyDateField applies an optional date update: nil leaves the stored
// value untouched, an empty string clears it.
func applyDateField(current *time.Time, update *string) (*time.Time, error) {
	if update == nil {
		return current, nil
	}
	if *update == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *update)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	return &d, nil
}

func toResponse(emp employee.Employee) employee.Response {
	resp := employee.Response{
		ID:                   emp.ID,
		Name:                 emp.Name,
		EmployeeCode:         emp.EmployeeCode,
		DepartmentName:       emp.DepartmentName,
		Position:             emp.Position,
		LeaveGrantMonth:      emp.LeaveGrantMonth,
		InitialLeaveImported: emp.InitialLeaveImported,
		IsActive:             emp.IsActive,
	}
	resp.HireDate = formatDate(emp.HireDate)
	resp.LeaveGrantDate = formatDate(emp.LeaveGrantDate)
	resp.EffectiveGrantDate = formatDate(emp.EffectiveLeaveGrantDate())
	resp.InitialLeaveDate = formatDate(emp.InitialLeaveDate)
	if emp.InitialLeaveBalance != nil {
		balance := emp.InitialLeaveBalance.String()
		resp.InitialLeaveBalance = &balance
	}
	return resp
}

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	formatted := d.Format("2006-01-02")
	return &formatted
}
