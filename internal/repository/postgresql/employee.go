package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a PostgreSQL employee repository.
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.name, e.employee_code, e.card_number, e.card_name, e.department_id, e.position,
	e.hire_date, e.leave_grant_date, e.leave_grant_month,
	e.initial_leave_balance, e.initial_leave_date, e.initial_leave_imported,
	e.is_active, e.created_at, e.updated_at, d.name AS department_name
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.EmployeeCode, &emp.CardNumber, &emp.CardName, &emp.DepartmentID, &emp.Position,
		&emp.HireDate, &emp.LeaveGrantDate, &emp.LeaveGrantMonth,
		&emp.InitialLeaveBalance, &emp.InitialLeaveDate, &emp.InitialLeaveImported,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt, &emp.DepartmentName,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.is_active
		ORDER BY e.employee_code NULLS LAST, e.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// FindByCodeNameOrCard implements employee.EmployeeRepository. Names are
// compared with spaces stripped, since the time-card export and the payroll
// roster disagree on full-width space placement.
func (r *employeeRepository) FindByCodeNameOrCard(ctx context.Context, employeeCode, name, cardNumber string) (*employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	normalized := strings.ReplaceAll(strings.ReplaceAll(name, " ", ""), "　", "")

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE ($1 <> '' AND e.employee_code = $1)
		   OR ($2 <> '' AND REPLACE(REPLACE(e.name, ' ', ''), '　', '') = $2)
		   OR ($2 <> '' AND REPLACE(REPLACE(COALESCE(e.card_name, ''), ' ', ''), '　', '') = $2)
		   OR ($3 <> '' AND e.card_number = $3)
		ORDER BY (e.employee_code = $1) DESC NULLS LAST
		LIMIT 1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeCode, normalized, cardNumber))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, name, employee_code, card_number, card_name, department_id, position,
			hire_date, leave_grant_date, leave_grant_month,
			initial_leave_balance, initial_leave_date, initial_leave_imported, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.New().String(),
		emp.Name,
		emp.EmployeeCode,
		emp.CardNumber,
		emp.CardName,
		emp.DepartmentID,
		emp.Position,
		emp.HireDate,
		emp.LeaveGrantDate,
		emp.LeaveGrantMonth,
		emp.InitialLeaveBalance,
		emp.InitialLeaveDate,
		emp.InitialLeaveImported,
		emp.IsActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

// UpdateLeaveFields implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateLeaveFields(ctx context.Context, emp employee.Employee) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			hire_date = $2,
			leave_grant_date = $3,
			leave_grant_month = $4,
			initial_leave_balance = $5,
			initial_leave_date = $6,
			initial_leave_imported = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID,
		emp.HireDate,
		emp.LeaveGrantDate,
		emp.LeaveGrantMonth,
		emp.InitialLeaveBalance,
		emp.InitialLeaveDate,
		emp.InitialLeaveImported,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee leave fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
