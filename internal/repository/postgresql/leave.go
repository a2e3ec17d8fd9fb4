package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/database"
)

type leaveGrantRepository struct {
	db *database.DB
}

// NewLeaveGrantRepository creates a PostgreSQL leave grant repository.
func NewLeaveGrantRepository(db *database.DB) leave.GrantRepository {
	return &leaveGrantRepository{db: db}
}

const grantColumns = `
	id, employee_id, grant_date, days_granted, fiscal_year_start, expires_at, note,
	created_at, updated_at
`

func scanGrant(row pgx.Row) (leave.Grant, error) {
	var g leave.Grant
	err := row.Scan(
		&g.ID, &g.EmployeeID, &g.GrantDate, &g.DaysGranted, &g.FiscalYearStart, &g.ExpiresAt, &g.Note,
		&g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}

// GetByID implements leave.GrantRepository.
func (r *leaveGrantRepository) GetByID(ctx context.Context, id string) (leave.Grant, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + grantColumns + ` FROM leave_grants WHERE id = $1`

	g, err := scanGrant(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Grant{}, leave.ErrGrantNotFound
		}
		return leave.Grant{}, fmt.Errorf("failed to get leave grant: %w", err)
	}
	return g, nil
}

// ListByEmployee implements leave.GrantRepository.
func (r *leaveGrantRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Grant, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + grantColumns + `
		FROM leave_grants
		WHERE employee_id = $1
		ORDER BY grant_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}
	defer rows.Close()

	var grants []leave.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// CountByEmployee implements leave.GrantRepository.
func (r *leaveGrantRepository) CountByEmployee(ctx context.Context, employeeID string) (int, error) {
	q := database.GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_grants WHERE employee_id = $1`, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave grants: %w", err)
	}
	return count, nil
}

// Create implements leave.GrantRepository.
func (r *leaveGrantRepository) Create(ctx context.Context, grant leave.Grant) (leave.Grant, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_grants (
			id, employee_id, grant_date, days_granted, fiscal_year_start, expires_at, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.New().String(),
		grant.EmployeeID,
		grant.GrantDate,
		grant.DaysGranted,
		grant.FiscalYearStart,
		grant.ExpiresAt,
		grant.Note,
	).Scan(&grant.ID, &grant.CreatedAt, &grant.UpdatedAt)
	if err != nil {
		return leave.Grant{}, fmt.Errorf("failed to create leave grant: %w", err)
	}
	return grant, nil
}

// Delete implements leave.GrantRepository.
func (r *leaveGrantRepository) Delete(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_grants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave grant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrGrantNotFound
	}
	return nil
}

type leaveUsageRepository struct {
	db *database.DB
}

// NewLeaveUsageRepository creates a PostgreSQL leave usage repository.
func NewLeaveUsageRepository(db *database.DB) leave.UsageRepository {
	return &leaveUsageRepository{db: db}
}

const usageColumns = `
	id, employee_id, date, leave_type, days, note, created_at, updated_at
`

func scanUsage(row pgx.Row) (leave.Usage, error) {
	var u leave.Usage
	err := row.Scan(
		&u.ID, &u.EmployeeID, &u.Date, &u.LeaveType, &u.Days, &u.Note,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// ListByEmployee implements leave.UsageRepository.
func (r *leaveUsageRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]leave.Usage, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + usageColumns + `
		FROM leave_usages
		WHERE employee_id = $1
		  AND ($2::date IS NULL OR date >= $2)
		  AND ($3::date IS NULL OR date <= $3)
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave usages: %w", err)
	}
	defer rows.Close()

	var usages []leave.Usage
	for rows.Next() {
		u, err := scanUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave usage: %w", err)
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

// Create implements leave.UsageRepository.
func (r *leaveUsageRepository) Create(ctx context.Context, usage leave.Usage) (leave.Usage, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_usages (id, employee_id, date, leave_type, days, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.New().String(),
		usage.EmployeeID,
		usage.Date,
		usage.LeaveType,
		usage.Days,
		usage.Note,
	).Scan(&usage.ID, &usage.CreatedAt, &usage.UpdatedAt)
	if err != nil {
		return leave.Usage{}, fmt.Errorf("failed to create leave usage: %w", err)
	}
	return usage, nil
}

// Delete implements leave.UsageRepository.
func (r *leaveUsageRepository) Delete(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_usages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrUsageNotFound
	}
	return nil
}
