package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// initialBalanceFallbackYear anchors migrated balances whose snapshot date
// was not recorded; the previous system was retired in 2019.
const initialBalanceFallbackYear = 2019

var (
	maxCarryover = decimal.NewFromInt(leave.MaxCarryoverDays)
	maxTotal     = decimal.NewFromInt(leave.MaxTotalDays)
)

// ledgerYear is one fiscal year produced by the fold, before trimming to the
// display window.
type ledgerYear struct {
	entry    leave.LedgerEntry
	isAnchor bool
}

// buildLedger enumerates fiscal years from the calculation start through the
// current fiscal year and folds the balance forward. The enumeration starts
// earlier than the display window whenever the anchor (migrated initial
// balance or statutory first grant) predates it, so the carryover entering
// the window is always derived, never guessed.
//
// ok is false when the employee has no grant anniversary at all, in which
// case no ledger can be derived.
func (s *Service) buildLedger(ctx context.Context, emp employee.Employee, years int, today time.Time) (rows []ledgerYear, displayStart time.Time, ok bool, err error) {
	eff := emp.EffectiveLeaveGrantDate()
	if eff == nil {
		return nil, time.Time{}, false, nil
	}

	useOldRule := UsesOldRule(emp)
	hasInitial := emp.InitialLeaveBalance != nil

	var initialDate *time.Time
	if hasInitial {
		initialDate = emp.InitialLeaveDate
		if initialDate == nil {
			d := time.Date(initialBalanceFallbackYear, eff.Month(), eff.Day(), 0, 0, 0, 0, time.UTC)
			initialDate = &d
		}
	}

	var firstGrant *time.Time
	if !hasInitial {
		firstGrant = FirstGrantDate(emp, useOldRule)
	}

	// Latest grant anniversary not after today.
	currentFiscal := *eff
	for !currentFiscal.AddDate(1, 0, 0).After(today) {
		currentFiscal = currentFiscal.AddDate(1, 0, 0)
	}

	displayStart = currentFiscal.AddDate(-(years - 1), 0, 0)

	calcStart := displayStart
	if hasInitial && initialDate.Before(displayStart) {
		calcStart = *initialDate
	} else if !hasInitial && firstGrant != nil && firstGrant.Before(displayStart) {
		calcStart = *firstGrant
	}

	manualGrants, err := s.manualGrantsByDate(ctx, emp.ID)
	if err != nil {
		return nil, time.Time{}, false, err
	}

	previousRemaining := decimal.Zero

	for yearStart := calcStart; !yearStart.After(currentFiscal); yearStart = yearStart.AddDate(1, 0, 0) {
		yearEnd := yearStart.AddDate(1, 0, 0).AddDate(0, 0, -1)

		usageEnd := yearEnd
		if yearStart.Equal(currentFiscal) {
			usageEnd = today
		}

		usage, err := s.usage.total(ctx, emp.ID, &yearStart, &usageEnd)
		if err != nil {
			return nil, time.Time{}, false, err
		}

		var granted, carryover decimal.Decimal
		isAnchor := false

		switch {
		case hasInitial && yearStart.Equal(*initialDate):
			// Anchor year of a migrated ledger: the snapshot balance is
			// split so at most 20 days count as that year's grant and the
			// excess enters as carryover from the years before the snapshot.
			isAnchor = true
			balance := *emp.InitialLeaveBalance
			if balance.GreaterThan(maxCarryover) {
				granted = maxCarryover
				carryover = balance.Sub(maxCarryover)
			} else {
				carryover = balance
			}
		case hasInitial && yearStart.After(*initialDate):
			granted = s.grantedFor(emp, yearStart, useOldRule, manualGrants)
			carryover = decimal.Min(maxCarryover, previousRemaining)
		case hasInitial:
			// Before the anchor: nothing is known about these years.
		case firstGrant != nil && !yearStart.Before(*firstGrant):
			granted = s.grantedFor(emp, yearStart, useOldRule, manualGrants)
			carryover = decimal.Min(maxCarryover, previousRemaining)
		case firstGrant == nil:
			// No hire date on record: only manually entered grants exist.
			granted = manualGrantOn(manualGrants, yearStart)
			carryover = decimal.Min(maxCarryover, previousRemaining)
		}

		remaining := carryover.Add(granted).Sub(usage)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		remaining = decimal.Min(maxTotal, remaining)

		rows = append(rows, ledgerYear{
			entry: leave.LedgerEntry{
				FiscalYear:  fmt.Sprintf("%d年度", yearStart.Year()),
				PeriodStart: yearStart,
				PeriodEnd:   yearEnd,
				Carryover:   carryover,
				Granted:     granted,
				Usage:       usage,
				Remaining:   remaining,
			},
			isAnchor: isAnchor,
		})

		previousRemaining = remaining
	}

	return rows, displayStart, true, nil
}

// grantedFor resolves one year's grant: a manually recorded grant for that
// anniversary wins, otherwise the statutory tenure table applies.
func (s *Service) grantedFor(emp employee.Employee, yearStart time.Time, useOldRule bool, manual map[string]decimal.Decimal) decimal.Decimal {
	if days, ok := manual[yearStart.Format("2006-01-02")]; ok {
		return days
	}
	return decimal.NewFromInt(int64(GrantDays(emp.HireDate, yearStart, useOldRule)))
}

func (s *Service) manualGrantsByDate(ctx context.Context, employeeID string) (map[string]decimal.Decimal, error) {
	grants, err := s.grantRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}

	byDate := make(map[string]decimal.Decimal, len(grants))
	for _, g := range grants {
		byDate[g.GrantDate.Format("2006-01-02")] = g.DaysGranted
	}
	return byDate, nil
}

func manualGrantOn(manual map[string]decimal.Decimal, yearStart time.Time) decimal.Decimal {
	if days, ok := manual[yearStart.Format("2006-01-02")]; ok {
		return days
	}
	return decimal.Zero
}

// currentBalance derives the balance summary from the fold, covering the two
// cases the fold cannot express: a migrated snapshot with no grant
// anniversary at all, and a statutory first grant that is still ahead.
func currentBalance(emp employee.Employee, rows []ledgerYear, ok bool, today time.Time) leave.Balance {
	if !ok {
		if emp.InitialLeaveBalance != nil {
			return initialOnlyBalance(*emp.InitialLeaveBalance)
		}
		return balanceFromLedger(nil, today)
	}
	if firstGrantPending(emp, today) {
		return balanceFromLedger(nil, today)
	}
	return balanceFromLedger(rows, today)
}

// firstGrantPending reports whether an employee without a migrated balance
// has not reached the statutory first grant yet.
func firstGrantPending(emp employee.Employee, today time.Time) bool {
	if emp.InitialLeaveBalance != nil {
		return false
	}
	first := FirstGrantDate(emp, UsesOldRule(emp))
	return first != nil && first.After(today)
}

// initialOnlyBalance is the balance of an employee whose migrated snapshot
// has no hire date or grant date to hang fiscal years on. The snapshot
// stands as both granted and remaining.
func initialOnlyBalance(initial decimal.Decimal) leave.Balance {
	return leave.Balance{
		TotalGranted:   initial,
		TotalUsed:      decimal.Zero,
		TotalRemaining: initial,
		IsAtMax:        initial.GreaterThanOrEqual(maxTotal),
	}
}

// balanceFromLedger reduces the full fold to the current-balance summary.
// The anchor year contributes its whole snapshot (carryover plus granted) to
// the granted total; later years contribute their grants only, since their
// carryover is already counted through the earlier years.
func balanceFromLedger(rows []ledgerYear, today time.Time) leave.Balance {
	balance := leave.Balance{
		TotalGranted:   decimal.Zero,
		TotalUsed:      decimal.Zero,
		TotalRemaining: decimal.Zero,
	}

	expiringSoonCutoff := today.AddDate(0, 3, 0)

	for _, row := range rows {
		if row.isAnchor {
			balance.TotalGranted = balance.TotalGranted.Add(row.entry.Carryover).Add(row.entry.Granted)
		} else {
			balance.TotalGranted = balance.TotalGranted.Add(row.entry.Granted)
		}
		balance.TotalUsed = balance.TotalUsed.Add(row.entry.Usage)

		if row.entry.Granted.IsPositive() {
			// A grant is still usable on its expiry day.
			expiresAt := row.entry.PeriodStart.AddDate(leave.ExpirationYears, 0, 0)
			if !expiresAt.Before(today) {
				balance.Grants = append(balance.Grants, leave.GrantProjection{
					GrantDate:      row.entry.PeriodStart,
					DaysGranted:    row.entry.Granted,
					ExpiresAt:      expiresAt,
					IsExpiringSoon: !expiresAt.After(expiringSoonCutoff),
				})
			}
		}
	}

	if len(rows) > 0 {
		balance.TotalRemaining = rows[len(rows)-1].entry.Remaining
	}
	balance.IsAtMax = balance.TotalRemaining.GreaterThanOrEqual(maxTotal)

	return balance
}
