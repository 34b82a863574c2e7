package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// CanonicalPlatformTakePercent is the platform fee the owner earnings base is always computed at.
	CanonicalPlatformTakePercent = decimal.NewFromInt(20)
	// ReducedPlatformTakePercent is the take rate that earns the agency a cashback.
	ReducedPlatformTakePercent = decimal.NewFromInt(15)
	// ReducedTakeCashbackPercent is the cashback accrued at the reduced take rate.
	ReducedTakeCashbackPercent = decimal.NewFromInt(5)
)

var (
	ErrConflictingCompensation = errors.New("commission percent and flat salary are mutually exclusive")
	ErrPercentOutOfRange       = errors.New("percent must be within 0..100")
	ErrMissingCompensation     = errors.New("compensation mode requires its figure")
	ErrUnknownCompensationMode = errors.New("unknown compensation mode")
)

// Percent returns amount * percent / 100.
func Percent(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

func percentInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// AgentCompensation configures how an agent is paid. At most one of the two
// figures may be set; with neither, the agent earns flat amounts only.
type AgentCompensation struct {
	CommissionPercent  decimal.NullDecimal `json:"commission_percent"`
	FlatSalaryPerMonth decimal.NullDecimal `json:"flat_salary_per_month"`
}

// HasCommission reports whether the agent is paid on a percentage.
func (c AgentCompensation) HasCommission() bool {
	return c.CommissionPercent.Valid
}

// HasSalary reports whether the agent draws a flat monthly salary.
func (c AgentCompensation) HasSalary() bool {
	return c.FlatSalaryPerMonth.Valid
}

// Validate rejects contradictory or out-of-range configuration.
func (c AgentCompensation) Validate() error {
	if c.HasCommission() && c.HasSalary() {
		return ErrConflictingCompensation
	}
	if c.HasCommission() && !percentInRange(c.CommissionPercent.Decimal) {
		return fmt.Errorf("commission: %w", ErrPercentOutOfRange)
	}
	if c.HasSalary() && c.FlatSalaryPerMonth.Decimal.IsNegative() {
		return fmt.Errorf("flat salary: %w", ErrNegativeAmount)
	}
	return nil
}

// Agent is a sales representative.
type Agent struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Active       bool              `json:"active"`
	Compensation AgentCompensation `json:"compensation"`
}

// CompensationMode selects how a content owner is paid.
type CompensationMode string

const (
	RevenueShare CompensationMode = "REVENUE_SHARE"
	FixedCost    CompensationMode = "FIXED_COST"
)

// OwnerCompensation configures how a content owner is paid and what the
// platform takes from their gross sales.
type OwnerCompensation struct {
	Mode                CompensationMode    `json:"compensation_mode"`
	RevenueSharePercent decimal.NullDecimal `json:"revenue_share_percent"`
	FixedCost           decimal.NullDecimal `json:"fixed_cost"`
	PlatformTakePercent decimal.Decimal     `json:"platform_take_percent"`
}

// CashbackPercent is derived from the platform take rate, never stored.
func (c OwnerCompensation) CashbackPercent() decimal.Decimal {
	if c.PlatformTakePercent.Equal(ReducedPlatformTakePercent) {
		return ReducedTakeCashbackPercent
	}
	return decimal.Zero
}

// Validate rejects a mode without its figure and out-of-range values.
func (c OwnerCompensation) Validate() error {
	if !percentInRange(c.PlatformTakePercent) {
		return fmt.Errorf("platform take: %w", ErrPercentOutOfRange)
	}
	switch c.Mode {
	case RevenueShare:
		if !c.RevenueSharePercent.Valid {
			return fmt.Errorf("%s: %w", c.Mode, ErrMissingCompensation)
		}
		if !percentInRange(c.RevenueSharePercent.Decimal) {
			return fmt.Errorf("revenue share: %w", ErrPercentOutOfRange)
		}
	case FixedCost:
		if !c.FixedCost.Valid {
			return fmt.Errorf("%s: %w", c.Mode, ErrMissingCompensation)
		}
		if c.FixedCost.Decimal.IsNegative() {
			return fmt.Errorf("fixed cost: %w", ErrNegativeAmount)
		}
	case "":
	default:
		return fmt.Errorf("%w %q", ErrUnknownCompensationMode, c.Mode)
	}
	return nil
}

// ContentOwner is the creator whose content generates the sales.
type ContentOwner struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Active       bool              `json:"active"`
	Compensation OwnerCompensation `json:"compensation"`
}
