package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DeductionPolicy turns late minutes into money.
type DeductionPolicy interface {
	Deduction(ctx context.Context, tenantID string, lateMinutes int) (decimal.Decimal, error)
}

// FixedRatePolicy charges the same amount per late minute for every tenant.
type FixedRatePolicy struct {
	RatePerMinute decimal.Decimal
}

func NewFixedRatePolicy(rate decimal.Decimal) FixedRatePolicy {
	return FixedRatePolicy{RatePerMinute: rate}
}

func (p FixedRatePolicy) Deduction(_ context.Context, _ string, lateMinutes int) (decimal.Decimal, error) {
	return amount(p.RatePerMinute, lateMinutes), nil
}

// SettingsReader is the slice of SettingsRepository that SettingsPolicy needs.
type SettingsReader interface {
	GetSettings(ctx context.Context, tenantID string) (Settings, error)
}

// SettingsPolicy uses the tenant's configured rate and falls back to a fixed rate
// for tenants without settings.
type SettingsPolicy struct {
	settings SettingsReader
	fallback FixedRatePolicy
}

func NewSettingsPolicy(settings SettingsReader, fallback FixedRatePolicy) *SettingsPolicy {
	return &SettingsPolicy{settings: settings, fallback: fallback}
}

func (p *SettingsPolicy) Deduction(ctx context.Context, tenantID string, lateMinutes int) (decimal.Decimal, error) {
	s, err := p.settings.GetSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return p.fallback.Deduction(ctx, tenantID, lateMinutes)
		}
		return decimal.Zero, fmt.Errorf("failed to load payroll settings: %w", err)
	}
	return amount(s.LateDeductionPerMinute, lateMinutes), nil
}

func amount(rate decimal.Decimal, lateMinutes int) decimal.Decimal {
	if lateMinutes <= 0 {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(lateMinutes))).Round(2)
}
