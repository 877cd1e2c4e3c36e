package postgresql

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewPayrollSettingsRepository(db *database.DB) payroll.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSettings(ctx context.Context, tenantID string) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tenant_id, late_deduction_per_minute, created_at, updated_at
		FROM payroll_settings
		WHERE tenant_id = $1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query, tenantID).Scan(&s.TenantID, &s.LateDeductionPerMinute, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return s, nil
}

func (r *settingsRepository) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (tenant_id, late_deduction_per_minute)
		VALUES ($1, $2)
		ON CONFLICT (tenant_id) DO UPDATE SET
			late_deduction_per_minute = EXCLUDED.late_deduction_per_minute,
			updated_at = NOW()
		RETURNING tenant_id, late_deduction_per_minute, created_at, updated_at
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query, settings.TenantID, settings.LateDeductionPerMinute).
		Scan(&s.TenantID, &s.LateDeductionPerMinute, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}
	return s, nil
}
