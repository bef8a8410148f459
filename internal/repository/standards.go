package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/pkg/model"
)

// StandardsRepository 工时标准仓储
type StandardsRepository struct {
	db DB
}

// NewStandardsRepository 创建工时标准仓储
func NewStandardsRepository(db DB) *StandardsRepository {
	return &StandardsRepository{db: db}
}

// GetByLayout 获取布局的工时标准，不存在返回 nil
func (r *StandardsRepository) GetByLayout(ctx context.Context, layoutID uuid.UUID) (*model.LaborStandards, error) {
	query := `
		SELECT id, layout_id,
		       pick_time_seconds, pack_time_seconds, putaway_time_seconds,
		       pick_item_seconds, tote_time_seconds, scan_time_seconds,
		       walk_speed_fpm,
		       fatigue_allowance_percent, delay_allowance_percent,
		       reslot_time_minutes,
		       hourly_labor_rate, benefits_multiplier,
		       shift_hours, target_efficiency_percent,
		       created_at, updated_at
		FROM labor_standards
		WHERE layout_id = $1
	`

	var s model.LaborStandards
	err := r.db.QueryRowContext(ctx, query, layoutID).Scan(
		&s.ID, &s.LayoutID,
		&s.PickTimeSeconds, &s.PackTimeSeconds, &s.PutawayTimeSeconds,
		&s.PickItemSeconds, &s.ToteTimeSeconds, &s.ScanTimeSeconds,
		&s.WalkSpeedFpm,
		&s.FatigueAllowancePercent, &s.DelayAllowancePercent,
		&s.ReslotTimeMinutes,
		&s.HourlyLaborRate, &s.BenefitsMultiplier,
		&s.ShiftHours, &s.TargetEfficiencyPercent,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询工时标准失败: %w", err)
	}

	return &s, nil
}

// Upsert 写入布局的工时标准
// 每个布局一行，冲突时整体覆盖；传 nil 的字段回落为"使用默认值"
func (r *StandardsRepository) Upsert(ctx context.Context, s *model.LaborStandards) error {
	if s.ID == uuid.Nil {
		s.BaseModel = model.NewBaseModel()
	}

	query := `
		INSERT INTO labor_standards (
			id, layout_id,
			pick_time_seconds, pack_time_seconds, putaway_time_seconds,
			pick_item_seconds, tote_time_seconds, scan_time_seconds,
			walk_speed_fpm,
			fatigue_allowance_percent, delay_allowance_percent,
			reslot_time_minutes,
			hourly_labor_rate, benefits_multiplier,
			shift_hours, target_efficiency_percent,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (layout_id) DO UPDATE SET
			pick_time_seconds = EXCLUDED.pick_time_seconds,
			pack_time_seconds = EXCLUDED.pack_time_seconds,
			putaway_time_seconds = EXCLUDED.putaway_time_seconds,
			pick_item_seconds = EXCLUDED.pick_item_seconds,
			tote_time_seconds = EXCLUDED.tote_time_seconds,
			scan_time_seconds = EXCLUDED.scan_time_seconds,
			walk_speed_fpm = EXCLUDED.walk_speed_fpm,
			fatigue_allowance_percent = EXCLUDED.fatigue_allowance_percent,
			delay_allowance_percent = EXCLUDED.delay_allowance_percent,
			reslot_time_minutes = EXCLUDED.reslot_time_minutes,
			hourly_labor_rate = EXCLUDED.hourly_labor_rate,
			benefits_multiplier = EXCLUDED.benefits_multiplier,
			shift_hours = EXCLUDED.shift_hours,
			target_efficiency_percent = EXCLUDED.target_efficiency_percent,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.LayoutID,
		s.PickTimeSeconds, s.PackTimeSeconds, s.PutawayTimeSeconds,
		s.PickItemSeconds, s.ToteTimeSeconds, s.ScanTimeSeconds,
		s.WalkSpeedFpm,
		s.FatigueAllowancePercent, s.DelayAllowancePercent,
		s.ReslotTimeMinutes,
		s.HourlyLaborRate, s.BenefitsMultiplier,
		s.ShiftHours, s.TargetEfficiencyPercent,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("写入工时标准失败: %w", err)
	}

	return nil
}
