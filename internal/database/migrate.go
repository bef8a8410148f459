package database

import (
	"context"
	"fmt"

	"github.com/zoudao/zoudao/pkg/logger"
)

// 表结构定义
// 标记由布局编辑器写入，本服务只读；实绩按 (layout_id, date) 幂等 upsert；
// 测算与模拟快照只插入不更新
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS route_markers (
		id UUID PRIMARY KEY,
		layout_id UUID NOT NULL,
		type VARCHAR(20) NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		label VARCHAR(100) NOT NULL DEFAULT '',
		sequence_order INTEGER,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_route_markers_layout ON route_markers (layout_id)`,

	`CREATE TABLE IF NOT EXISTS pick_transactions (
		id UUID PRIMARY KEY,
		layout_id UUID NOT NULL,
		location_id VARCHAR(100) NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		pick_date DATE NOT NULL,
		pick_count INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pick_transactions_layout_date ON pick_transactions (layout_id, pick_date)`,

	`CREATE TABLE IF NOT EXISTS labor_standards (
		id UUID PRIMARY KEY,
		layout_id UUID NOT NULL UNIQUE,
		pick_time_seconds DOUBLE PRECISION,
		pack_time_seconds DOUBLE PRECISION,
		putaway_time_seconds DOUBLE PRECISION,
		pick_item_seconds DOUBLE PRECISION,
		tote_time_seconds DOUBLE PRECISION,
		scan_time_seconds DOUBLE PRECISION,
		walk_speed_fpm DOUBLE PRECISION,
		fatigue_allowance_percent DOUBLE PRECISION,
		delay_allowance_percent DOUBLE PRECISION,
		reslot_time_minutes DOUBLE PRECISION,
		hourly_labor_rate DOUBLE PRECISION,
		benefits_multiplier DOUBLE PRECISION,
		shift_hours DOUBLE PRECISION,
		target_efficiency_percent DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS performance_records (
		id UUID PRIMARY KEY,
		layout_id UUID NOT NULL,
		record_date VARCHAR(10) NOT NULL,
		actual_picks INTEGER NOT NULL,
		actual_hours DOUBLE PRECISION NOT NULL,
		standard_hours DOUBLE PRECISION NOT NULL,
		efficiency_percent DOUBLE PRECISION,
		walk_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		pick_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		allowance_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (layout_id, record_date)
	)`,

	`CREATE TABLE IF NOT EXISTS staffing_forecasts (
		id UUID PRIMARY KEY,
		layout_id UUID NOT NULL,
		forecasted_picks INTEGER NOT NULL,
		period_days INTEGER NOT NULL,
		required_headcount INTEGER NOT NULL,
		total_labor_hours DOUBLE PRECISION NOT NULL,
		estimated_labor_cost DOUBLE PRECISION NOT NULL,
		standards_snapshot JSONB,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS roi_simulations (
		id UUID PRIMARY KEY,
		layout_id UUID NOT NULL,
		items_to_reslot INTEGER NOT NULL,
		daily_savings_feet DOUBLE PRECISION NOT NULL,
		annual_savings_usd DOUBLE PRECISION NOT NULL,
		implementation_cost DOUBLE PRECISION NOT NULL,
		payback_days INTEGER NOT NULL,
		standards_snapshot JSONB,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate 创建缺失的表结构
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("执行迁移 %d 失败: %w", i+1, err)
		}
	}

	logger.Info().Int("statements", len(migrations)).Msg("数据库迁移完成")
	return nil
}
