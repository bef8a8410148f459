package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/pkg/model"
)

// SnapshotRepository 测算快照仓储
// 排班测算与重储位ROI模拟只追加，创建后不可修改
type SnapshotRepository struct {
	db DB
}

// NewSnapshotRepository 创建测算快照仓储
func NewSnapshotRepository(db DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// CreateStaffingForecast 保存排班测算快照
func (r *SnapshotRepository) CreateStaffingForecast(ctx context.Context, f *model.StaffingForecast) error {
	if f.ID == uuid.Nil {
		f.BaseModel = model.NewBaseModel()
	}

	query := `
		INSERT INTO staffing_forecasts (
			id, layout_id, forecasted_picks, period_days,
			required_headcount, total_labor_hours, estimated_labor_cost,
			standards_snapshot, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.LayoutID, f.ForecastedPicks, f.PeriodDays,
		f.RequiredHeadcount, f.TotalLaborHours, f.EstimatedLaborCost,
		f.StandardsSnapshot, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("保存排班测算快照失败: %w", err)
	}

	return nil
}

// ListStaffingForecasts 按创建时间倒序获取布局的排班测算快照
func (r *SnapshotRepository) ListStaffingForecasts(ctx context.Context, layoutID uuid.UUID, limit int) ([]model.StaffingForecast, error) {
	query := `
		SELECT id, layout_id, forecasted_picks, period_days,
		       required_headcount, total_labor_hours, estimated_labor_cost,
		       standards_snapshot, created_at
		FROM staffing_forecasts
		WHERE layout_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{layoutID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询排班测算快照失败: %w", err)
	}
	defer rows.Close()

	var forecasts []model.StaffingForecast
	for rows.Next() {
		var f model.StaffingForecast
		if err := rows.Scan(
			&f.ID, &f.LayoutID, &f.ForecastedPicks, &f.PeriodDays,
			&f.RequiredHeadcount, &f.TotalLaborHours, &f.EstimatedLaborCost,
			&f.StandardsSnapshot, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描排班测算快照失败: %w", err)
		}
		forecasts = append(forecasts, f)
	}

	return forecasts, rows.Err()
}

// CreateROISimulation 保存重储位ROI模拟快照
func (r *SnapshotRepository) CreateROISimulation(ctx context.Context, sim *model.ROISimulation) error {
	if sim.ID == uuid.Nil {
		sim.BaseModel = model.NewBaseModel()
	}

	query := `
		INSERT INTO roi_simulations (
			id, layout_id, items_to_reslot, daily_savings_feet,
			annual_savings_usd, implementation_cost, payback_days,
			standards_snapshot, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		sim.ID, sim.LayoutID, sim.ItemsToReslot, sim.DailySavingsFeet,
		sim.AnnualSavingsUSD, sim.ImplementationCost, sim.PaybackDays,
		sim.StandardsSnapshot, sim.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("保存ROI模拟快照失败: %w", err)
	}

	return nil
}

// ListROISimulations 按创建时间倒序获取布局的ROI模拟快照
func (r *SnapshotRepository) ListROISimulations(ctx context.Context, layoutID uuid.UUID, limit int) ([]model.ROISimulation, error) {
	query := `
		SELECT id, layout_id, items_to_reslot, daily_savings_feet,
		       annual_savings_usd, implementation_cost, payback_days,
		       standards_snapshot, created_at
		FROM roi_simulations
		WHERE layout_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{layoutID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询ROI模拟快照失败: %w", err)
	}
	defer rows.Close()

	var sims []model.ROISimulation
	for rows.Next() {
		var sim model.ROISimulation
		if err := rows.Scan(
			&sim.ID, &sim.LayoutID, &sim.ItemsToReslot, &sim.DailySavingsFeet,
			&sim.AnnualSavingsUSD, &sim.ImplementationCost, &sim.PaybackDays,
			&sim.StandardsSnapshot, &sim.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描ROI模拟快照失败: %w", err)
		}
		sims = append(sims, sim)
	}

	return sims, rows.Err()
}
