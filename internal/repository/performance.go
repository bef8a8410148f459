package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/pkg/model"
)

// PerformanceRepository 每日实绩仓储
type PerformanceRepository struct {
	db DB
}

// NewPerformanceRepository 创建每日实绩仓储
func NewPerformanceRepository(db DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// Upsert 写入某布局某天的实绩，重复提交以后值覆盖
func (r *PerformanceRepository) Upsert(ctx context.Context, rec *model.PerformanceRecord) error {
	if rec.ID == uuid.Nil {
		rec.BaseModel = model.NewBaseModel()
	}

	query := `
		INSERT INTO performance_records (
			id, layout_id, record_date,
			actual_picks, actual_hours, standard_hours, efficiency_percent,
			walk_hours, pick_hours, allowance_hours,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (layout_id, record_date) DO UPDATE SET
			actual_picks = EXCLUDED.actual_picks,
			actual_hours = EXCLUDED.actual_hours,
			standard_hours = EXCLUDED.standard_hours,
			efficiency_percent = EXCLUDED.efficiency_percent,
			walk_hours = EXCLUDED.walk_hours,
			pick_hours = EXCLUDED.pick_hours,
			allowance_hours = EXCLUDED.allowance_hours,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.LayoutID, rec.Date,
		rec.ActualPicks, rec.ActualHours, rec.StandardHours, rec.EfficiencyPercent,
		rec.WalkHours, rec.PickHours, rec.AllowanceHours,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("写入实绩记录失败: %w", err)
	}

	return nil
}

// ListByLayout 按日期倒序获取布局的实绩记录，limit<=0 表示不限
func (r *PerformanceRepository) ListByLayout(ctx context.Context, layoutID uuid.UUID, limit int) ([]model.PerformanceRecord, error) {
	query := `
		SELECT id, layout_id, record_date,
		       actual_picks, actual_hours, standard_hours, efficiency_percent,
		       walk_hours, pick_hours, allowance_hours,
		       created_at, updated_at
		FROM performance_records
		WHERE layout_id = $1
		ORDER BY record_date DESC
	`
	args := []interface{}{layoutID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询实绩记录失败: %w", err)
	}
	defer rows.Close()

	return scanPerformanceRows(rows)
}

// ListByRange 获取布局在日期范围内的实绩记录，按日期升序
func (r *PerformanceRepository) ListByRange(ctx context.Context, layoutID uuid.UUID, dateRange model.DateRange) ([]model.PerformanceRecord, error) {
	query := `
		SELECT id, layout_id, record_date,
		       actual_picks, actual_hours, standard_hours, efficiency_percent,
		       walk_hours, pick_hours, allowance_hours,
		       created_at, updated_at
		FROM performance_records
		WHERE layout_id = $1
		  AND ($2 = '' OR record_date >= $2)
		  AND ($3 = '' OR record_date <= $3)
		ORDER BY record_date
	`

	rows, err := r.db.QueryContext(ctx, query, layoutID, dateRange.StartDate, dateRange.EndDate)
	if err != nil {
		return nil, fmt.Errorf("查询实绩记录失败: %w", err)
	}
	defer rows.Close()

	return scanPerformanceRows(rows)
}

func scanPerformanceRows(rows *sql.Rows) ([]model.PerformanceRecord, error) {
	var records []model.PerformanceRecord
	for rows.Next() {
		var rec model.PerformanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.LayoutID, &rec.Date,
			&rec.ActualPicks, &rec.ActualHours, &rec.StandardHours, &rec.EfficiencyPercent,
			&rec.WalkHours, &rec.PickHours, &rec.AllowanceHours,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描实绩记录失败: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
