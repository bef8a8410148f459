package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/pkg/model"
)

// PickRepository 拣货记录仓储
type PickRepository struct {
	db DB
}

// appendDateBounds 按日期范围拼接比较条件，空边界表示开放区间
// 边界缺省时不生成对应子句，避免对空串做日期转换
func appendDateBounds(query, column string, dateRange model.DateRange, args []interface{}) (string, []interface{}) {
	if dateRange.StartDate != "" {
		args = append(args, dateRange.StartDate)
		query += fmt.Sprintf(" AND %s >= $%d::date", column, len(args))
	}
	if dateRange.EndDate != "" {
		args = append(args, dateRange.EndDate)
		query += fmt.Sprintf(" AND %s <= $%d::date", column, len(args))
	}
	return query, args
}

// NewPickRepository 创建拣货记录仓储
func NewPickRepository(db DB) *PickRepository {
	return &PickRepository{db: db}
}

// ListByLayoutAndRange 获取布局在日期范围内的拣货记录
// 空边界表示开放区间；日期统一以 YYYY-MM-DD 字符串返回
func (r *PickRepository) ListByLayoutAndRange(ctx context.Context, layoutID uuid.UUID, dateRange model.DateRange) ([]model.PickRow, error) {
	query := `
		SELECT location_id, x, y, to_char(pick_date, 'YYYY-MM-DD'), pick_count
		FROM pick_transactions
		WHERE layout_id = $1`
	args := []interface{}{layoutID}
	query, args = appendDateBounds(query, "pick_date", dateRange, args)
	query += " ORDER BY pick_date, created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询拣货记录失败: %w", err)
	}
	defer rows.Close()

	var picks []model.PickRow
	for rows.Next() {
		var p model.PickRow
		if err := rows.Scan(&p.LocationID, &p.X, &p.Y, &p.Date, &p.PickCount); err != nil {
			return nil, fmt.Errorf("扫描拣货记录失败: %w", err)
		}
		picks = append(picks, p)
	}

	return picks, rows.Err()
}

// DistinctDates 获取布局在日期范围内有拣货数据的不重复日期
func (r *PickRepository) DistinctDates(ctx context.Context, layoutID uuid.UUID, dateRange model.DateRange) ([]string, error) {
	query := `
		SELECT DISTINCT to_char(pick_date, 'YYYY-MM-DD')
		FROM pick_transactions
		WHERE layout_id = $1`
	args := []interface{}{layoutID}
	query, args = appendDateBounds(query, "pick_date", dateRange, args)
	query += " ORDER BY 1"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询拣货日期失败: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("扫描拣货日期失败: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}
