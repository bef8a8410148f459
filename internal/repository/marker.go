package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/pkg/model"
)

// MarkerRepository 路线标记仓储
// 标记由布局编辑器写入，计算引擎只读
type MarkerRepository struct {
	db DB
}

// NewMarkerRepository 创建路线标记仓储
func NewMarkerRepository(db DB) *MarkerRepository {
	return &MarkerRepository{db: db}
}

// ListByLayout 获取布局的全部标记
// 停靠点按 sequence_order（空值靠后）、创建时间排序，保证输入顺序确定
func (r *MarkerRepository) ListByLayout(ctx context.Context, layoutID uuid.UUID) ([]*model.RouteMarker, error) {
	query := `
		SELECT id, layout_id, type, x, y, label, sequence_order, created_at, updated_at
		FROM route_markers
		WHERE layout_id = $1 AND deleted_at IS NULL
		ORDER BY sequence_order NULLS LAST, created_at
	`

	rows, err := r.db.QueryContext(ctx, query, layoutID)
	if err != nil {
		return nil, fmt.Errorf("查询路线标记失败: %w", err)
	}
	defer rows.Close()

	var markers []*model.RouteMarker
	for rows.Next() {
		m := &model.RouteMarker{}
		if err := rows.Scan(
			&m.ID, &m.LayoutID, &m.Type, &m.X, &m.Y, &m.Label, &m.SequenceOrder,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描路线标记失败: %w", err)
		}
		markers = append(markers, m)
	}

	return markers, rows.Err()
}

// ReplaceForLayout 整体替换布局的标记（布局编辑器保存）
func (r *MarkerRepository) ReplaceForLayout(ctx context.Context, layoutID uuid.UUID, markers []*model.RouteMarker) error {
	now := time.Now()

	if _, err := r.db.ExecContext(ctx,
		`UPDATE route_markers SET deleted_at = $2 WHERE layout_id = $1 AND deleted_at IS NULL`,
		layoutID, now,
	); err != nil {
		return fmt.Errorf("清除旧标记失败: %w", err)
	}

	query := `
		INSERT INTO route_markers (id, layout_id, type, x, y, label, sequence_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, m := range markers {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.LayoutID = layoutID
		m.CreatedAt = now
		m.UpdatedAt = now

		if _, err := r.db.ExecContext(ctx, query,
			m.ID, m.LayoutID, m.Type, m.X, m.Y, m.Label, m.SequenceOrder, m.CreatedAt, m.UpdatedAt,
		); err != nil {
			return fmt.Errorf("写入路线标记失败: %w", err)
		}
	}

	return nil
}
