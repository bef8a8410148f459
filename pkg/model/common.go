// Package model 定义步行分析引擎的核心数据模型
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JSONMap 用于存储 JSONB 数据
type JSONMap map[string]interface{}

// Value 实现 driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("JSONMap 不支持的扫描类型: %T", src)
	}
	return json.Unmarshal(b, m)
}

// DateRange 日期范围
type DateRange struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// IsZero 检查日期范围是否为空
func (dr DateRange) IsZero() bool {
	return dr.StartDate == "" && dr.EndDate == ""
}

// Contains 检查日期（YYYY-MM-DD）是否落在范围内，空边界视为开放
func (dr DateRange) Contains(date string) bool {
	if dr.StartDate != "" && date < dr.StartDate {
		return false
	}
	if dr.EndDate != "" && date > dr.EndDate {
		return false
	}
	return true
}

// Days 返回范围覆盖的天数（含首尾），解析失败返回0
func (dr DateRange) Days() int {
	if dr.StartDate == "" || dr.EndDate == "" {
		return 0
	}
	start, err1 := time.Parse("2006-01-02", dr.StartDate)
	end, err2 := time.Parse("2006-01-02", dr.EndDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// ValidDate 检查日期字符串是否为合法的 YYYY-MM-DD
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
