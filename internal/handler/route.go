// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/internal/metrics"
	"github.com/zoudao/zoudao/internal/repository"
	"github.com/zoudao/zoudao/pkg/errors"
	"github.com/zoudao/zoudao/pkg/labor"
	"github.com/zoudao/zoudao/pkg/logger"
	"github.com/zoudao/zoudao/pkg/model"
	"github.com/zoudao/zoudao/pkg/routing"
	"github.com/zoudao/zoudao/pkg/validator"
)

// RouteHandler 步行距离处理器
// 仓储依赖可为 nil，此时只接受请求体内联的标记与拣货数据
type RouteHandler struct {
	engine    *routing.Engine
	markers   *repository.MarkerRepository
	picks     *repository.PickRepository
	standards *repository.StandardsRepository
	log       *logger.EngineLogger
}

// NewRouteHandler 创建步行距离处理器
func NewRouteHandler(
	markers *repository.MarkerRepository,
	picks *repository.PickRepository,
	standards *repository.StandardsRepository,
) *RouteHandler {
	return &RouteHandler{
		engine:    routing.NewEngine(),
		markers:   markers,
		picks:     picks,
		standards: standards,
		log:       logger.NewEngineLogger(),
	}
}

// MarkerInput 路线标记输入
type MarkerInput struct {
	ID            string  `json:"id,omitempty"`
	Type          string  `json:"type"` // start_point/stop_point/cart_parking
	X             float64 `json:"x"`    // 英寸
	Y             float64 `json:"y"`    // 英寸
	Label         string  `json:"label,omitempty"`
	SequenceOrder *int    `json:"sequence_order,omitempty"`
}

// PickInput 拣货记录输入
type PickInput struct {
	LocationID string  `json:"location_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Date       string  `json:"date"` // YYYY-MM-DD
	PickCount  int     `json:"pick_count,omitempty"`
}

// WalkDistanceRequest 步行距离计算请求
// markers/picks 内联时直接计算；为空且提供 layout_id 时从数据库加载
type WalkDistanceRequest struct {
	LayoutID     string        `json:"layout_id,omitempty"`
	StartDate    string        `json:"start_date,omitempty"`
	EndDate      string        `json:"end_date,omitempty"`
	WalkSpeedFpm float64       `json:"walk_speed_fpm,omitempty"`
	Markers      []MarkerInput `json:"markers,omitempty"`
	Picks        []PickInput   `json:"picks,omitempty"`
}

// WalkDistanceResponse 步行距离计算响应
type WalkDistanceResponse struct {
	Success bool            `json:"success"`
	Data    *routing.Result `json:"data,omitempty"`
}

// WalkDistance 计算日期范围内的步行距离
func (h *RouteHandler) WalkDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req WalkDistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	dateRange, appErr := parseDateRange(req.StartDate, req.EndDate)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	markers, appErr := h.resolveMarkers(r, req)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	picks, appErr := h.resolvePicks(r, req, dateRange)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	walkSpeed, appErr := h.resolveWalkSpeed(r, req.LayoutID, req.WalkSpeedFpm)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	h.log.StartCalculation(req.LayoutID, len(markers), len(picks))

	start := time.Now()
	result := h.engine.Calculate(markers, picks, dateRange, walkSpeed)
	duration := time.Since(start)

	if result.Missing != nil {
		h.log.MissingMarkers(req.LayoutID, result.Message)
	} else {
		h.log.CalculationComplete(req.LayoutID, duration, len(result.DailyBreakdown), result.TotalDistanceFeet)
	}

	metrics.RecordRouteCalculation(true, duration)
	if req.LayoutID != "" {
		metrics.SetRouteTotalDistance(req.LayoutID, result.TotalDistanceFeet)
	}

	respondJSON(w, http.StatusOK, WalkDistanceResponse{Success: true, Data: result})
}

// resolveWalkSpeed 解析步行速度：内联值 > 布局存储标准 > 文档默认值
// 缺省不等于零，零速会把预计耗时静默归零
func (h *RouteHandler) resolveWalkSpeed(r *http.Request, layoutID string, inline float64) (float64, *errors.AppError) {
	if inline > 0 {
		return inline, nil
	}

	if layoutID != "" && h.standards != nil {
		id, err := uuid.Parse(layoutID)
		if err != nil {
			return 0, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式")
		}
		stored, err := h.standards.GetByLayout(r.Context(), id)
		if err != nil {
			return 0, errors.Wrap(err, errors.CodeDatabaseError, "加载工时标准失败")
		}
		return labor.Resolve(stored).WalkSpeedFpm, nil
	}

	return labor.DefaultStandards().WalkSpeedFpm, nil
}

// resolveMarkers 解析标记：内联优先，其次按布局ID查库
func (h *RouteHandler) resolveMarkers(r *http.Request, req WalkDistanceRequest) ([]*model.RouteMarker, *errors.AppError) {
	if len(req.Markers) > 0 {
		return convertMarkers(req.Markers)
	}

	if req.LayoutID == "" || h.markers == nil {
		return nil, nil
	}

	layoutID, err := uuid.Parse(req.LayoutID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式")
	}

	markers, err := h.markers.ListByLayout(r.Context(), layoutID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "加载路线标记失败")
	}
	return markers, nil
}

// resolvePicks 解析拣货记录：内联优先，其次按布局ID查库
func (h *RouteHandler) resolvePicks(r *http.Request, req WalkDistanceRequest, dateRange model.DateRange) ([]model.PickRow, *errors.AppError) {
	if len(req.Picks) > 0 {
		return convertPicks(req.Picks)
	}

	if req.LayoutID == "" || h.picks == nil {
		return nil, nil
	}

	layoutID, err := uuid.Parse(req.LayoutID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式")
	}

	picks, err := h.picks.ListByLayoutAndRange(r.Context(), layoutID, dateRange)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "加载拣货记录失败")
	}
	return picks, nil
}

// convertMarkers 转换并校验标记输入
func convertMarkers(inputs []MarkerInput) ([]*model.RouteMarker, *errors.AppError) {
	markers := make([]*model.RouteMarker, 0, len(inputs))
	for _, in := range inputs {
		mt := model.MarkerType(in.Type)
		if !mt.Valid() {
			return nil, errors.InvalidInput("markers", "未知的标记类型: "+in.Type)
		}
		m := &model.RouteMarker{
			Type:          mt,
			X:             in.X,
			Y:             in.Y,
			Label:         in.Label,
			SequenceOrder: in.SequenceOrder,
		}
		if in.ID != "" {
			id, err := uuid.Parse(in.ID)
			if err != nil {
				return nil, errors.InvalidInput("markers", "无效的标记ID格式: "+in.ID)
			}
			m.ID = id
		}
		if !m.HasFiniteCoords() {
			return nil, errors.InvalidInput("markers", "标记坐标必须是有限数值")
		}
		markers = append(markers, m)
	}
	return markers, nil
}

// convertPicks 转换并校验拣货输入
func convertPicks(inputs []PickInput) ([]model.PickRow, *errors.AppError) {
	picks := make([]model.PickRow, 0, len(inputs))
	for _, in := range inputs {
		picks = append(picks, model.PickRow{
			LocationID: in.LocationID,
			X:          in.X,
			Y:          in.Y,
			Date:       in.Date,
			PickCount:  in.PickCount,
		})
	}

	if issues := validator.ValidatePicks(picks); issues.HasErrors() {
		return nil, errors.New(errors.CodeValidationFail, "拣货数据验证失败").
			WithField("issues", issues.Errors())
	}
	return picks, nil
}

// parseDateRange 解析并校验日期范围
func parseDateRange(startDate, endDate string) (model.DateRange, *errors.AppError) {
	dr := model.DateRange{StartDate: startDate, EndDate: endDate}
	if dr.StartDate != "" && !model.ValidDate(dr.StartDate) {
		return dr, errors.InvalidDateRange("开始日期格式无效，应为YYYY-MM-DD")
	}
	if dr.EndDate != "" && !model.ValidDate(dr.EndDate) {
		return dr, errors.InvalidDateRange("结束日期格式无效，应为YYYY-MM-DD")
	}
	if dr.StartDate != "" && dr.EndDate != "" && dr.EndDate < dr.StartDate {
		return dr, errors.InvalidDateRange("结束日期不能早于开始日期")
	}
	return dr, nil
}
