package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/internal/metrics"
	"github.com/zoudao/zoudao/internal/repository"
	"github.com/zoudao/zoudao/pkg/errors"
	"github.com/zoudao/zoudao/pkg/labor"
	"github.com/zoudao/zoudao/pkg/logger"
	"github.com/zoudao/zoudao/pkg/model"
	"github.com/zoudao/zoudao/pkg/trend"
)

// LaborHandler 工时分析处理器
// 仓储依赖可为 nil，此时只做纯计算，不读写数据库
type LaborHandler struct {
	standards   *repository.StandardsRepository
	performance *repository.PerformanceRepository
	snapshots   *repository.SnapshotRepository
	picks       *repository.PickRepository

	coverageThreshold float64
	hotPercentile     float64
	farPercentile     float64
}

// NewLaborHandler 创建工时分析处理器
func NewLaborHandler(
	standards *repository.StandardsRepository,
	performance *repository.PerformanceRepository,
	snapshots *repository.SnapshotRepository,
	picks *repository.PickRepository,
	coverageThreshold, hotPercentile, farPercentile float64,
) *LaborHandler {
	return &LaborHandler{
		standards:         standards,
		performance:       performance,
		snapshots:         snapshots,
		picks:             picks,
		coverageThreshold: coverageThreshold,
		hotPercentile:     hotPercentile,
		farPercentile:     farPercentile,
	}
}

// resolveStandards 解析工时标准：内联覆盖 > 存储配置 > 文档默认值
func (h *LaborHandler) resolveStandards(r *http.Request, layoutID string, inline *model.LaborStandards) (labor.ResolvedStandards, *errors.AppError) {
	if inline != nil {
		return labor.Resolve(inline), nil
	}

	if layoutID != "" && h.standards != nil {
		id, err := uuid.Parse(layoutID)
		if err != nil {
			return labor.DefaultStandards(), errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式")
		}
		stored, err := h.standards.GetByLayout(r.Context(), id)
		if err != nil {
			return labor.DefaultStandards(), errors.Wrap(err, errors.CodeDatabaseError, "加载工时标准失败")
		}
		return labor.Resolve(stored), nil
	}

	return labor.DefaultStandards(), nil
}

// standardsSnapshot 将解析后的标准固化为快照
func standardsSnapshot(std labor.ResolvedStandards) model.JSONMap {
	raw, err := json.Marshal(std)
	if err != nil {
		return nil
	}
	var snapshot model.JSONMap
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}
	return snapshot
}

// BreakdownRequest 时间要素分解请求
type BreakdownRequest struct {
	LayoutID      string                `json:"layout_id,omitempty"`
	TotalPicks    int                   `json:"total_picks"`
	TotalWalkFeet float64               `json:"total_walk_feet"`
	UseLegacy     bool                  `json:"use_legacy,omitempty"`
	Standards     *model.LaborStandards `json:"standards,omitempty"`
}

// BreakdownResponse 时间要素分解响应
type BreakdownResponse struct {
	Success bool             `json:"success"`
	Data    *labor.Breakdown `json:"data,omitempty"`
}

// Breakdown 时间要素分解API
func (h *LaborHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req BreakdownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.TotalPicks < 0 {
		respondError(w, errors.InvalidInput("total_picks", "拣货件数不能为负"))
		return
	}
	if req.TotalWalkFeet < 0 {
		respondError(w, errors.InvalidInput("total_walk_feet", "步行距离不能为负"))
		return
	}

	std, appErr := h.resolveStandards(r, req.LayoutID, req.Standards)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordLaborAnalysis("breakdown", false)
		return
	}

	result := labor.CalculateBreakdown(req.TotalPicks, req.TotalWalkFeet, std, req.UseLegacy)
	metrics.RecordLaborAnalysis("breakdown", true)
	respondJSON(w, http.StatusOK, BreakdownResponse{Success: true, Data: result})
}

// EfficiencyRequest 效率计算请求
// records 内联时优先使用（并在提供布局ID时落库），否则按布局ID加载；
// pick_dates 为空时按布局ID从拣货数据推导。
// 记录的 standard_hours 由调用方按当日拣货量与步行距离预计算提交
// （服务端没有逐日步行数据，无法代算）；efficiency_percent 省略时
// 按 standard_hours/actual_hours 推导后落库
type EfficiencyRequest struct {
	LayoutID      string                     `json:"layout_id,omitempty"`
	TotalPicks    int                        `json:"total_picks"`
	TotalWalkFeet float64                    `json:"total_walk_feet"`
	StartDate     string                     `json:"start_date,omitempty"`
	EndDate       string                     `json:"end_date,omitempty"`
	PickDates     []string                   `json:"pick_dates"`
	Records       []*model.PerformanceRecord `json:"records,omitempty"`
	Standards     *model.LaborStandards      `json:"standards,omitempty"`
}

// EfficiencyResponse 效率计算响应
type EfficiencyResponse struct {
	Success bool                    `json:"success"`
	Data    *labor.EfficiencyResult `json:"data,omitempty"`
}

// Efficiency 效率计算API
func (h *LaborHandler) Efficiency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req EfficiencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	for _, d := range req.PickDates {
		if !model.ValidDate(d) {
			respondError(w, errors.InvalidInput("pick_dates", "日期格式无效，应为YYYY-MM-DD: "+d))
			return
		}
	}
	dateRange, appErr := parseDateRange(req.StartDate, req.EndDate)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	std, appErr := h.resolveStandards(r, req.LayoutID, req.Standards)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordLaborAnalysis("efficiency", false)
		return
	}

	pickDates, appErr := h.resolvePickDates(r, req.LayoutID, req.PickDates, dateRange)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordLaborAnalysis("efficiency", false)
		return
	}

	records, appErr := h.resolveRecords(r, req.LayoutID, req.Records, dateRange)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordLaborAnalysis("efficiency", false)
		return
	}

	result := labor.CalculateEfficiency(req.TotalPicks, req.TotalWalkFeet, pickDates, records, std, h.coverageThreshold)

	if req.LayoutID != "" {
		metrics.SetEfficiencyCoverage(req.LayoutID, result.Coverage.CoveragePercent)
	}
	metrics.RecordLaborAnalysis("efficiency", true)
	respondJSON(w, http.StatusOK, EfficiencyResponse{Success: true, Data: result})
}

// fillDerivedEfficiency 补全省略的效率字段
// efficiency_percent = standard_hours / actual_hours × 100，
// 两者齐备且实际工时为正时才推导，调用方显式提交的值不覆盖
func fillDerivedEfficiency(records []*model.PerformanceRecord) {
	for _, rec := range records {
		if rec == nil || rec.EfficiencyPercent != nil {
			continue
		}
		if rec.ActualHours > 0 && rec.StandardHours > 0 {
			eff := rec.StandardHours / rec.ActualHours * 100
			rec.EfficiencyPercent = &eff
		}
	}
}

// resolvePickDates 解析拣货日期：内联优先，其次按布局ID从拣货数据推导
func (h *LaborHandler) resolvePickDates(r *http.Request, layoutID string, inline []string, dateRange model.DateRange) ([]string, *errors.AppError) {
	if len(inline) > 0 {
		return inline, nil
	}
	if layoutID == "" || h.picks == nil {
		return nil, nil
	}

	id, err := uuid.Parse(layoutID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式")
	}
	dates, err := h.picks.DistinctDates(r.Context(), id, dateRange)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "加载拣货日期失败")
	}
	return dates, nil
}

// resolveRecords 解析实绩记录：内联优先（并落库），其次按布局ID查库
// 给定日期范围时只取范围内的记录
func (h *LaborHandler) resolveRecords(r *http.Request, layoutID string, inline []*model.PerformanceRecord, dateRange model.DateRange) ([]*model.PerformanceRecord, *errors.AppError) {
	if len(inline) > 0 {
		fillDerivedEfficiency(inline)
		if layoutID != "" && h.performance != nil {
			id, err := uuid.Parse(layoutID)
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式")
			}
			for _, rec := range inline {
				if rec == nil || !model.ValidDate(rec.Date) {
					continue
				}
				rec.LayoutID = id
				if err := h.performance.Upsert(r.Context(), rec); err != nil {
					logger.WithContext(r.Context()).Warn().Err(err).Str("date", rec.Date).Msg("实绩记录落库失败")
				}
			}
		}
		return inline, nil
	}

	if layoutID == "" || h.performance == nil {
		return nil, nil
	}

	id, err := uuid.Parse(layoutID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式")
	}

	var stored []model.PerformanceRecord
	if dateRange.StartDate != "" || dateRange.EndDate != "" {
		stored, err = h.performance.ListByRange(r.Context(), id, dateRange)
	} else {
		stored, err = h.performance.ListByLayout(r.Context(), id, 0)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "加载实绩记录失败")
	}

	records := make([]*model.PerformanceRecord, len(stored))
	for i := range stored {
		records[i] = &stored[i]
	}
	return records, nil
}

// StaffingRequest 排班测算请求
type StaffingRequest struct {
	LayoutID           string                `json:"layout_id,omitempty"`
	ForecastedPicks    int                   `json:"forecasted_picks"`
	PeriodDays         int                   `json:"period_days"`
	AvgWalkFeetPerPick float64               `json:"avg_walk_feet_per_pick,omitempty"`
	Standards          *model.LaborStandards `json:"standards,omitempty"`
}

// StaffingResponse 排班测算响应
type StaffingResponse struct {
	Success    bool                  `json:"success"`
	Data       *labor.StaffingResult `json:"data,omitempty"`
	SnapshotID string                `json:"snapshot_id,omitempty"`
}

// Staffing 排班测算API
func (h *LaborHandler) Staffing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req StaffingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.ForecastedPicks <= 0 {
		respondError(w, errors.New(errors.CodeInvalidForecast, "预测拣货量必须为正数"))
		return
	}
	if req.PeriodDays <= 0 {
		respondError(w, errors.New(errors.CodeInvalidForecast, "测算周期天数必须为正数"))
		return
	}
	if req.AvgWalkFeetPerPick < 0 {
		respondError(w, errors.InvalidInput("avg_walk_feet_per_pick", "人均步行距离不能为负"))
		return
	}

	std, appErr := h.resolveStandards(r, req.LayoutID, req.Standards)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordLaborAnalysis("staffing", false)
		return
	}

	result := labor.CalculateStaffing(req.ForecastedPicks, req.PeriodDays, req.AvgWalkFeetPerPick, std)

	resp := StaffingResponse{Success: true, Data: result}

	// 有布局ID且配置了数据库时固化测算快照
	if req.LayoutID != "" && h.snapshots != nil {
		if id, err := uuid.Parse(req.LayoutID); err == nil {
			forecast := &model.StaffingForecast{
				LayoutID:           id,
				ForecastedPicks:    result.ForecastedPicks,
				PeriodDays:         result.PeriodDays,
				RequiredHeadcount:  result.RequiredHeadcount,
				TotalLaborHours:    result.TotalLaborHours,
				EstimatedLaborCost: result.EstimatedLaborCost,
				StandardsSnapshot:  standardsSnapshot(std),
			}
			if err := h.snapshots.CreateStaffingForecast(r.Context(), forecast); err != nil {
				logger.WithContext(r.Context()).Warn().Err(err).Msg("排班测算快照落库失败")
			} else {
				resp.SnapshotID = forecast.ID.String()
			}
		}
	}

	metrics.RecordLaborAnalysis("staffing", true)
	respondJSON(w, http.StatusOK, resp)
}

// ItemInput 货品拣货汇总输入
type ItemInput struct {
	ItemID     string  `json:"item_id"`
	Name       string  `json:"name,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	TotalPicks int     `json:"total_picks"`
	Days       int     `json:"days"`
}

// ROIRequest 重储位ROI分析请求
type ROIRequest struct {
	LayoutID  string                `json:"layout_id,omitempty"`
	Items     []ItemInput           `json:"items"`
	Markers   []MarkerInput         `json:"markers,omitempty"`
	Standards *model.LaborStandards `json:"standards,omitempty"`
}

// ROIResponse 重储位ROI分析响应
type ROIResponse struct {
	Success    bool             `json:"success"`
	Data       *labor.ROIResult `json:"data,omitempty"`
	SnapshotID string           `json:"snapshot_id,omitempty"`
}

// ROI 重储位ROI分析API
func (h *LaborHandler) ROI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ROIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	items := make([]model.ItemAggregate, 0, len(req.Items))
	for _, in := range req.Items {
		if in.ItemID == "" {
			respondError(w, errors.InvalidInput("items", "货品ID不能为空"))
			return
		}
		items = append(items, model.ItemAggregate{
			ItemID:     in.ItemID,
			Name:       in.Name,
			X:          in.X,
			Y:          in.Y,
			TotalPicks: in.TotalPicks,
			Days:       in.Days,
		})
	}

	markers, appErr := convertMarkers(req.Markers)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	std, appErr := h.resolveStandards(r, req.LayoutID, req.Standards)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordLaborAnalysis("roi", false)
		return
	}

	result := labor.CalculateROI(items, markers, std, h.hotPercentile, h.farPercentile)

	resp := ROIResponse{Success: true, Data: result}

	// 有布局ID且配置了数据库时固化模拟快照
	if req.LayoutID != "" && h.snapshots != nil && result.Message == "" {
		if id, err := uuid.Parse(req.LayoutID); err == nil {
			sim := &model.ROISimulation{
				LayoutID:           id,
				ItemsToReslot:      result.Implementation.ItemsToReslot,
				DailySavingsFeet:   result.Savings.DailyFeet,
				AnnualSavingsUSD:   result.Savings.AnnualDollars,
				ImplementationCost: result.Implementation.EstimatedCost,
				PaybackDays:        result.Implementation.PaybackDays,
				StandardsSnapshot:  standardsSnapshot(std),
			}
			if err := h.snapshots.CreateROISimulation(r.Context(), sim); err != nil {
				logger.WithContext(r.Context()).Warn().Err(err).Msg("ROI模拟快照落库失败")
			} else {
				resp.SnapshotID = sim.ID.String()
			}
		}
	}

	metrics.RecordLaborAnalysis("roi", true)
	respondJSON(w, http.StatusOK, resp)
}

// TrendsRequest 趋势分析请求
type TrendsRequest struct {
	LayoutID string                     `json:"layout_id,omitempty"`
	Records  []*model.PerformanceRecord `json:"records,omitempty"`
	Limit    int                        `json:"limit,omitempty"`
}

// TrendsResponse 趋势分析响应
type TrendsResponse struct {
	Success bool          `json:"success"`
	Data    *trend.Result `json:"data,omitempty"`
}

// Trends 趋势分析API
func (h *LaborHandler) Trends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req TrendsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	records := req.Records
	fillDerivedEfficiency(records)
	if len(records) == 0 && req.LayoutID != "" && h.performance != nil {
		id, err := uuid.Parse(req.LayoutID)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式"))
			return
		}
		stored, err := h.performance.ListByLayout(r.Context(), id, req.Limit)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "加载实绩记录失败"))
			metrics.RecordLaborAnalysis("trends", false)
			return
		}
		records = make([]*model.PerformanceRecord, len(stored))
		for i := range stored {
			records[i] = &stored[i]
		}
	}

	result := trend.Analyze(records)
	metrics.RecordLaborAnalysis("trends", true)
	respondJSON(w, http.StatusOK, TrendsResponse{Success: true, Data: result})
}

// HistoryRequest 测算历史查询请求
type HistoryRequest struct {
	LayoutID string `json:"layout_id"`
	Limit    int    `json:"limit,omitempty"`
}

// HistoryResponse 测算历史查询响应
type HistoryResponse struct {
	Success           bool                     `json:"success"`
	StaffingForecasts []model.StaffingForecast `json:"staffing_forecasts"`
	ROISimulations    []model.ROISimulation    `json:"roi_simulations"`
}

// History 查询布局的排班测算与ROI模拟历史快照
func (h *LaborHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}
	if h.snapshots == nil {
		respondError(w, errors.New(errors.CodeDatabaseError, "未配置数据库"))
		return
	}

	var req HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	id, err := uuid.Parse(req.LayoutID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式"))
		return
	}

	forecasts, err := h.snapshots.ListStaffingForecasts(r.Context(), id, req.Limit)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "加载排班测算历史失败"))
		return
	}
	sims, err := h.snapshots.ListROISimulations(r.Context(), id, req.Limit)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "加载ROI模拟历史失败"))
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{
		Success:           true,
		StaffingForecasts: forecasts,
		ROISimulations:    sims,
	})
}
