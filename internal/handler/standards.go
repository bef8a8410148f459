package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/internal/repository"
	"github.com/zoudao/zoudao/pkg/errors"
	"github.com/zoudao/zoudao/pkg/labor"
	"github.com/zoudao/zoudao/pkg/model"
)

// StandardDefinition 工时标准字段定义
type StandardDefinition struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	Default     float64 `json:"default"`
	Description string  `json:"description"`
}

// StandardsLibraryResponse 工时标准库响应
type StandardsLibraryResponse struct {
	Library []StandardDefinition `json:"library"`
}

// GetStandardsLibrary 返回全部工时标准字段定义与文档默认值
func GetStandardsLibrary() []StandardDefinition {
	defaults := labor.DefaultStandards()
	return []StandardDefinition{
		// =====================================================
		// 旧版合并工时
		// =====================================================
		{
			Name:        "pick_time_seconds",
			DisplayName: "拣选工时（合并口径）",
			Category:    "旧版工时",
			Unit:        "秒/件",
			Default:     defaults.PickTimeSeconds,
			Description: "旧版合并口径下的单件拣选时间，与包装、上架工时一起构成单件总工时。",
		},
		{
			Name:        "pack_time_seconds",
			DisplayName: "包装工时（合并口径）",
			Category:    "旧版工时",
			Unit:        "秒/件",
			Default:     defaults.PackTimeSeconds,
			Description: "旧版合并口径下的单件包装时间。",
		},
		{
			Name:        "putaway_time_seconds",
			DisplayName: "上架工时（合并口径）",
			Category:    "旧版工时",
			Unit:        "秒/件",
			Default:     defaults.PutawayTimeSeconds,
			Description: "旧版合并口径下的单件上架时间。",
		},
		// =====================================================
		// 细分工时
		// =====================================================
		{
			Name:        "pick_item_seconds",
			DisplayName: "拣选工时",
			Category:    "细分工时",
			Unit:        "秒/件",
			Default:     defaults.PickItemSeconds,
			Description: "从库位取出单件货品的时间，不含步行与扫码。",
		},
		{
			Name:        "tote_time_seconds",
			DisplayName: "周转箱处理工时",
			Category:    "细分工时",
			Unit:        "秒/件",
			Default:     defaults.ToteTimeSeconds,
			Description: "单件货品的周转箱放置与整理时间。",
		},
		{
			Name:        "scan_time_seconds",
			DisplayName: "扫码工时",
			Category:    "细分工时",
			Unit:        "秒/件",
			Default:     defaults.ScanTimeSeconds,
			Description: "单件货品的条码扫描与确认时间。",
		},
		// =====================================================
		// 步行与宽放
		// =====================================================
		{
			Name:        "walk_speed_fpm",
			DisplayName: "步行速度",
			Category:    "步行",
			Unit:        "英尺/分钟",
			Default:     defaults.WalkSpeedFpm,
			Description: "拣货员平均步行速度，264英尺/分钟约合3英里/小时。用于将步行距离换算为步行工时。",
		},
		{
			Name:        "fatigue_allowance_percent",
			DisplayName: "疲劳宽放率",
			Category:    "PFD宽放",
			Unit:        "%",
			Default:     defaults.FatigueAllowancePercent,
			Description: "疲劳恢复宽放，按基础工时的百分比追加。",
		},
		{
			Name:        "delay_allowance_percent",
			DisplayName: "延误宽放率",
			Category:    "PFD宽放",
			Unit:        "%",
			Default:     defaults.DelayAllowancePercent,
			Description: "不可避免延误宽放（设备等待、通道拥堵等），按基础工时的百分比追加。",
		},
		// =====================================================
		// 重储位
		// =====================================================
		{
			Name:        "reslot_time_minutes",
			DisplayName: "重储位耗时",
			Category:    "重储位",
			Unit:        "分钟/件",
			Default:     defaults.ReslotTimeMinutes,
			Description: "将一个货品迁移到新库位的平均耗时，用于ROI分析的实施成本估算。",
		},
		// =====================================================
		// 成本与排班
		// =====================================================
		{
			Name:        "hourly_labor_rate",
			DisplayName: "小时工资",
			Category:    "成本",
			Unit:        "美元/小时",
			Default:     defaults.HourlyLaborRate,
			Description: "拣货员基础小时工资，不含福利。",
		},
		{
			Name:        "benefits_multiplier",
			DisplayName: "福利乘数",
			Category:    "成本",
			Unit:        "倍",
			Default:     defaults.BenefitsMultiplier,
			Description: "含福利的综合成本乘数，综合小时成本 = 小时工资 × 福利乘数。",
		},
		{
			Name:        "shift_hours",
			DisplayName: "班次时长",
			Category:    "排班",
			Unit:        "小时",
			Default:     defaults.ShiftHours,
			Description: "单个班次的工作时长，用于排班测算的人均可用工时。",
		},
		{
			Name:        "target_efficiency_percent",
			DisplayName: "目标效率",
			Category:    "排班",
			Unit:        "%",
			Default:     defaults.TargetEfficiencyPercent,
			Description: "排班测算假定的人员效率，实际可用工时 = 班次时长 × 目标效率。",
		},
	}
}

// StandardsLibraryHandler 工时标准库API
func StandardsLibraryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, StandardsLibraryResponse{Library: GetStandardsLibrary()})
}

// StandardsHandler 布局工时标准配置处理器
type StandardsHandler struct {
	repo *repository.StandardsRepository
}

// NewStandardsHandler 创建工时标准配置处理器
func NewStandardsHandler(repo *repository.StandardsRepository) *StandardsHandler {
	return &StandardsHandler{repo: repo}
}

// StandardsGetRequest 查询布局标准请求
type StandardsGetRequest struct {
	LayoutID string `json:"layout_id"`
}

// StandardsGetResponse 查询布局标准响应
// stored 为存储的原始配置（可能为空），resolved 为解析后的完整标准
type StandardsGetResponse struct {
	Success  bool                    `json:"success"`
	Stored   *model.LaborStandards   `json:"stored,omitempty"`
	Resolved labor.ResolvedStandards `json:"resolved"`
}

// Get 查询布局的工时标准
func (h *StandardsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}
	if h.repo == nil {
		respondError(w, errors.New(errors.CodeDatabaseError, "未配置数据库"))
		return
	}

	var req StandardsGetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	layoutID, err := uuid.Parse(req.LayoutID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式"))
		return
	}

	stored, err := h.repo.GetByLayout(r.Context(), layoutID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "加载工时标准失败"))
		return
	}

	respondJSON(w, http.StatusOK, StandardsGetResponse{
		Success:  true,
		Stored:   stored,
		Resolved: labor.Resolve(stored),
	})
}

// StandardsSaveRequest 保存布局标准请求
type StandardsSaveRequest struct {
	LayoutID  string                `json:"layout_id"`
	Standards *model.LaborStandards `json:"standards"`
}

// Save 保存布局的工时标准（按布局upsert）
func (h *StandardsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}
	if h.repo == nil {
		respondError(w, errors.New(errors.CodeDatabaseError, "未配置数据库"))
		return
	}

	var req StandardsSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Standards == nil {
		respondError(w, errors.InvalidInput("standards", "标准配置不能为空"))
		return
	}

	layoutID, err := uuid.Parse(req.LayoutID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式"))
		return
	}

	req.Standards.LayoutID = layoutID
	if err := h.repo.Upsert(r.Context(), req.Standards); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存工时标准失败"))
		return
	}

	respondJSON(w, http.StatusOK, StandardsGetResponse{
		Success:  true,
		Stored:   req.Standards,
		Resolved: labor.Resolve(req.Standards),
	})
}
