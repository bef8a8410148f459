package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/internal/repository"
	"github.com/zoudao/zoudao/pkg/errors"
	"github.com/zoudao/zoudao/pkg/model"
	"github.com/zoudao/zoudao/pkg/validator"
)

// MarkerHandler 路线标记处理器
// 布局编辑器通过这里保存标记，计算引擎只读取
type MarkerHandler struct {
	repo *repository.MarkerRepository
}

// NewMarkerHandler 创建路线标记处理器
func NewMarkerHandler(repo *repository.MarkerRepository) *MarkerHandler {
	return &MarkerHandler{repo: repo}
}

// MarkerReplaceRequest 标记整体替换请求
type MarkerReplaceRequest struct {
	LayoutID string        `json:"layout_id"`
	Markers  []MarkerInput `json:"markers"`
}

// MarkerListResponse 标记列表响应
type MarkerListResponse struct {
	Success bool                 `json:"success"`
	Markers []*model.RouteMarker `json:"markers"`
}

// MarkerReplaceResponse 标记替换响应
// 警告级问题不阻止保存，随响应返回供布局编辑器提示
type MarkerReplaceResponse struct {
	Success  bool                 `json:"success"`
	Markers  []*model.RouteMarker `json:"markers"`
	Warnings validator.Issues     `json:"warnings,omitempty"`
}

// Replace 整体替换布局的标记
func (h *MarkerHandler) Replace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}
	if h.repo == nil {
		respondError(w, errors.New(errors.CodeDatabaseError, "未配置数据库"))
		return
	}

	var req MarkerReplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	layoutID, err := uuid.Parse(req.LayoutID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式"))
		return
	}

	markers := make([]*model.RouteMarker, 0, len(req.Markers))
	for _, in := range req.Markers {
		m := &model.RouteMarker{
			Type:          model.MarkerType(in.Type),
			X:             in.X,
			Y:             in.Y,
			Label:         in.Label,
			SequenceOrder: in.SequenceOrder,
		}
		if in.ID != "" {
			if id, err := uuid.Parse(in.ID); err == nil {
				m.ID = id
			}
		}
		markers = append(markers, m)
	}

	issues := validator.ValidateMarkers(markers)
	if issues.HasErrors() {
		appErr := errors.New(errors.CodeValidationFail, "标记数据验证失败").
			WithField("issues", issues.Errors())
		respondError(w, appErr)
		return
	}

	if err := h.repo.ReplaceForLayout(r.Context(), layoutID, markers); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存路线标记失败"))
		return
	}

	var warnings validator.Issues
	for _, issue := range issues {
		if issue.Severity == validator.SeverityWarning {
			warnings = append(warnings, issue)
		}
	}

	respondJSON(w, http.StatusOK, MarkerReplaceResponse{Success: true, Markers: markers, Warnings: warnings})
}

// MarkerListRequest 标记列表请求
type MarkerListRequest struct {
	LayoutID string `json:"layout_id"`
}

// List 获取布局的全部标记
func (h *MarkerHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}
	if h.repo == nil {
		respondError(w, errors.New(errors.CodeDatabaseError, "未配置数据库"))
		return
	}

	var req MarkerListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	layoutID, err := uuid.Parse(req.LayoutID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的布局ID格式"))
		return
	}

	markers, err := h.repo.ListByLayout(r.Context(), layoutID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询路线标记失败"))
		return
	}

	respondJSON(w, http.StatusOK, MarkerListResponse{Success: true, Markers: markers})
}
