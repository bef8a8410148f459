package labor

// Element 单个时间要素
type Element struct {
	Hours   float64 `json:"hours"`
	Percent float64 `json:"percent"` // 占总工时百分比
	Label   string  `json:"label"`
}

// Breakdown 时间要素分解结果
// 细分口径的要素为 walk/pick/tote/scan/allowance；
// 旧版口径用合并的 pick（拣选+包装+上架）替代 pick/tote/scan
type Breakdown struct {
	TotalPicks            int                `json:"total_picks"`
	TotalWalkDistanceFeet float64            `json:"total_walk_distance_feet"`
	Elements              map[string]Element `json:"elements"`
	TotalEstimatedHours   float64            `json:"total_estimated_hours"`
	EstimatedLaborCost    float64            `json:"estimated_labor_cost"`
	Standards             ResolvedStandards  `json:"standards"`
}

// CalculateBreakdown 将总量（拣货件数、步行距离）换算为各要素工时
// walkHours = (步行英尺 / 步速fpm) / 60；各项按件工时 = 件数×秒/3600；
// 宽放工时 = 基础工时 × (宽放乘数 − 1)；总工时 = 基础 + 宽放。
// useLegacy 为真时采用旧版合并工时口径
func CalculateBreakdown(totalPicks int, totalWalkFeet float64, std ResolvedStandards, useLegacy bool) *Breakdown {
	walkHours := 0.0
	if std.WalkSpeedFpm > 0 {
		walkHours = (totalWalkFeet / std.WalkSpeedFpm) / 60
	}

	picks := float64(totalPicks)
	elements := make(map[string]Element)
	baseHours := walkHours

	if useLegacy {
		combined := std.PickTimeSeconds + std.PackTimeSeconds + std.PutawayTimeSeconds
		pickHours := picks * combined / 3600
		baseHours += pickHours
		elements["pick"] = Element{Hours: pickHours, Label: "拣选/包装/上架"}
	} else {
		pickHours := picks * std.PickItemSeconds / 3600
		toteHours := picks * std.ToteTimeSeconds / 3600
		scanHours := picks * std.ScanTimeSeconds / 3600
		baseHours += pickHours + toteHours + scanHours
		elements["pick"] = Element{Hours: pickHours, Label: "拣选"}
		elements["tote"] = Element{Hours: toteHours, Label: "周转箱处理"}
		elements["scan"] = Element{Hours: scanHours, Label: "扫码"}
	}

	allowanceHours := baseHours * (std.AllowanceMultiplier() - 1)
	totalHours := baseHours + allowanceHours

	elements["walk"] = Element{Hours: walkHours, Label: "步行"}
	elements["allowance"] = Element{Hours: allowanceHours, Label: "PFD宽放"}

	for key, el := range elements {
		if totalHours > 0 {
			el.Percent = el.Hours / totalHours * 100
		}
		elements[key] = el
	}

	return &Breakdown{
		TotalPicks:            totalPicks,
		TotalWalkDistanceFeet: totalWalkFeet,
		Elements:              elements,
		TotalEstimatedHours:   totalHours,
		EstimatedLaborCost:    totalHours * std.FullyLoadedRate(),
		Standards:             std,
	}
}

// StandardSecondsPerPick 返回单件拣货的标准秒数（含步行与宽放）
// avgWalkFeetPerPick 为历史人均步行距离（英尺/件）
func StandardSecondsPerPick(std ResolvedStandards, avgWalkFeetPerPick float64) float64 {
	walkSeconds := 0.0
	if std.WalkSpeedFpm > 0 {
		walkSeconds = avgWalkFeetPerPick / std.WalkSpeedFpm * 60
	}
	base := std.PickItemSeconds + std.ToteTimeSeconds + std.ScanTimeSeconds + walkSeconds
	return base * std.AllowanceMultiplier()
}
