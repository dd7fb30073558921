package dto

// ReviewResolveDTO 人工复核决定
type ReviewResolveDTO struct {
	Action string  `json:"action" binding:"required,oneof=approve reject"`
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

// ModerateActionDTO 隐藏/恢复等管理动作
type ModerateActionDTO struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

// AppealCreateDTO 申诉请求
type AppealCreateDTO struct {
	TargetType string `json:"target_type" binding:"required,oneof=post reply"`
	TargetID   uint64 `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required,max=1000"`
}

// AppealResolveDTO 申诉裁决
type AppealResolveDTO struct {
	Accept bool    `json:"accept"`
	Note   *string `json:"note" binding:"omitempty,max=500"`
}

// ModerationLogDTO AI审核流水视图
type ModerationLogDTO struct {
	ID         uint64   `json:"id"`
	TargetType string   `json:"target_type"`
	TargetID   uint64   `json:"target_id"`
	RiskScore  int      `json:"risk_score"`
	Labels     []string `json:"labels"`
	Decision   string   `json:"decision"`
	Reason     string   `json:"reason"`
	CreatedAt  string   `json:"created_at"`
}
