package consts

// 帖子生命周期状态
const (
	PostStatusDraft     = "draft"
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusHidden    = "hidden"
)

// 回复状态
const (
	ReplyStatusVisible = "visible"
	ReplyStatusHidden  = "hidden"
)

// 审核决定
const (
	DecisionPass   = "pass"
	DecisionReview = "review"
	DecisionReject = "reject"
)

// 人工审核动作
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionHide    = "hide"
	ActionRestore = "restore"
)

// 翻译提供方
const (
	TranslatedByUser = "user"
	TranslatedByAI   = "ai"
)

// 投票/反馈目标类型
const (
	TargetTypePost  = "post"
	TargetTypeReply = "reply"
)

// 通知类型
const (
	NotifyPostPublished  = "post_published"
	NotifyPostReviewed   = "post_reviewed"
	NotifyPostHelpful    = "post_helpful"
	NotifyReplyHelpful   = "reply_helpful"
	NotifyPostRated      = "post_rated"
	NotifyReplyCreated   = "reply_created"
	NotifyAppealResolved = "appeal_resolved"
)

// 审核失败兜底标签
const (
	LabelAIDisabled = "ai_disabled"
	LabelAIError    = "ai_error"
)
