package consts

const (
	NotificationUnreadKey = "notification:unread:"
	PostScoreDirtyKey     = "post:score:dirty"
	UserScoreDirtyKey     = "user:score:dirty"
)

const (
	TranslateLock  = "translate:lock:"
	SubmissionLock = "submission:lock:"
	LLMDailyUsage  = "llm:usage:"
)
