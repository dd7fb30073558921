package dto

// FeedbackDTO 准确度评分请求，1-5 星
type FeedbackDTO struct {
	Rating int     `json:"rating" binding:"required,min=1,max=5"`
	Note   *string `json:"note" binding:"omitempty,max=500"`
}

// NotificationDTO 通知视图
type NotificationDTO struct {
	ID        uint64                 `json:"id"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Read      bool                   `json:"read"`
	CreatedAt string                 `json:"created_at"`
}

// NotificationListDTO 通知列表与未读数
type NotificationListDTO struct {
	List        []*NotificationDTO `json:"list"`
	UnreadCount int64              `json:"unread_count"`
}
