package api

import "BridgeUS/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler         *handler.PostHandler
	ReplyHandler        *handler.ReplyHandler
	InteractionHandler  *handler.InteractionHandler
	NotificationHandler *handler.NotificationHandler
	ModerationHandler   *handler.ModerationHandler
}
