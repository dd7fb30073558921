package handler

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/pkg/response"
	"BridgeUS/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationSvc service.ModerationService
}

func NewModerationHandler(moderationSvc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		moderationSvc: moderationSvc,
	}
}

func (s *ModerationHandler) GetReviewQueue(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.moderationSvc.GetReviewQueue(c.Request.Context(), page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *ModerationHandler) ResolvePostReview(c *gin.Context) {
	moderatorID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReviewResolveDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.moderationSvc.ResolvePostReview(c.Request.Context(), moderatorID, postID, req.Action, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ModerationHandler) HidePost(c *gin.Context) {
	s.applyPostAction(c, s.moderationSvc.HidePost)
}

func (s *ModerationHandler) RestorePost(c *gin.Context) {
	s.applyPostAction(c, s.moderationSvc.RestorePost)
}

func (s *ModerationHandler) HideReply(c *gin.Context) {
	s.applyReplyAction(c, s.moderationSvc.HideReply)
}

func (s *ModerationHandler) RestoreReply(c *gin.Context) {
	s.applyReplyAction(c, s.moderationSvc.RestoreReply)
}

func (s *ModerationHandler) GetLogs(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	logs, err := s.moderationSvc.GetLogs(c.Request.Context(), page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}

func (s *ModerationHandler) GetMyLogs(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	logs, err := s.moderationSvc.GetLogsByUser(c.Request.Context(), userID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}

func (s *ModerationHandler) CreateAppeal(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.AppealCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	appeal, err := s.moderationSvc.CreateAppeal(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appeal)
}

func (s *ModerationHandler) GetAppeals(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	appeals, err := s.moderationSvc.GetAppeals(c.Request.Context(), page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appeals)
}

func (s *ModerationHandler) GetMyAppeals(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	appeals, err := s.moderationSvc.GetAppealsByUser(c.Request.Context(), userID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appeals)
}

func (s *ModerationHandler) ResolveAppeal(c *gin.Context) {
	moderatorID := c.GetUint64("user_id")
	appealID, err := parseID(c, "appeal_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.AppealResolveDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.moderationSvc.ResolveAppeal(c.Request.Context(), moderatorID, appealID, req.Accept, req.Note); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

type moderateFunc func(ctx context.Context, moderatorID, targetID uint64, reason *string) error

func (s *ModerationHandler) applyPostAction(c *gin.Context, apply moderateFunc) {
	moderatorID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	// 理由可选，空请求体不算错
	var req dto.ModerateActionDTO
	_ = c.ShouldBindJSON(&req)

	if err := apply(c.Request.Context(), moderatorID, postID, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ModerationHandler) applyReplyAction(c *gin.Context, apply moderateFunc) {
	moderatorID := c.GetUint64("user_id")
	replyID, err := parseID(c, "reply_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ModerateActionDTO
	_ = c.ShouldBindJSON(&req)

	if err := apply(c.Request.Context(), moderatorID, replyID, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
