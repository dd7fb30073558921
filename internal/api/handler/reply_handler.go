package handler

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/api/middleware"
	"BridgeUS/internal/pkg/response"
	"BridgeUS/internal/service"

	"github.com/gin-gonic/gin"
)

type ReplyHandler struct {
	replySvc service.ReplyService
}

func NewReplyHandler(replySvc service.ReplyService) *ReplyHandler {
	return &ReplyHandler{
		replySvc: replySvc,
	}
}

func (s *ReplyHandler) CreateReply(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReplyCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	reply, err := s.replySvc.CreateReply(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, reply)
}

func (s *ReplyHandler) GetReplies(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	replies, err := s.replySvc.GetReplies(c.Request.Context(), postID, middleware.IsModerator(c), page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, replies)
}

func (s *ReplyHandler) DeleteReply(c *gin.Context) {
	userID := c.GetUint64("user_id")
	replyID, err := parseID(c, "reply_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.replySvc.DeleteReply(c.Request.Context(), userID, replyID, middleware.IsModerator(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
