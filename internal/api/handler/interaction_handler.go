package handler

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/pkg/response"
	"BridgeUS/internal/service"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionSvc service.InteractionService
}

func NewInteractionHandler(interactionSvc service.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactionSvc: interactionSvc,
	}
}

func (s *InteractionHandler) VotePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.interactionSvc.VotePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InteractionHandler) UnvotePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.interactionSvc.UnvotePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InteractionHandler) VoteReply(c *gin.Context) {
	userID := c.GetUint64("user_id")
	replyID, err := parseID(c, "reply_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.interactionSvc.VoteReply(c.Request.Context(), userID, replyID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InteractionHandler) UnvoteReply(c *gin.Context) {
	userID := c.GetUint64("user_id")
	replyID, err := parseID(c, "reply_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.interactionSvc.UnvoteReply(c.Request.Context(), userID, replyID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InteractionHandler) RatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.FeedbackDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.interactionSvc.RatePost(c.Request.Context(), userID, postID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InteractionHandler) UpdateRating(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.FeedbackDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.interactionSvc.UpdateRating(c.Request.Context(), userID, postID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InteractionHandler) DeleteRating(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.interactionSvc.DeleteRating(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
