package handler

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/api/middleware"
	"BridgeUS/internal/pkg/response"
	"BridgeUS/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PostUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.postSvc.UpdatePost(c.Request.Context(), userID, postID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) ResubmitPost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.postSvc.Resubmit(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	language := c.Query("lang")
	post, err := s.postSvc.GetPost(c.Request.Context(), userID, postID, language, middleware.IsModerator(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *PostHandler) GetPosts(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	language := c.Query("lang")
	posts, err := s.postSvc.GetPublishedPosts(c.Request.Context(), language, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, posts)
}

func (s *PostHandler) GetMyPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.GetMyPosts(c.Request.Context(), userID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, posts)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, postID, middleware.IsModerator(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func parseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}
