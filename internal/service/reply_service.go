package service

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/repository"
	"context"
	"fmt"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type ReplyService interface {
	CreateReply(ctx context.Context, userID, postID uint64, req *dto.ReplyCreateDTO) (*dto.ReplyDTO, error)
	GetReplies(ctx context.Context, postID uint64, includeHidden bool, page, pageSize int) ([]*dto.ReplyDTO, error)
	DeleteReply(ctx context.Context, userID, replyID uint64, isModerator bool) error
}

type replyServiceImpl struct {
	replyRepo       repository.ReplyRepo
	postRepo        repository.PostRepo
	profileRepo     repository.ProfileRepo
	notificationSvc NotificationService
}

func NewReplyService(
	replyRepo repository.ReplyRepo,
	postRepo repository.PostRepo,
	profileRepo repository.ProfileRepo,
	notificationSvc NotificationService,
) ReplyService {
	return &replyServiceImpl{
		replyRepo:       replyRepo,
		postRepo:        postRepo,
		profileRepo:     profileRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *replyServiceImpl) CreateReply(ctx context.Context, userID, postID uint64, req *dto.ReplyCreateDTO) (*dto.ReplyDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != consts.PostStatusPublished {
		return nil, ErrPostNotFound
	}

	reply := &model.Reply{
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
		Status:   consts.ReplyStatusVisible,
	}
	if err := s.replyRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		dedupe := fmt.Sprintf("reply:%d", reply.ID)
		err := s.notificationSvc.Notify(ctx, post.AuthorID, consts.NotifyReplyCreated, &dedupe, map[string]interface{}{
			"post_id":  postID,
			"reply_id": reply.ID,
			"user_id":  userID,
			"excerpt":  excerpt(req.Content),
		})
		if err != nil {
			log.WarnContext(ctx, "failed to send reply notification", "reply_id", reply.ID, "error", err)
		}
	}

	return s.toReplyDTO(ctx, reply), nil
}

func (s *replyServiceImpl) GetReplies(ctx context.Context, postID uint64, includeHidden bool, page, pageSize int) ([]*dto.ReplyDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	replies, err := s.replyRepo.GetRepliesByPost(ctx, postID, includeHidden, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ReplyDTO, 0, len(replies))
	for _, reply := range replies {
		list = append(list, s.toReplyDTO(ctx, reply))
	}
	return list, nil
}

func (s *replyServiceImpl) DeleteReply(ctx context.Context, userID, replyID uint64, isModerator bool) error {
	reply, err := s.replyRepo.GetReply(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	if reply.AuthorID != userID && !isModerator {
		return ForbiddenError
	}
	return s.replyRepo.DeleteReply(ctx, replyID)
}

func (s *replyServiceImpl) toReplyDTO(ctx context.Context, reply *model.Reply) *dto.ReplyDTO {
	authorName, err := s.profileRepo.GetDisplayName(ctx, reply.AuthorID)
	if err != nil {
		log.WarnContext(ctx, "failed to load author name", "user_id", reply.AuthorID, "error", err)
	}
	item := &dto.ReplyDTO{}
	_ = copier.Copy(item, reply)
	item.AuthorName = authorName
	item.CreatedAt = reply.CreatedAt.Format("2006-01-02 15:04:05")
	return item
}
