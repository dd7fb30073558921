package service

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/pkg/redis"
	"BridgeUS/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

const unreadCacheExpiration = 24 * time.Hour

type NotificationService interface {
	// Notify 幂等投递：同一 (user, type, dedupeKey) 最多产生一条通知
	Notify(ctx context.Context, userID uint64, notifyType string, dedupeKey *string, payload map[string]interface{}) error
	GetNotifications(ctx context.Context, userID uint64, unreadOnly bool, page, pageSize int) (*dto.NotificationListDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	userRepo         repository.UserRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo, userRepo repository.UserRepo) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo, userRepo: userRepo}
}

func (s *notificationServiceImpl) Notify(ctx context.Context, userID uint64, notifyType string, dedupeKey *string, payload map[string]interface{}) error {
	// 收件人已注销时静默丢弃
	recipient, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if recipient == nil {
		return nil
	}

	if dedupeKey != nil {
		existing, err := s.notificationRepo.GetByDedupe(ctx, userID, notifyType, *dedupeKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
	}

	notification := &model.Notification{
		UserID:    userID,
		Type:      notifyType,
		DedupeKey: dedupeKey,
		Payload:   payload,
	}
	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		// 并发重复投递由唯一索引拦截，视为已存在
		if isDuplicateError(err) {
			return nil
		}
		return err
	}

	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID uint64, unreadOnly bool, page, pageSize int) (*dto.NotificationListDTO, error) {
	notifications, err := s.notificationRepo.GetNotificationsByUser(ctx, userID, unreadOnly, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		list = append(list, &dto.NotificationDTO{
			ID:        n.ID,
			Type:      n.Type,
			Payload:   n.Payload,
			Read:      n.ReadAt != nil,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	unread, err := s.GetUnreadCount(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "failed to load unread count", "user_id", userID, "error", err)
		unread = 0
	}
	return &dto.NotificationListDTO{List: list, UnreadCount: unread}, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	key := consts.NotificationUnreadKey + strconv.FormatUint(userID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}

	realCount, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, unreadCacheExpiration)
	return realCount, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	affected, err := s.notificationRepo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.invalidateUnread(ctx, userID)
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if _, err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *notificationServiceImpl) invalidateUnread(ctx context.Context, userID uint64) {
	key := consts.NotificationUnreadKey + strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "failed to invalidate unread cache", "user_id", userID, "error", err)
	}
}
