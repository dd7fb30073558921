package repository

import (
	"BridgeUS/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type NotificationRepo interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetByDedupe(ctx context.Context, userID uint64, notifyType, dedupeKey string) (*model.Notification, error)
	GetNotificationsByUser(ctx context.Context, userID uint64, unreadOnly bool, limit, offset int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) (int64, error)
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db}
}

func (s *NotificationRepoImpl) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *NotificationRepoImpl) GetByDedupe(ctx context.Context, userID uint64, notifyType, dedupeKey string) (*model.Notification, error) {
	var notification model.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND dedupe_key = ?", userID, notifyType, dedupeKey).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (s *NotificationRepoImpl) GetNotificationsByUser(ctx context.Context, userID uint64, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationRepoImpl) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (s *NotificationRepoImpl) MarkRead(ctx context.Context, userID, notificationID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", gorm.Expr("NOW()"))
	return result.RowsAffected, result.Error
}

func (s *NotificationRepoImpl) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", gorm.Expr("NOW()"))
	return result.RowsAffected, result.Error
}
