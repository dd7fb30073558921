package repository

import (
	"BridgeUS/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ModerationRepo interface {
	CreateLog(ctx context.Context, log *model.ModerationLog) error
	GetLog(ctx context.Context, logID uint64) (*model.ModerationLog, error)
	GetLogs(ctx context.Context, limit, offset int) ([]*model.ModerationLog, error)
	GetLogsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.ModerationLog, error)

	CreateAction(ctx context.Context, action *model.ModerationAction) error

	CreateAppeal(ctx context.Context, appeal *model.Appeal) error
	GetAppeal(ctx context.Context, appealID uint64) (*model.Appeal, error)
	SaveAppeal(ctx context.Context, appeal *model.Appeal) error
	GetAppeals(ctx context.Context, limit, offset int) ([]*model.Appeal, error)
	GetAppealsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Appeal, error)
}

type ModerationRepoImpl struct {
	db *gorm.DB
}

func NewModerationRepo(db *gorm.DB) ModerationRepo {
	return &ModerationRepoImpl{db}
}

func (s *ModerationRepoImpl) CreateLog(ctx context.Context, log *model.ModerationLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *ModerationRepoImpl) GetLog(ctx context.Context, logID uint64) (*model.ModerationLog, error) {
	var log model.ModerationLog
	err := s.db.WithContext(ctx).Where("id = ?", logID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (s *ModerationRepoImpl) GetLogs(ctx context.Context, limit, offset int) ([]*model.ModerationLog, error) {
	var logs []*model.ModerationLog
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	return logs, err
}

func (s *ModerationRepoImpl) GetLogsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.ModerationLog, error) {
	var logs []*model.ModerationLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	return logs, err
}

func (s *ModerationRepoImpl) CreateAction(ctx context.Context, action *model.ModerationAction) error {
	return s.db.WithContext(ctx).Create(action).Error
}

func (s *ModerationRepoImpl) CreateAppeal(ctx context.Context, appeal *model.Appeal) error {
	return s.db.WithContext(ctx).Create(appeal).Error
}

func (s *ModerationRepoImpl) GetAppeal(ctx context.Context, appealID uint64) (*model.Appeal, error) {
	var appeal model.Appeal
	err := s.db.WithContext(ctx).Where("id = ?", appealID).First(&appeal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appeal, nil
}

func (s *ModerationRepoImpl) SaveAppeal(ctx context.Context, appeal *model.Appeal) error {
	return s.db.WithContext(ctx).Save(appeal).Error
}

func (s *ModerationRepoImpl) GetAppeals(ctx context.Context, limit, offset int) ([]*model.Appeal, error) {
	var appeals []*model.Appeal
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&appeals).Error
	return appeals, err
}

func (s *ModerationRepoImpl) GetAppealsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Appeal, error) {
	var appeals []*model.Appeal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&appeals).Error
	return appeals, err
}
