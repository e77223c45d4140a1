package repository

import (
	"context"
	"errors"

	"SamuraiArchive/internal/model"

	"gorm.io/gorm"
)

// TimelineRepository 时间线与关联表仓储。Find* 查不到时返回 (nil, nil)，Get* 返回 ErrNotFound
type TimelineRepository interface {
	// List 按日期升序返回全部时间线
	List(ctx context.Context) ([]*model.Timeline, error)
	GetByID(ctx context.Context, id uint64) (*model.Timeline, error)
	// FindBattleTimeline type=battle 且 battle_id 匹配的条目
	FindBattleTimeline(ctx context.Context, battleID uint64) (*model.Timeline, error)
	// FindByTitleYear 按 (title, year) 精确匹配，用于历史事件去重
	FindByTitleYear(ctx context.Context, title string, year int) (*model.Timeline, error)
	// FindLink 来源实体对应的关联行
	FindLink(ctx context.Context, entityType model.LinkedEntityType, entityID uint64) (*model.TimelineEntity, error)
	Count(ctx context.Context) (int64, error)
	CountLinks(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *model.Timeline) error
	Save(ctx context.Context, t *model.Timeline) error
	Delete(ctx context.Context, id uint64) error
	CreateLink(ctx context.Context, link *model.TimelineEntity) error
	DeleteLink(ctx context.Context, id uint64) error
	DeleteLinksByTimelineID(ctx context.Context, timelineID uint64) (int64, error)
}

type timelineRepository struct {
	db *gorm.DB
}

// NewTimelineRepository 创建时间线仓储
func NewTimelineRepository(db *gorm.DB) TimelineRepository {
	return &timelineRepository{db: db}
}

func (r *timelineRepository) List(ctx context.Context) ([]*model.Timeline, error) {
	var list []*model.Timeline
	if err := r.db.WithContext(ctx).Order("date ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *timelineRepository) GetByID(ctx context.Context, id uint64) (*model.Timeline, error) {
	var t model.Timeline
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *timelineRepository) FindBattleTimeline(ctx context.Context, battleID uint64) (*model.Timeline, error) {
	var t model.Timeline
	err := r.db.WithContext(ctx).
		Where("type = ? AND battle_id = ?", model.TimelineBattle, battleID).
		Order("id ASC").
		First(&t).Error
	return optional(&t, err)
}

func (r *timelineRepository) FindByTitleYear(ctx context.Context, title string, year int) (*model.Timeline, error) {
	var t model.Timeline
	err := r.db.WithContext(ctx).
		Where("title = ? AND year = ?", title, year).
		Order("id ASC").
		First(&t).Error
	return optional(&t, err)
}

func (r *timelineRepository) FindLink(ctx context.Context, entityType model.LinkedEntityType, entityID uint64) (*model.TimelineEntity, error) {
	var link model.TimelineEntity
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		First(&link).Error
	return optional(&link, err)
}

func (r *timelineRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Timeline{}).Count(&n).Error
	return n, err
}

func (r *timelineRepository) CountLinks(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.TimelineEntity{}).Count(&n).Error
	return n, err
}

func (r *timelineRepository) Create(ctx context.Context, t *model.Timeline) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *timelineRepository) Save(ctx context.Context, t *model.Timeline) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *timelineRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Timeline{}).Error
}

func (r *timelineRepository) CreateLink(ctx context.Context, link *model.TimelineEntity) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *timelineRepository) DeleteLink(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TimelineEntity{}).Error
}

func (r *timelineRepository) DeleteLinksByTimelineID(ctx context.Context, timelineID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("timeline_id = ?", timelineID).Delete(&model.TimelineEntity{})
	return res.RowsAffected, res.Error
}

// optional 把 "查不到" 转成 (nil, nil)
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
