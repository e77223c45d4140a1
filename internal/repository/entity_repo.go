package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 记录不存在（屏蔽 gorm.ErrRecordNotFound，service 层不依赖 gorm）
var ErrNotFound = errors.New("record not found")

// EntityRepository 带 slug 的实体通用仓储
type EntityRepository[T any] interface {
	// List 按名称排序返回全部记录
	List(ctx context.Context) ([]*T, error)
	// GetByID 通过主键获取，不存在返回 ErrNotFound
	GetByID(ctx context.Context, id uint64) (*T, error)
	// GetBySlug 通过 slug 获取，不存在返回 ErrNotFound
	GetBySlug(ctx context.Context, slug string) (*T, error)
	// FindByIDs 批量获取，缺失的 id 直接忽略
	FindByIDs(ctx context.Context, ids []uint64) ([]*T, error)
	// SlugExists slug 是否已被其他记录占用
	SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error)
	Create(ctx context.Context, entity *T) error
	Save(ctx context.Context, entity *T) error
	// Delete 删除记录（先执行 beforeDelete 清理引用），不存在返回 ErrNotFound
	Delete(ctx context.Context, id uint64) error
}

type entityRepository[T any] struct {
	db           *gorm.DB
	preloads     []string
	beforeDelete func(tx *gorm.DB, id uint64) error
}

func newEntityRepository[T any](db *gorm.DB, beforeDelete func(tx *gorm.DB, id uint64) error, preloads ...string) *entityRepository[T] {
	return &entityRepository[T]{db: db, preloads: preloads, beforeDelete: beforeDelete}
}

func (r *entityRepository[T]) query(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		db = db.Preload(p)
	}
	return db
}

func (r *entityRepository[T]) List(ctx context.Context) ([]*T, error) {
	var list []*T
	if err := r.query(ctx).Order("name ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *entityRepository[T]) GetByID(ctx context.Context, id uint64) (*T, error) {
	var entity T
	if err := r.query(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *entityRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var entity T
	if err := r.query(ctx).Where("slug = ?", slug).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *entityRepository[T]) FindByIDs(ctx context.Context, ids []uint64) ([]*T, error) {
	if len(ids) == 0 {
		return []*T{}, nil
	}
	var list []*T
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *entityRepository[T]) SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(new(T)).Where("slug = ?", slug)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *entityRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

func (r *entityRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

func (r *entityRepository[T]) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.beforeDelete != nil {
			if err := r.beforeDelete(tx, id); err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
