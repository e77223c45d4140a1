package repository

import (
	"context"

	"SamuraiArchive/internal/model"

	"gorm.io/gorm"
)

// FavoriteRepository 收藏仓储
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uint64) ([]*model.Favorite, error)
	GetByID(ctx context.Context, id uint64) (*model.Favorite, error)
	// Find 查不到返回 (nil, nil)
	Find(ctx context.Context, userID uint64, entityType model.FavoriteType, entityID uint64) (*model.Favorite, error)
	Create(ctx context.Context, f *model.Favorite) error
	Delete(ctx context.Context, id uint64) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓储
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint64) ([]*model.Favorite, error) {
	var list []*model.Favorite
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *favoriteRepository) GetByID(ctx context.Context, id uint64) (*model.Favorite, error) {
	var f model.Favorite
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *favoriteRepository) Find(ctx context.Context, userID uint64, entityType model.FavoriteType, entityID uint64) (*model.Favorite, error) {
	var f model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND entity_id = ?", userID, entityType, entityID).
		First(&f).Error
	return optional(&f, err)
}

func (r *favoriteRepository) Create(ctx context.Context, f *model.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *favoriteRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Favorite{}).Error
}
