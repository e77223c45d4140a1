package repository

import (
	"context"

	"SamuraiArchive/internal/model"

	"gorm.io/gorm"
)

// BattleRepository 战役仓储
type BattleRepository interface {
	EntityRepository[model.Battle]
	// ListAll 全量战役（不预加载关联），供时间线批量重建
	ListAll(ctx context.Context) ([]*model.Battle, error)
	// ReplaceSamourais 用给定列表替换参战武士
	ReplaceSamourais(ctx context.Context, battle *model.Battle, samourais []*model.Samourai) error
}

type battleRepository struct {
	*entityRepository[model.Battle]
}

// NewBattleRepository 创建战役仓储
func NewBattleRepository(db *gorm.DB) BattleRepository {
	return &battleRepository{
		entityRepository: newEntityRepository[model.Battle](db,
			cleanup(model.FavoriteBattle, deleteJoinRows("samourai_battles", "battle_id")),
			"Location", "WinnerClan", "Samourais"),
	}
}

func (r *battleRepository) List(ctx context.Context) ([]*model.Battle, error) {
	var list []*model.Battle
	if err := r.query(ctx).Order("date ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *battleRepository) ListAll(ctx context.Context) ([]*model.Battle, error) {
	var list []*model.Battle
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *battleRepository) ReplaceSamourais(ctx context.Context, battle *model.Battle, samourais []*model.Samourai) error {
	return replaceAssociation(r.db.WithContext(ctx), battle, "Samourais", samourais, len(samourais))
}

// replaceAssociation 替换多对多关联；空列表时清空
func replaceAssociation(db *gorm.DB, owner any, name string, values any, n int) error {
	assoc := db.Model(owner).Association(name)
	if n == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}
