package repository

import (
	"context"

	"SamuraiArchive/internal/model"

	"gorm.io/gorm"
)

// Store 显式的工作单元：同一个 *gorm.DB（或事务）上的全部仓储
type Store struct {
	db *gorm.DB

	Clans     EntityRepository[model.Clan]
	Locations EntityRepository[model.Location]
	Weapons   EntityRepository[model.Weapon]
	Styles    EntityRepository[model.Style]
	Battles   BattleRepository
	Samourais SamouraiRepository
	Timelines TimelineRepository
	Users     UserRepository
	Favorites FavoriteRepository
}

// NewStore 创建 Store
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Clans:     newEntityRepository[model.Clan](db, cleanup(model.FavoriteClan, clearClanReferences), "Samourais"),
		Locations: newEntityRepository[model.Location](db, cleanup(model.FavoriteLocation, clearLocationReferences)),
		Weapons:   newEntityRepository[model.Weapon](db, cleanup(model.FavoriteWeapon, deleteJoinRows("samourai_weapons", "weapon_id"))),
		Styles:    newEntityRepository[model.Style](db, cleanup(model.FavoriteStyle, deleteJoinRows("samourai_styles", "style_id"))),
		Battles:   NewBattleRepository(db),
		Samourais: NewSamouraiRepository(db),
		Timelines: NewTimelineRepository(db),
		Users:     NewUserRepository(db),
		Favorites: NewFavoriteRepository(db),
	}
}

// Transaction 在事务中执行 fn，fn 拿到的是绑定到该事务的 Store；fn 返回错误即回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping 检查数据库连通性
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func clearClanReferences(tx *gorm.DB, id uint64) error {
	if err := tx.Model(&model.Samourai{}).Where("clan_id = ?", id).Update("clan_id", nil).Error; err != nil {
		return err
	}
	return tx.Model(&model.Battle{}).Where("winner_clan_id = ?", id).Update("winner_clan_id", nil).Error
}

func clearLocationReferences(tx *gorm.DB, id uint64) error {
	return tx.Model(&model.Battle{}).Where("location_id = ?", id).Update("location_id", nil).Error
}

func deleteJoinRows(table, column string) func(tx *gorm.DB, id uint64) error {
	return func(tx *gorm.DB, id uint64) error {
		return tx.Exec("DELETE FROM "+table+" WHERE "+column+" = ?", id).Error
	}
}

// cleanup 依次执行引用清理，最后删除指向该实体的收藏
func cleanup(favorite model.FavoriteType, steps ...func(tx *gorm.DB, id uint64) error) func(tx *gorm.DB, id uint64) error {
	return func(tx *gorm.DB, id uint64) error {
		for _, step := range steps {
			if err := step(tx, id); err != nil {
				return err
			}
		}
		return tx.Where("entity_type = ? AND entity_id = ?", favorite, id).Delete(&model.Favorite{}).Error
	}
}
