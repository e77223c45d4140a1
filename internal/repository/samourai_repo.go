package repository

import (
	"context"

	"SamuraiArchive/internal/model"

	"gorm.io/gorm"
)

// SamouraiRepository 武士仓储
type SamouraiRepository interface {
	EntityRepository[model.Samourai]
	// ListAll 全量武士（不预加载关联），供时间线批量重建
	ListAll(ctx context.Context) ([]*model.Samourai, error)
	ReplaceWeapons(ctx context.Context, s *model.Samourai, weapons []*model.Weapon) error
	ReplaceStyles(ctx context.Context, s *model.Samourai, styles []*model.Style) error
	ReplaceBattles(ctx context.Context, s *model.Samourai, battles []*model.Battle) error
}

type samouraiRepository struct {
	*entityRepository[model.Samourai]
}

// NewSamouraiRepository 创建武士仓储
func NewSamouraiRepository(db *gorm.DB) SamouraiRepository {
	return &samouraiRepository{
		entityRepository: newEntityRepository[model.Samourai](db,
			cleanup(model.FavoriteSamourai, deleteSamouraiJoinRows),
			"Clan", "Weapons", "Styles", "Battles"),
	}
}

func (r *samouraiRepository) ListAll(ctx context.Context) ([]*model.Samourai, error) {
	var list []*model.Samourai
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *samouraiRepository) ReplaceWeapons(ctx context.Context, s *model.Samourai, weapons []*model.Weapon) error {
	return replaceAssociation(r.db.WithContext(ctx), s, "Weapons", weapons, len(weapons))
}

func (r *samouraiRepository) ReplaceStyles(ctx context.Context, s *model.Samourai, styles []*model.Style) error {
	return replaceAssociation(r.db.WithContext(ctx), s, "Styles", styles, len(styles))
}

func (r *samouraiRepository) ReplaceBattles(ctx context.Context, s *model.Samourai, battles []*model.Battle) error {
	return replaceAssociation(r.db.WithContext(ctx), s, "Battles", battles, len(battles))
}

func deleteSamouraiJoinRows(tx *gorm.DB, id uint64) error {
	for _, table := range []string{"samourai_weapons", "samourai_styles", "samourai_battles"} {
		if err := deleteJoinRows(table, "samourai_id")(tx, id); err != nil {
			return err
		}
	}
	return nil
}
