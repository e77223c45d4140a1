package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"SamuraiArchive/internal/interfaces"
	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"

	"github.com/sirupsen/logrus"
)

// SamouraiInput 创建/更新武士的请求体。birth_date 显式传 null 会删除出生时间线
type SamouraiInput struct {
	Name        Optional[string]   `json:"name"`
	BirthDate   Optional[string]   `json:"birth_date"`
	DeathDate   Optional[string]   `json:"death_date"`
	Description Optional[string]   `json:"description"`
	Image       Optional[string]   `json:"image"`
	ClanID      Optional[uint64]   `json:"clan_id"`
	WeaponIDs   Optional[[]uint64] `json:"weapon_ids"`
	StyleIDs    Optional[[]uint64] `json:"style_ids"`
	BattleIDs   Optional[[]uint64] `json:"battle_ids"`
}

// SamouraiService 武士 CRUD；写操作提交后通过 hooks 同步出生时间线
type SamouraiService struct {
	store  *repository.Store
	hooks  interfaces.TimelineHooks
	logger *logrus.Logger
}

// NewSamouraiService 创建 SamouraiService
func NewSamouraiService(store *repository.Store, hooks interfaces.TimelineHooks, logger *logrus.Logger) *SamouraiService {
	return &SamouraiService{store: store, hooks: hooks, logger: logger}
}

// samouraiLinks 需要替换的多对多关联，nil 表示请求未携带该字段
type samouraiLinks struct {
	weapons []*model.Weapon
	styles  []*model.Style
	battles []*model.Battle
}

func (s *SamouraiService) List(ctx context.Context) ([]SamouraiView, error) {
	list, err := s.store.Samourais.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapViews(list, newSamouraiView), nil
}

func (s *SamouraiService) Get(ctx context.Context, key string) (SamouraiView, error) {
	sam, err := getByKey[model.Samourai](ctx, s.store.Samourais, key)
	if err != nil {
		return SamouraiView{}, samouraiNotFound(err, key)
	}
	return newSamouraiView(sam), nil
}

func (s *SamouraiService) Create(ctx context.Context, in *SamouraiInput) (SamouraiView, error) {
	sam := &model.Samourai{}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		links, err := s.apply(ctx, tx, sam, in, "")
		if err != nil {
			return err
		}
		if err := tx.Samourais.Create(ctx, sam); err != nil {
			return err
		}
		return replaceSamouraiLinks(ctx, tx, sam, links)
	})
	if err != nil {
		return SamouraiView{}, err
	}
	return s.afterSave(ctx, sam.ID)
}

func (s *SamouraiService) Update(ctx context.Context, id uint64, in *SamouraiInput) (SamouraiView, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		sam, err := tx.Samourais.GetByID(ctx, id)
		if err != nil {
			return samouraiNotFound(err, strconv.FormatUint(id, 10))
		}
		links, err := s.apply(ctx, tx, sam, in, sam.Name)
		if err != nil {
			return err
		}
		if err := tx.Samourais.Save(ctx, sam); err != nil {
			return err
		}
		return replaceSamouraiLinks(ctx, tx, sam, links)
	})
	if err != nil {
		return SamouraiView{}, err
	}
	return s.afterSave(ctx, id)
}

// Delete 先删除出生时间线，再删除武士
func (s *SamouraiService) Delete(ctx context.Context, id uint64) error {
	sam, err := s.store.Samourais.GetByID(ctx, id)
	if err != nil {
		return samouraiNotFound(err, strconv.FormatUint(id, 10))
	}
	s.hooks.SamouraiDeleting(ctx, sam)
	if err := s.store.Samourais.Delete(ctx, id); err != nil {
		return samouraiNotFound(err, strconv.FormatUint(id, 10))
	}
	s.logger.WithField("samourai_id", id).Info("武士已删除")
	return nil
}

func (s *SamouraiService) afterSave(ctx context.Context, id uint64) (SamouraiView, error) {
	sam, err := s.store.Samourais.GetByID(ctx, id)
	if err != nil {
		return SamouraiView{}, err
	}
	s.hooks.SamouraiSaved(ctx, sam)
	return newSamouraiView(sam), nil
}

func (s *SamouraiService) apply(ctx context.Context, tx *repository.Store, sam *model.Samourai, in *SamouraiInput, oldName string) (samouraiLinks, error) {
	var links samouraiLinks

	setString(&sam.Name, in.Name)
	setString(&sam.Description, in.Description)
	setPtr(&sam.Image, in.Image)
	if sam.Name == "" {
		return links, invalid("name is required")
	}

	var err error
	if sam.BirthDate, err = optionalDate("birth_date", in.BirthDate, sam.BirthDate); err != nil {
		return links, err
	}
	if sam.DeathDate, err = optionalDate("death_date", in.DeathDate, sam.DeathDate); err != nil {
		return links, err
	}
	if sam.BirthDate != nil && sam.DeathDate != nil && sam.DeathDate.Before(*sam.BirthDate) {
		return links, invalid("death_date must not be before birth_date")
	}

	clan, err := resolveRef(ctx, tx.Clans, in.ClanID, "clan", &sam.ClanID)
	if err != nil {
		return links, err
	}
	if in.ClanID.Set {
		sam.Clan = clan
	}

	if oldName == "" || oldName != sam.Name {
		generated, err := uniqueSlug[model.Samourai](ctx, tx.Samourais, sam.Name, sam.ID)
		if err != nil {
			return links, err
		}
		sam.Slug = generated
	}

	if in.WeaponIDs.Set {
		if links.weapons, err = resolveMany(ctx, tx.Weapons, in.WeaponIDs.Value, "weapon_ids"); err != nil {
			return links, err
		}
	}
	if in.StyleIDs.Set {
		if links.styles, err = resolveMany(ctx, tx.Styles, in.StyleIDs.Value, "style_ids"); err != nil {
			return links, err
		}
	}
	if in.BattleIDs.Set {
		if links.battles, err = resolveMany[model.Battle](ctx, tx.Battles, in.BattleIDs.Value, "battle_ids"); err != nil {
			return links, err
		}
	}
	return links, nil
}

func replaceSamouraiLinks(ctx context.Context, tx *repository.Store, sam *model.Samourai, links samouraiLinks) error {
	if links.weapons != nil {
		if err := tx.Samourais.ReplaceWeapons(ctx, sam, links.weapons); err != nil {
			return err
		}
	}
	if links.styles != nil {
		if err := tx.Samourais.ReplaceStyles(ctx, sam, links.styles); err != nil {
			return err
		}
	}
	if links.battles != nil {
		if err := tx.Samourais.ReplaceBattles(ctx, sam, links.battles); err != nil {
			return err
		}
	}
	return nil
}

// optionalDate 字段缺失时保留 current，null 时清空
func optionalDate(field string, o Optional[string], current *time.Time) (*time.Time, error) {
	if !o.Set {
		return current, nil
	}
	if o.Null || o.Value == "" {
		return nil, nil
	}
	d, err := parseDate(field, o.Value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func samouraiNotFound(err error, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("samourai " + key + " not found")
	}
	return err
}
