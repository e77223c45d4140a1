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

// BattleInput 创建/更新战役的请求体
type BattleInput struct {
	Name         Optional[string]   `json:"name"`
	Date         Optional[string]   `json:"date"`
	Description  Optional[string]   `json:"description"`
	SourceURL    Optional[string]   `json:"source_url"`
	Image        Optional[string]   `json:"image"`
	LocationID   Optional[uint64]   `json:"location_id"`
	WinnerClanID Optional[uint64]   `json:"winner_clan_id"`
	SamouraiIDs  Optional[[]uint64] `json:"samourai_ids"`
}

// BattleService 战役 CRUD；写操作提交后通过 hooks 同步时间线
type BattleService struct {
	store  *repository.Store
	hooks  interfaces.TimelineHooks
	logger *logrus.Logger
}

// NewBattleService 创建 BattleService
func NewBattleService(store *repository.Store, hooks interfaces.TimelineHooks, logger *logrus.Logger) *BattleService {
	return &BattleService{store: store, hooks: hooks, logger: logger}
}

func (s *BattleService) List(ctx context.Context) ([]BattleView, error) {
	list, err := s.store.Battles.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapViews(list, newBattleView), nil
}

func (s *BattleService) Get(ctx context.Context, key string) (BattleView, error) {
	b, err := getByKey[model.Battle](ctx, s.store.Battles, key)
	if err != nil {
		return BattleView{}, battleNotFound(err, key)
	}
	return newBattleView(b), nil
}

func (s *BattleService) Create(ctx context.Context, in *BattleInput) (BattleView, error) {
	battle := &model.Battle{}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		participants, err := s.apply(ctx, tx, battle, in, "")
		if err != nil {
			return err
		}
		if err := tx.Battles.Create(ctx, battle); err != nil {
			return err
		}
		if participants != nil {
			return tx.Battles.ReplaceSamourais(ctx, battle, participants)
		}
		return nil
	})
	if err != nil {
		return BattleView{}, err
	}
	return s.afterSave(ctx, battle.ID)
}

func (s *BattleService) Update(ctx context.Context, id uint64, in *BattleInput) (BattleView, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		battle, err := tx.Battles.GetByID(ctx, id)
		if err != nil {
			return battleNotFound(err, strconv.FormatUint(id, 10))
		}
		participants, err := s.apply(ctx, tx, battle, in, battle.Name)
		if err != nil {
			return err
		}
		if err := tx.Battles.Save(ctx, battle); err != nil {
			return err
		}
		if participants != nil {
			return tx.Battles.ReplaceSamourais(ctx, battle, participants)
		}
		return nil
	})
	if err != nil {
		return BattleView{}, err
	}
	return s.afterSave(ctx, id)
}

// Delete 先清理派生的时间线条目，再删除战役
func (s *BattleService) Delete(ctx context.Context, id uint64) error {
	battle, err := s.store.Battles.GetByID(ctx, id)
	if err != nil {
		return battleNotFound(err, strconv.FormatUint(id, 10))
	}
	s.hooks.BattleDeleting(ctx, battle)
	if err := s.store.Battles.Delete(ctx, id); err != nil {
		return battleNotFound(err, strconv.FormatUint(id, 10))
	}
	s.logger.WithField("battle_id", id).Info("战役已删除")
	return nil
}

func (s *BattleService) afterSave(ctx context.Context, id uint64) (BattleView, error) {
	battle, err := s.store.Battles.GetByID(ctx, id)
	if err != nil {
		return BattleView{}, err
	}
	s.hooks.BattleSaved(ctx, battle)
	return newBattleView(battle), nil
}

// apply 合并请求字段并校验引用；返回非 nil 的参战武士列表表示需要替换关联
func (s *BattleService) apply(ctx context.Context, tx *repository.Store, b *model.Battle, in *BattleInput, oldName string) ([]*model.Samourai, error) {
	setString(&b.Name, in.Name)
	setString(&b.Description, in.Description)
	setPtr(&b.SourceURL, in.SourceURL)
	setPtr(&b.Image, in.Image)

	if in.Date.Set {
		if in.Date.Null {
			return nil, invalid("date is required")
		}
		d, err := parseDate("date", in.Date.Value)
		if err != nil {
			return nil, err
		}
		b.Date = d
	}
	if b.Name == "" {
		return nil, invalid("name is required")
	}
	if b.Date.IsZero() {
		return nil, invalid("date is required")
	}

	loc, err := resolveRef(ctx, tx.Locations, in.LocationID, "location", &b.LocationID)
	if err != nil {
		return nil, err
	}
	if in.LocationID.Set {
		b.Location = loc
	}
	clan, err := resolveRef(ctx, tx.Clans, in.WinnerClanID, "winner_clan", &b.WinnerClanID)
	if err != nil {
		return nil, err
	}
	if in.WinnerClanID.Set {
		b.WinnerClan = clan
	}

	if oldName == "" || oldName != b.Name {
		generated, err := uniqueSlug[model.Battle](ctx, tx.Battles, b.Name, b.ID)
		if err != nil {
			return nil, err
		}
		b.Slug = generated
	}

	if !in.SamouraiIDs.Set {
		return nil, nil
	}
	participants, err := resolveMany[model.Samourai](ctx, tx.Samourais, in.SamouraiIDs.Value, "samourai_ids")
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func battleNotFound(err error, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("battle " + key + " not found")
	}
	return err
}

// parseDate 解析 YYYY-MM-DD；也接受 RFC3339 时间戳并截取日期部分
func parseDate(field, value string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, value); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, invalid("%s must be a date formatted YYYY-MM-DD", field)
}
