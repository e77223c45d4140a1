package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SamuraiArchive/internal/metrics"
	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"

	"github.com/sirupsen/logrus"
)

// GenerateStats 全量重建统计
type GenerateStats struct {
	BattlesCreated  int `json:"battles_created"`
	BattlesUpdated  int `json:"battles_updated"`
	BirthsCreated   int `json:"births_created"`
	BirthsUpdated   int `json:"births_updated"`
	SamuraisSkipped int `json:"samurais_skipped"`
}

// HistoricalStats 历史事件导入统计
type HistoricalStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// TimelineGenerator 维护由战役与武士出生派生的时间线条目，以及静态历史事件。
// 所有读写都经过 store；调用方负责提交（store 可以是事务绑定的 Store）。
type TimelineGenerator struct {
	store   *repository.Store
	logger  *logrus.Logger
	metrics *metrics.Metrics
	events  []HistoricalEvent
	now     func() time.Time
}

// NewTimelineGenerator 创建时间线同步器
func NewTimelineGenerator(store *repository.Store, logger *logrus.Logger, m *metrics.Metrics) *TimelineGenerator {
	return &TimelineGenerator{
		store:   store,
		logger:  logger,
		metrics: m,
		events:  HistoricalEvents(),
		now:     time.Now,
	}
}

// WithStore 返回绑定到另一个 Store（通常是事务）的副本
func (g *TimelineGenerator) WithStore(store *repository.Store) *TimelineGenerator {
	cp := *g
	cp.store = store
	return &cp
}

// WithHistoricalEvents 替换历史事件列表
func (g *TimelineGenerator) WithHistoricalEvents(events []HistoricalEvent) *TimelineGenerator {
	cp := *g
	cp.events = events
	return &cp
}

// SyncBattleTimeline 创建或更新战役对应的 battle 条目；首次创建时写入关联行。返回是否新建
func (g *TimelineGenerator) SyncBattleTimeline(ctx context.Context, battle *model.Battle) (bool, error) {
	if battle.Date.IsZero() {
		return false, fmt.Errorf("battle %d: %w", battle.ID, ErrMissingDate)
	}

	timeline, err := g.store.Timelines.FindBattleTimeline(ctx, battle.ID)
	if err != nil {
		return false, fmt.Errorf("查询战役时间线失败: %w", err)
	}

	now := g.now()
	isNew := timeline == nil
	if isNew {
		battleID := battle.ID
		timeline = &model.Timeline{
			Type:      model.TimelineBattle,
			BattleID:  &battleID,
			CreatedAt: now,
		}
	}
	timeline.Title = battle.Name
	timeline.Date = battle.Date
	timeline.Year = battle.Date.Year()
	timeline.Description = battle.Description
	timeline.UpdatedAt = now

	if isNew {
		if err := g.dropStaleBattleLink(ctx, battle.ID); err != nil {
			return false, err
		}
		if err := g.store.Timelines.Create(ctx, timeline); err != nil {
			return false, fmt.Errorf("创建战役时间线失败: %w", err)
		}
		link := &model.TimelineEntity{
			TimelineID: timeline.ID,
			EntityType: model.LinkedBattle,
			EntityID:   battle.ID,
		}
		if err := g.store.Timelines.CreateLink(ctx, link); err != nil {
			return false, fmt.Errorf("创建战役时间线关联失败: %w", err)
		}
		g.metrics.ObserveTimelineSync(metrics.KindBattle, metrics.OutcomeCreated)
		return true, nil
	}

	if err := g.store.Timelines.Save(ctx, timeline); err != nil {
		return false, fmt.Errorf("更新战役时间线失败: %w", err)
	}
	g.metrics.ObserveTimelineSync(metrics.KindBattle, metrics.OutcomeUpdated)
	return false, nil
}

// dropStaleBattleLink 战役没有 battle 条目却仍有关联行时（条目被历史事件覆盖或已删除），先删掉旧关联
func (g *TimelineGenerator) dropStaleBattleLink(ctx context.Context, battleID uint64) error {
	link, err := g.store.Timelines.FindLink(ctx, model.LinkedBattle, battleID)
	if err != nil {
		return fmt.Errorf("查询战役时间线关联失败: %w", err)
	}
	if link == nil {
		return nil
	}
	g.logger.WithFields(logrus.Fields{
		"battle_id":   battleID,
		"timeline_id": link.TimelineID,
	}).Warn("战役时间线关联指向非 battle 条目，将重新创建")
	if err := g.store.Timelines.DeleteLink(ctx, link.ID); err != nil {
		return fmt.Errorf("删除失效关联失败: %w", err)
	}
	return nil
}

// SyncSamuraiBirthTimeline 创建或更新武士出生条目。出生日期为空时不做任何事并返回 false
func (g *TimelineGenerator) SyncSamuraiBirthTimeline(ctx context.Context, samourai *model.Samourai) (bool, error) {
	if samourai.BirthDate == nil || samourai.BirthDate.IsZero() {
		return false, nil
	}

	link, err := g.store.Timelines.FindLink(ctx, model.LinkedSamourai, samourai.ID)
	if err != nil {
		return false, fmt.Errorf("查询武士时间线关联失败: %w", err)
	}

	var timeline *model.Timeline
	if link != nil {
		timeline, err = g.linkedBirthTimeline(ctx, link)
		if err != nil {
			return false, err
		}
		if timeline == nil {
			// 关联失效：删除旧关联，下面重新建条目与关联
			if err := g.store.Timelines.DeleteLink(ctx, link.ID); err != nil {
				return false, fmt.Errorf("删除失效关联失败: %w", err)
			}
		}
	}

	now := g.now()
	isNew := timeline == nil
	if isNew {
		timeline = &model.Timeline{
			Type:      model.TimelineBirth,
			BattleID:  nil,
			CreatedAt: now,
		}
	}
	birth := *samourai.BirthDate
	timeline.Title = fmt.Sprintf("Naissance de %s", samourai.Name)
	timeline.Date = birth
	timeline.Year = birth.Year()
	timeline.Description = fmt.Sprintf("Naissance du samurai %s", samourai.Name)
	timeline.UpdatedAt = now

	if isNew {
		if err := g.store.Timelines.Create(ctx, timeline); err != nil {
			return false, fmt.Errorf("创建出生时间线失败: %w", err)
		}
		newLink := &model.TimelineEntity{
			TimelineID: timeline.ID,
			EntityType: model.LinkedSamourai,
			EntityID:   samourai.ID,
		}
		if err := g.store.Timelines.CreateLink(ctx, newLink); err != nil {
			return false, fmt.Errorf("创建出生时间线关联失败: %w", err)
		}
		g.metrics.ObserveTimelineSync(metrics.KindBirth, metrics.OutcomeCreated)
		return true, nil
	}

	if err := g.store.Timelines.Save(ctx, timeline); err != nil {
		return false, fmt.Errorf("更新出生时间线失败: %w", err)
	}
	g.metrics.ObserveTimelineSync(metrics.KindBirth, metrics.OutcomeUpdated)
	return false, nil
}

// linkedBirthTimeline 沿关联找到出生条目；条目不存在或类型不是 birth 时返回 nil 并记录告警
func (g *TimelineGenerator) linkedBirthTimeline(ctx context.Context, link *model.TimelineEntity) (*model.Timeline, error) {
	timeline, err := g.store.Timelines.GetByID(ctx, link.TimelineID)
	if errors.Is(err, repository.ErrNotFound) {
		g.logger.WithFields(logrus.Fields{
			"samourai_id": link.EntityID,
			"timeline_id": link.TimelineID,
		}).Warn("武士时间线关联指向不存在的条目，将重新创建")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询出生时间线失败: %w", err)
	}
	if timeline.Type != model.TimelineBirth {
		g.logger.WithFields(logrus.Fields{
			"samourai_id": link.EntityID,
			"timeline_id": timeline.ID,
			"type":        timeline.Type,
		}).Warn("武士时间线关联指向非 birth 条目，将重新创建")
		return nil, nil
	}
	return timeline, nil
}

// DeleteBattleTimeline 删除战役的 battle 条目及其全部关联；没有条目时只清理残留关联
func (g *TimelineGenerator) DeleteBattleTimeline(ctx context.Context, battle *model.Battle) error {
	timeline, err := g.store.Timelines.FindBattleTimeline(ctx, battle.ID)
	if err != nil {
		return fmt.Errorf("查询战役时间线失败: %w", err)
	}
	if timeline == nil {
		return g.dropStaleBattleLink(ctx, battle.ID)
	}
	if _, err := g.store.Timelines.DeleteLinksByTimelineID(ctx, timeline.ID); err != nil {
		return fmt.Errorf("删除战役时间线关联失败: %w", err)
	}
	if err := g.store.Timelines.Delete(ctx, timeline.ID); err != nil {
		return fmt.Errorf("删除战役时间线失败: %w", err)
	}
	g.metrics.ObserveTimelineSync(metrics.KindBattle, metrics.OutcomeDeleted)
	return nil
}

// DeleteSamuraiBirthTimeline 删除武士的关联；关联指向 birth 条目时一并删除条目
func (g *TimelineGenerator) DeleteSamuraiBirthTimeline(ctx context.Context, samourai *model.Samourai) error {
	link, err := g.store.Timelines.FindLink(ctx, model.LinkedSamourai, samourai.ID)
	if err != nil {
		return fmt.Errorf("查询武士时间线关联失败: %w", err)
	}
	if link == nil {
		return nil
	}
	if err := g.store.Timelines.DeleteLink(ctx, link.ID); err != nil {
		return fmt.Errorf("删除武士时间线关联失败: %w", err)
	}

	timeline, err := g.store.Timelines.GetByID(ctx, link.TimelineID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询出生时间线失败: %w", err)
	}
	if timeline.Type != model.TimelineBirth {
		return nil
	}
	if err := g.store.Timelines.Delete(ctx, timeline.ID); err != nil {
		return fmt.Errorf("删除出生时间线失败: %w", err)
	}
	g.metrics.ObserveTimelineSync(metrics.KindBirth, metrics.OutcomeDeleted)
	return nil
}

// GenerateTimeline 全量对账：遍历全部战役与武士，在一个事务内同步。重复执行不会产生新条目
func (g *TimelineGenerator) GenerateTimeline(ctx context.Context) (GenerateStats, error) {
	var stats GenerateStats
	err := g.store.Transaction(ctx, func(tx *repository.Store) error {
		stats = GenerateStats{}
		gen := g.WithStore(tx)

		battles, err := tx.Battles.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("拉取战役失败: %w", err)
		}
		for _, b := range battles {
			isNew, err := gen.SyncBattleTimeline(ctx, b)
			if err != nil {
				return fmt.Errorf("同步战役 %d 失败: %w", b.ID, err)
			}
			if isNew {
				stats.BattlesCreated++
			} else {
				stats.BattlesUpdated++
			}
		}

		samourais, err := tx.Samourais.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("拉取武士失败: %w", err)
		}
		for _, s := range samourais {
			if s.BirthDate == nil {
				stats.SamuraisSkipped++
				continue
			}
			isNew, err := gen.SyncSamuraiBirthTimeline(ctx, s)
			if err != nil {
				return fmt.Errorf("同步武士 %d 失败: %w", s.ID, err)
			}
			if isNew {
				stats.BirthsCreated++
			} else {
				stats.BirthsUpdated++
			}
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	g.logger.WithFields(logrus.Fields{
		"battles_created":  stats.BattlesCreated,
		"battles_updated":  stats.BattlesUpdated,
		"births_created":   stats.BirthsCreated,
		"births_updated":   stats.BirthsUpdated,
		"samurais_skipped": stats.SamuraisSkipped,
	}).Info("时间线全量重建完成")
	return stats, nil
}

// SyncHistoricalEvents 导入静态历史事件，按 (title, year) 去重。
// 单个事件失败（日期解析、写库）只记录并计入 skipped，不影响其余事件
func (g *TimelineGenerator) SyncHistoricalEvents(ctx context.Context) (HistoricalStats, error) {
	var stats HistoricalStats
	for _, ev := range g.events {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		created, err := g.syncHistoricalEvent(ctx, ev)
		if err != nil {
			g.logger.WithError(err).WithFields(logrus.Fields{
				"title": ev.Title,
				"year":  ev.Year,
			}).Warn("历史事件同步失败，跳过")
			g.metrics.ObserveTimelineSync(metrics.KindHistorical, metrics.OutcomeSkipped)
			stats.Skipped++
			continue
		}
		if created {
			g.metrics.ObserveTimelineSync(metrics.KindHistorical, metrics.OutcomeCreated)
			stats.Created++
		} else {
			g.metrics.ObserveTimelineSync(metrics.KindHistorical, metrics.OutcomeUpdated)
			stats.Updated++
		}
	}

	g.logger.WithFields(logrus.Fields{
		"created": stats.Created,
		"updated": stats.Updated,
		"skipped": stats.Skipped,
	}).Info("历史事件同步完成")
	return stats, nil
}

func (g *TimelineGenerator) syncHistoricalEvent(ctx context.Context, ev HistoricalEvent) (bool, error) {
	date, err := time.Parse(dateLayout, ev.Date)
	if err != nil {
		return false, fmt.Errorf("日期解析失败: %w", err)
	}
	eventType, err := model.ParseTimelineType(string(ev.Type))
	if err != nil {
		return false, err
	}

	var created bool
	err = g.store.Transaction(ctx, func(tx *repository.Store) error {
		timeline, err := tx.Timelines.FindByTitleYear(ctx, ev.Title, ev.Year)
		if err != nil {
			return err
		}
		now := g.now()
		created = timeline == nil
		if created {
			timeline = &model.Timeline{CreatedAt: now}
		}
		timeline.Year = ev.Year
		timeline.Date = date
		timeline.Title = ev.Title
		timeline.Type = eventType
		timeline.Description = ev.Description
		timeline.UpdatedAt = now
		if created {
			return tx.Timelines.Create(ctx, timeline)
		}
		return tx.Timelines.Save(ctx, timeline)
	})
	return created, err
}
