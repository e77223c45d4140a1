package service

import (
	"context"

	"SamuraiArchive/internal/interfaces"
	"SamuraiArchive/internal/metrics"
	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"

	"github.com/sirupsen/logrus"
)

var _ interfaces.TimelineHooks = (*timelineHooks)(nil)

// timelineHooks 每次同步都在独立事务中执行；失败只记录日志与指标，不向上返回
type timelineHooks struct {
	store     *repository.Store
	generator *TimelineGenerator
	logger    *logrus.Logger
	metrics   *metrics.Metrics
}

// NewTimelineHooks 基于同步器创建战役/武士写操作钩子
func NewTimelineHooks(store *repository.Store, generator *TimelineGenerator, logger *logrus.Logger, m *metrics.Metrics) interfaces.TimelineHooks {
	return &timelineHooks{store: store, generator: generator, logger: logger, metrics: m}
}

func (h *timelineHooks) run(ctx context.Context, kind string, fields logrus.Fields, fn func(g *TimelineGenerator) error) {
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		return fn(h.generator.WithStore(tx))
	})
	if err != nil {
		h.logger.WithError(err).WithFields(fields).Error("时间线同步失败")
		h.metrics.ObserveTimelineSync(kind, metrics.OutcomeFailed)
	}
}

func (h *timelineHooks) BattleSaved(ctx context.Context, battle *model.Battle) {
	h.run(ctx, metrics.KindBattle, logrus.Fields{"battle_id": battle.ID, "op": "save"}, func(g *TimelineGenerator) error {
		_, err := g.SyncBattleTimeline(ctx, battle)
		return err
	})
}

func (h *timelineHooks) BattleDeleting(ctx context.Context, battle *model.Battle) {
	h.run(ctx, metrics.KindBattle, logrus.Fields{"battle_id": battle.ID, "op": "delete"}, func(g *TimelineGenerator) error {
		return g.DeleteBattleTimeline(ctx, battle)
	})
}

func (h *timelineHooks) SamouraiSaved(ctx context.Context, samourai *model.Samourai) {
	h.run(ctx, metrics.KindBirth, logrus.Fields{"samourai_id": samourai.ID, "op": "save"}, func(g *TimelineGenerator) error {
		if samourai.BirthDate == nil {
			return g.DeleteSamuraiBirthTimeline(ctx, samourai)
		}
		_, err := g.SyncSamuraiBirthTimeline(ctx, samourai)
		return err
	})
}

func (h *timelineHooks) SamouraiDeleting(ctx context.Context, samourai *model.Samourai) {
	h.run(ctx, metrics.KindBirth, logrus.Fields{"samourai_id": samourai.ID, "op": "delete"}, func(g *TimelineGenerator) error {
		return g.DeleteSamuraiBirthTimeline(ctx, samourai)
	})
}
