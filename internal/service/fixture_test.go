package service

import (
	"context"
	"testing"
	"time"

	"SamuraiArchive/internal/interfaces"
	"SamuraiArchive/internal/metrics"
	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"
	"SamuraiArchive/internal/testhelper"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	store     *repository.Store
	metrics   *metrics.Metrics
	generator *TimelineGenerator
	hooks     interfaces.TimelineHooks
	battles   *BattleService
	samourais *SamouraiService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := testhelper.NewLogger()
	db := testhelper.NewDB(t)
	store := repository.NewStore(db)
	m := metrics.New(prometheus.NewRegistry())
	gen := NewTimelineGenerator(store, logger, m)
	hooks := NewTimelineHooks(store, gen, logger, m)
	return &fixture{
		db:        db,
		store:     store,
		metrics:   m,
		generator: gen,
		hooks:     hooks,
		battles:   NewBattleService(store, hooks, logger),
		samourais: NewSamouraiService(store, hooks, logger),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) battle(t *testing.T, name string, date time.Time) *model.Battle {
	t.Helper()
	b := &model.Battle{Name: name, Date: date, Slug: "b-" + date.Format("20060102")}
	require.NoError(t, f.store.Battles.Create(context.Background(), b))
	return b
}

func (f *fixture) samourai(t *testing.T, name string, birth *time.Time) *model.Samourai {
	t.Helper()
	s := &model.Samourai{Name: name, BirthDate: birth, Slug: "s-" + name}
	require.NoError(t, f.store.Samourais.Create(context.Background(), s))
	return s
}

func (f *fixture) counts(t *testing.T) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	rows, err := f.store.Timelines.Count(ctx)
	require.NoError(t, err)
	links, err := f.store.Timelines.CountLinks(ctx)
	require.NoError(t, err)
	return rows, links
}
