package service

import (
	"context"
	"testing"

	"SamuraiArchive/internal/metrics"
	"SamuraiArchive/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBattleServiceCreateSyncsTimeline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clan := &model.Clan{Name: "Tokugawa", Slug: "tokugawa"}
	require.NoError(t, f.store.Clans.Create(ctx, clan))
	ieyasu := f.samourai(t, "Tokugawa Ieyasu", nil)

	view, err := f.battles.Create(ctx, &BattleInput{
		Name:         Some("Bataille de Sekigahara"),
		Date:         Some("1600-10-21"),
		Description:  Some("Bataille décisive"),
		WinnerClanID: Some(clan.ID),
		SamouraiIDs:  Some([]uint64{ieyasu.ID}),
	})
	require.NoError(t, err)
	assert.Equal(t, "bataille-de-sekigahara", view.Slug)
	assert.Equal(t, "1600-10-21", view.Date)
	require.NotNil(t, view.WinnerClan)
	assert.Equal(t, "Tokugawa", view.WinnerClan.Name)
	require.Len(t, view.Samourais, 1)

	tl, err := f.store.Timelines.FindBattleTimeline(ctx, view.ID)
	require.NoError(t, err)
	require.NotNil(t, tl)
	assert.Equal(t, 1600, tl.Year)
	assert.Equal(t, "Bataille décisive", tl.Description)
}

func TestBattleServiceValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.battles.Create(ctx, &BattleInput{Name: Some("Sans date")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.battles.Create(ctx, &BattleInput{Date: Some("1600-10-21")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.battles.Create(ctx, &BattleInput{Name: Some("Mauvaise date"), Date: Some("21/10/1600")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.battles.Create(ctx, &BattleInput{Name: Some("Lieu inconnu"), Date: Some("1600-10-21"), LocationID: Some(uint64(42))})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.battles.Create(ctx, &BattleInput{Name: Some("Participants inconnus"), Date: Some("1600-10-21"), SamouraiIDs: Some([]uint64{7})})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := f.battles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBattleServiceUpdateRefreshesTimeline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.battles.Create(ctx, &BattleInput{Name: Some("Dan-no-ura"), Date: Some("1185-04-25")})
	require.NoError(t, err)

	_, err = f.battles.Update(ctx, created.ID, &BattleInput{Name: Some("Bataille de Dan-no-ura"), Date: Null[string]()})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := f.battles.Update(ctx, created.ID, &BattleInput{Name: Some("Bataille de Dan-no-ura")})
	require.NoError(t, err)
	assert.Equal(t, "bataille-de-dan-no-ura", updated.Slug)
	assert.Equal(t, "1185-04-25", updated.Date)

	tl, err := f.store.Timelines.FindBattleTimeline(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, tl)
	assert.Equal(t, "Bataille de Dan-no-ura", tl.Title)
	rows, links := f.counts(t)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(1), links)
}

func TestBattleServiceDeleteRemovesTimeline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.battles.Create(ctx, &BattleInput{Name: Some("Bataille de Sekigahara"), Date: Some("1600-10-21")})
	require.NoError(t, err)

	require.NoError(t, f.battles.Delete(ctx, created.ID))
	rows, links := f.counts(t)
	assert.Zero(t, rows)
	assert.Zero(t, links)

	_, err = f.battles.Get(ctx, "bataille-de-sekigahara")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.battles.Delete(ctx, created.ID), ErrNotFound)
}

func TestBattleServiceSlugCollision(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, err := f.battles.Create(ctx, &BattleInput{Name: Some("Siège d'Osaka"), Date: Some("1614-11-19")})
	require.NoError(t, err)
	b, err := f.battles.Create(ctx, &BattleInput{Name: Some("Siège d'Osaka"), Date: Some("1615-06-04")})
	require.NoError(t, err)
	assert.Equal(t, "siege-d-osaka", a.Slug)
	assert.Equal(t, "siege-d-osaka-2", b.Slug)

	got, err := f.battles.Get(ctx, "siege-d-osaka-2")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestBattleHookFailureDoesNotBlockWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	// 关联表缺失，同步在查询关联时失败
	require.NoError(t, f.db.Migrator().DropTable(&model.TimelineEntity{}))

	view, err := f.battles.Create(ctx, &BattleInput{Name: Some("Bataille de Kawanakajima"), Date: Some("1561-10-18")})
	require.NoError(t, err)

	_, err = f.battles.Get(ctx, view.Slug)
	require.NoError(t, err)
	rows, err := f.store.Timelines.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, rows, "failed sync is rolled back")
	assert.Equal(t, float64(1), f.metrics.TimelineSyncCount(metrics.KindBattle, metrics.OutcomeFailed))
}
