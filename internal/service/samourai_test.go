package service

import (
	"context"
	"testing"

	"SamuraiArchive/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func birthTimeline(t *testing.T, f *fixture, samouraiID uint64) *model.Timeline {
	t.Helper()
	ctx := context.Background()
	link, err := f.store.Timelines.FindLink(ctx, model.LinkedSamourai, samouraiID)
	require.NoError(t, err)
	if link == nil {
		return nil
	}
	tl, err := f.store.Timelines.GetByID(ctx, link.TimelineID)
	require.NoError(t, err)
	return tl
}

func TestSamouraiServiceCreateWithBirth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	katana := &model.Weapon{Name: "Katana", Slug: "katana"}
	require.NoError(t, f.store.Weapons.Create(ctx, katana))
	niten := &model.Style{Name: "Niten Ichi-ryū", Slug: "niten-ichi-ryu"}
	require.NoError(t, f.store.Styles.Create(ctx, niten))

	view, err := f.samourais.Create(ctx, &SamouraiInput{
		Name:      Some("Miyamoto Musashi"),
		BirthDate: Some("1584-03-01"),
		DeathDate: Some("1645-06-13"),
		WeaponIDs: Some([]uint64{katana.ID, katana.ID}),
		StyleIDs:  Some([]uint64{niten.ID}),
	})
	require.NoError(t, err)
	assert.Equal(t, "miyamoto-musashi", view.Slug)
	require.NotNil(t, view.BirthDate)
	assert.Equal(t, "1584-03-01", *view.BirthDate)
	assert.Len(t, view.Weapons, 1)
	assert.Len(t, view.Styles, 1)

	tl := birthTimeline(t, f, view.ID)
	require.NotNil(t, tl)
	assert.Equal(t, "Naissance de Miyamoto Musashi", tl.Title)
	assert.Equal(t, 1584, tl.Year)
}

func TestSamouraiServiceBirthDateTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	view, err := f.samourais.Create(ctx, &SamouraiInput{Name: Some("Sasaki Kojirō")})
	require.NoError(t, err)
	assert.Nil(t, birthTimeline(t, f, view.ID))

	// null -> valeur
	_, err = f.samourais.Update(ctx, view.ID, &SamouraiInput{BirthDate: Some("1575-01-01")})
	require.NoError(t, err)
	require.NotNil(t, birthTimeline(t, f, view.ID))
	rows, links := f.counts(t)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(1), links)

	// champ absent : la date est conservée
	updated, err := f.samourais.Update(ctx, view.ID, &SamouraiInput{Description: Some("Rival de Musashi")})
	require.NoError(t, err)
	require.NotNil(t, updated.BirthDate)
	assert.Equal(t, int64(1), mustCount(t, f))

	// valeur -> null
	updated, err = f.samourais.Update(ctx, view.ID, &SamouraiInput{BirthDate: Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.BirthDate)
	assert.Nil(t, birthTimeline(t, f, view.ID))
	rows, links = f.counts(t)
	assert.Zero(t, rows)
	assert.Zero(t, links)
}

func mustCount(t *testing.T, f *fixture) int64 {
	rows, _ := f.counts(t)
	return rows
}

func TestSamouraiServiceRenameUpdatesBirthTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	view, err := f.samourais.Create(ctx, &SamouraiInput{Name: Some("Kinoshita Tōkichirō"), BirthDate: Some("1537-03-17")})
	require.NoError(t, err)

	updated, err := f.samourais.Update(ctx, view.ID, &SamouraiInput{Name: Some("Toyotomi Hideyoshi")})
	require.NoError(t, err)
	assert.Equal(t, "toyotomi-hideyoshi", updated.Slug)

	tl := birthTimeline(t, f, view.ID)
	require.NotNil(t, tl)
	assert.Equal(t, "Naissance de Toyotomi Hideyoshi", tl.Title)
	assert.Equal(t, int64(1), mustCount(t, f))
}

func TestSamouraiServiceDeleteRemovesBirth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	view, err := f.samourais.Create(ctx, &SamouraiInput{Name: Some("Date Masamune"), BirthDate: Some("1567-09-05")})
	require.NoError(t, err)

	require.NoError(t, f.samourais.Delete(ctx, view.ID))
	rows, links := f.counts(t)
	assert.Zero(t, rows)
	assert.Zero(t, links)
	_, err = f.samourais.Get(ctx, "date-masamune")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSamouraiServiceValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.samourais.Create(ctx, &SamouraiInput{Name: Some("  ")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.samourais.Create(ctx, &SamouraiInput{Name: Some("Clan inconnu"), ClanID: Some(uint64(9))})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.samourais.Create(ctx, &SamouraiInput{Name: Some("Dates inversées"), BirthDate: Some("1600-01-01"), DeathDate: Some("1590-01-01")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.samourais.Update(ctx, 77, &SamouraiInput{Name: Some("Fantôme")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSamouraiServiceClearsClan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clan := &model.Clan{Name: "Takeda", Slug: "takeda"}
	require.NoError(t, f.store.Clans.Create(ctx, clan))

	view, err := f.samourais.Create(ctx, &SamouraiInput{Name: Some("Takeda Shingen"), ClanID: Some(clan.ID)})
	require.NoError(t, err)
	require.NotNil(t, view.Clan)
	assert.Equal(t, "Takeda", view.Clan.Name)

	view, err = f.samourais.Update(ctx, view.ID, &SamouraiInput{ClanID: Null[uint64]()})
	require.NoError(t, err)
	assert.Nil(t, view.Clan)
}
