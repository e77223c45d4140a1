package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/testhelper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(f *fixture) *AuthService {
	a := NewAuthService(f.store, bcrypt.MinCost, testhelper.NewLogger())
	a.now = func() time.Time { return time.Unix(1700000000, 0) }
	return a
}

func TestAuthRegisterLoginAndResolve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	auth := newAuth(f)

	res, err := auth.Register(ctx, &RegisterInput{Email: " Musashi@Example.com ", Password: "gorin-no-sho", Username: "Musashi"})
	require.NoError(t, err)
	assert.Equal(t, "musashi@example.com", res.User.Email)
	assert.Equal(t, []string{model.RoleUser}, res.User.Roles)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("musashi@example.com:1700000000")), res.Token)

	_, err = auth.Register(ctx, &RegisterInput{Email: "musashi@example.com", Password: "another"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = auth.Login(ctx, &LoginInput{Email: "musashi@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Login(ctx, &LoginInput{Email: "kojiro@example.com", Password: "gorin-no-sho"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	login, err := auth.Login(ctx, &LoginInput{Email: "musashi@example.com", Password: "gorin-no-sho"})
	require.NoError(t, err)

	user, err := auth.ResolveToken(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)
}

func TestAuthResolveTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(newFixture(t))

	for _, token := range []string{
		"not base64!",
		base64.StdEncoding.EncodeToString([]byte("no-separator")),
		base64.StdEncoding.EncodeToString([]byte("x@example.com:abc")),
		base64.StdEncoding.EncodeToString([]byte("ghost@example.com:1700000000")),
	} {
		_, err := auth.ResolveToken(ctx, token)
		assert.ErrorIs(t, err, ErrUnauthorized, token)
	}
}

func TestUserServicePermissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	auth := newAuth(f)
	users := NewUserService(f.store, bcrypt.MinCost, testhelper.NewLogger())

	a, err := auth.Register(ctx, &RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	b, err := auth.Register(ctx, &RegisterInput{Email: "b@example.com", Password: "secret2"})
	require.NoError(t, err)

	alice, err := f.store.Users.GetByID(ctx, a.User.ID)
	require.NoError(t, err)
	admin := &model.User{Email: "admin@example.com", Password: "x"}
	admin.SetRoles([]string{model.RoleUser, model.RoleAdmin})
	require.NoError(t, f.store.Users.Create(ctx, admin))

	_, err = users.List(ctx, alice)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = users.Get(ctx, alice, b.User.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = users.Update(ctx, alice, alice.ID, &UserUpdateInput{Roles: Some([]string{model.RoleAdmin})})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = users.Update(ctx, alice, alice.ID, &UserUpdateInput{Email: Some("b@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	self, err := users.UpdateProfile(ctx, alice, &UserUpdateInput{Username: Some("Alice"), Password: Some("nouveau-secret")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", self.Username)
	_, err = auth.Login(ctx, &LoginInput{Email: "a@example.com", Password: "nouveau-secret"})
	require.NoError(t, err)

	list, err := users.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	promoted, err := users.Update(ctx, admin, b.User.ID, &UserUpdateInput{Roles: Some([]string{model.RoleAdmin})})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.RoleUser, model.RoleAdmin}, promoted.Roles)

	_, err = users.Update(ctx, admin, b.User.ID, &UserUpdateInput{Roles: Some([]string{"ROLE_ROOT"})})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, users.Delete(ctx, admin, b.User.ID))
	_, err = users.Get(ctx, admin, b.User.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	auth := newAuth(f)
	favorites := NewFavoriteService(f.store, testhelper.NewLogger())

	reg, err := auth.Register(ctx, &RegisterInput{Email: "fan@example.com", Password: "secret1"})
	require.NoError(t, err)
	user, err := f.store.Users.GetByID(ctx, reg.User.ID)
	require.NoError(t, err)
	other := &model.User{Email: "other@example.com", Password: "x"}
	other.SetRoles([]string{model.RoleUser})
	require.NoError(t, f.store.Users.Create(ctx, other))

	musashi := f.samourai(t, "Miyamoto Musashi", nil)

	_, err = favorites.Add(ctx, user, &FavoriteInput{EntityType: "samourai", EntityID: 999})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = favorites.Add(ctx, user, &FavoriteInput{EntityType: "ninja", EntityID: musashi.ID})
	assert.ErrorIs(t, err, ErrValidation)

	fav, err := favorites.Add(ctx, user, &FavoriteInput{EntityType: "samourai", EntityID: musashi.ID})
	require.NoError(t, err)
	_, err = favorites.Add(ctx, user, &FavoriteInput{EntityType: "samourai", EntityID: musashi.ID})
	assert.ErrorIs(t, err, ErrConflict)

	ok, err := favorites.Check(ctx, user, &FavoriteInput{EntityType: "samourai", EntityID: musashi.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, favorites.Delete(ctx, other, fav.ID), ErrForbidden)

	toggled, err := favorites.Toggle(ctx, user, &FavoriteInput{EntityType: "samourai", EntityID: musashi.ID})
	require.NoError(t, err)
	assert.False(t, toggled.Favorited)
	toggled, err = favorites.Toggle(ctx, user, &FavoriteInput{EntityType: "samourai", EntityID: musashi.ID})
	require.NoError(t, err)
	assert.True(t, toggled.Favorited)
	require.NotNil(t, toggled.Favorite)

	list, err := favorites.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, favorites.Delete(ctx, user, list[0].ID))
	assert.ErrorIs(t, favorites.Delete(ctx, user, list[0].ID), ErrNotFound)
}

func TestFavoriteRemovedWithBattle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	favorites := NewFavoriteService(f.store, testhelper.NewLogger())

	reg, err := newAuth(f).Register(ctx, &RegisterInput{Email: "historien@example.com", Password: "secret1"})
	require.NoError(t, err)
	user, err := f.store.Users.GetByID(ctx, reg.User.ID)
	require.NoError(t, err)

	b, err := f.battles.Create(ctx, &BattleInput{Name: Some("Bataille de Nagashino"), Date: Some("1575-06-28")})
	require.NoError(t, err)
	_, err = favorites.Add(ctx, user, &FavoriteInput{EntityType: "battle", EntityID: b.ID})
	require.NoError(t, err)

	require.NoError(t, f.battles.Delete(ctx, b.ID))

	ok, err := favorites.Check(ctx, user, &FavoriteInput{EntityType: "battle", EntityID: b.ID})
	require.NoError(t, err)
	assert.False(t, ok)
	list, err := favorites.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, list)
}
