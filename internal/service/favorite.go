package service

import (
	"context"
	"errors"
	"strconv"

	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"

	"github.com/sirupsen/logrus"
)

// FavoriteInput 收藏请求
type FavoriteInput struct {
	EntityType string `json:"entity_type" form:"entity_type" binding:"required"`
	EntityID   uint64 `json:"entity_id" form:"entity_id" binding:"required,gt=0"`
}

// ToggleResult toggle 之后的收藏状态
type ToggleResult struct {
	Favorited bool          `json:"favorited"`
	Favorite  *FavoriteView `json:"favorite,omitempty"`
}

// FavoriteService 用户收藏
type FavoriteService struct {
	store  *repository.Store
	logger *logrus.Logger
}

// NewFavoriteService 创建 FavoriteService
func NewFavoriteService(store *repository.Store, logger *logrus.Logger) *FavoriteService {
	return &FavoriteService{store: store, logger: logger}
}

func (s *FavoriteService) List(ctx context.Context, user *model.User) ([]FavoriteView, error) {
	list, err := s.store.Favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return mapViews(list, newFavoriteView), nil
}

// Add 收藏；目标不存在返回 404，重复收藏返回 409
func (s *FavoriteService) Add(ctx context.Context, user *model.User, in *FavoriteInput) (FavoriteView, error) {
	entityType, err := s.target(ctx, in)
	if err != nil {
		return FavoriteView{}, err
	}
	existing, err := s.store.Favorites.Find(ctx, user.ID, entityType, in.EntityID)
	if err != nil {
		return FavoriteView{}, err
	}
	if existing != nil {
		return FavoriteView{}, conflict("already in favorites")
	}
	fav := &model.Favorite{UserID: user.ID, EntityType: entityType, EntityID: in.EntityID}
	if err := s.store.Favorites.Create(ctx, fav); err != nil {
		return FavoriteView{}, err
	}
	return newFavoriteView(fav), nil
}

// Delete 只能删除自己的收藏
func (s *FavoriteService) Delete(ctx context.Context, user *model.User, id uint64) error {
	fav, err := s.store.Favorites.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("favorite " + strconv.FormatUint(id, 10) + " not found")
	}
	if err != nil {
		return err
	}
	if fav.UserID != user.ID {
		return forbidden("access denied")
	}
	return s.store.Favorites.Delete(ctx, id)
}

// Toggle 已收藏则取消，否则收藏
func (s *FavoriteService) Toggle(ctx context.Context, user *model.User, in *FavoriteInput) (ToggleResult, error) {
	entityType, err := s.target(ctx, in)
	if err != nil {
		return ToggleResult{}, err
	}
	existing, err := s.store.Favorites.Find(ctx, user.ID, entityType, in.EntityID)
	if err != nil {
		return ToggleResult{}, err
	}
	if existing != nil {
		if err := s.store.Favorites.Delete(ctx, existing.ID); err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{Favorited: false}, nil
	}
	fav := &model.Favorite{UserID: user.ID, EntityType: entityType, EntityID: in.EntityID}
	if err := s.store.Favorites.Create(ctx, fav); err != nil {
		return ToggleResult{}, err
	}
	view := newFavoriteView(fav)
	return ToggleResult{Favorited: true, Favorite: &view}, nil
}

// Check 是否已收藏
func (s *FavoriteService) Check(ctx context.Context, user *model.User, in *FavoriteInput) (bool, error) {
	entityType := model.FavoriteType(in.EntityType)
	if !entityType.Valid() {
		return false, invalid("unknown entity_type %q", in.EntityType)
	}
	existing, err := s.store.Favorites.Find(ctx, user.ID, entityType, in.EntityID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// target 校验类型并确认目标实体存在
func (s *FavoriteService) target(ctx context.Context, in *FavoriteInput) (model.FavoriteType, error) {
	entityType := model.FavoriteType(in.EntityType)
	if !entityType.Valid() {
		return "", invalid("unknown entity_type %q", in.EntityType)
	}
	var err error
	switch entityType {
	case model.FavoriteSamourai:
		_, err = s.store.Samourais.GetByID(ctx, in.EntityID)
	case model.FavoriteClan:
		_, err = s.store.Clans.GetByID(ctx, in.EntityID)
	case model.FavoriteBattle:
		_, err = s.store.Battles.GetByID(ctx, in.EntityID)
	case model.FavoriteWeapon:
		_, err = s.store.Weapons.GetByID(ctx, in.EntityID)
	case model.FavoriteStyle:
		_, err = s.store.Styles.GetByID(ctx, in.EntityID)
	case model.FavoriteLocation:
		_, err = s.store.Locations.GetByID(ctx, in.EntityID)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return "", notFound(in.EntityType + " " + strconv.FormatUint(in.EntityID, 10) + " not found")
	}
	return entityType, err
}
