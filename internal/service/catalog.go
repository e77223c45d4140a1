package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"
	"SamuraiArchive/internal/utils/slug"

	"github.com/sirupsen/logrus"
)

// ClanInput 创建/更新氏族的请求体；缺失字段在更新时保持不变
type ClanInput struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Founder     Optional[string] `json:"founder"`
	Image       Optional[string] `json:"image"`
}

type LocationInput struct {
	Name        Optional[string]  `json:"name"`
	Region      Optional[string]  `json:"region"`
	Latitude    Optional[float64] `json:"latitude"`
	Longitude   Optional[float64] `json:"longitude"`
	Description Optional[string]  `json:"description"`
	Image       Optional[string]  `json:"image"`
}

type WeaponInput struct {
	Name        Optional[string] `json:"name"`
	Type        Optional[string] `json:"type"`
	Description Optional[string] `json:"description"`
	Image       Optional[string] `json:"image"`
}

type StyleInput struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Founder     Optional[string] `json:"founder"`
	Image       Optional[string] `json:"image"`
}

// catalogDef 描述一种简单目录实体（无时间线副作用）的字段映射
type catalogDef[T any, In any, V any] struct {
	entity string
	repo   func(s *repository.Store) repository.EntityRepository[T]
	apply  func(e *T, in *In)
	name   func(e *T) *string
	slug   func(e *T) *string
	id     func(e *T) uint64
	view   func(e *T) V
}

// CatalogService 氏族、地点、武器、流派的通用 CRUD
type CatalogService[T any, In any, V any] struct {
	store  *repository.Store
	def    catalogDef[T, In, V]
	logger *logrus.Logger
}

// NewClanService 氏族服务
func NewClanService(store *repository.Store, logger *logrus.Logger) *CatalogService[model.Clan, ClanInput, ClanView] {
	return &CatalogService[model.Clan, ClanInput, ClanView]{store: store, logger: logger, def: catalogDef[model.Clan, ClanInput, ClanView]{
		entity: "clan",
		repo:   func(s *repository.Store) repository.EntityRepository[model.Clan] { return s.Clans },
		apply: func(c *model.Clan, in *ClanInput) {
			setString(&c.Name, in.Name)
			setString(&c.Description, in.Description)
			setPtr(&c.Founder, in.Founder)
			setPtr(&c.Image, in.Image)
		},
		name: func(c *model.Clan) *string { return &c.Name },
		slug: func(c *model.Clan) *string { return &c.Slug },
		id:   func(c *model.Clan) uint64 { return c.ID },
		view: newClanView,
	}}
}

// NewLocationService 地点服务
func NewLocationService(store *repository.Store, logger *logrus.Logger) *CatalogService[model.Location, LocationInput, LocationView] {
	return &CatalogService[model.Location, LocationInput, LocationView]{store: store, logger: logger, def: catalogDef[model.Location, LocationInput, LocationView]{
		entity: "location",
		repo:   func(s *repository.Store) repository.EntityRepository[model.Location] { return s.Locations },
		apply: func(l *model.Location, in *LocationInput) {
			setString(&l.Name, in.Name)
			setPtr(&l.Region, in.Region)
			setPtr(&l.Latitude, in.Latitude)
			setPtr(&l.Longitude, in.Longitude)
			setString(&l.Description, in.Description)
			setPtr(&l.Image, in.Image)
		},
		name: func(l *model.Location) *string { return &l.Name },
		slug: func(l *model.Location) *string { return &l.Slug },
		id:   func(l *model.Location) uint64 { return l.ID },
		view: newLocationView,
	}}
}

// NewWeaponService 武器服务
func NewWeaponService(store *repository.Store, logger *logrus.Logger) *CatalogService[model.Weapon, WeaponInput, WeaponView] {
	return &CatalogService[model.Weapon, WeaponInput, WeaponView]{store: store, logger: logger, def: catalogDef[model.Weapon, WeaponInput, WeaponView]{
		entity: "weapon",
		repo:   func(s *repository.Store) repository.EntityRepository[model.Weapon] { return s.Weapons },
		apply: func(w *model.Weapon, in *WeaponInput) {
			setString(&w.Name, in.Name)
			setPtr(&w.Type, in.Type)
			setString(&w.Description, in.Description)
			setPtr(&w.Image, in.Image)
		},
		name: func(w *model.Weapon) *string { return &w.Name },
		slug: func(w *model.Weapon) *string { return &w.Slug },
		id:   func(w *model.Weapon) uint64 { return w.ID },
		view: newWeaponView,
	}}
}

// NewStyleService 流派服务
func NewStyleService(store *repository.Store, logger *logrus.Logger) *CatalogService[model.Style, StyleInput, StyleView] {
	return &CatalogService[model.Style, StyleInput, StyleView]{store: store, logger: logger, def: catalogDef[model.Style, StyleInput, StyleView]{
		entity: "style",
		repo:   func(s *repository.Store) repository.EntityRepository[model.Style] { return s.Styles },
		apply: func(st *model.Style, in *StyleInput) {
			setString(&st.Name, in.Name)
			setString(&st.Description, in.Description)
			setPtr(&st.Founder, in.Founder)
			setPtr(&st.Image, in.Image)
		},
		name: func(st *model.Style) *string { return &st.Name },
		slug: func(st *model.Style) *string { return &st.Slug },
		id:   func(st *model.Style) uint64 { return st.ID },
		view: newStyleView,
	}}
}

func (s *CatalogService[T, In, V]) List(ctx context.Context) ([]V, error) {
	list, err := s.def.repo(s.store).List(ctx)
	if err != nil {
		return nil, err
	}
	return mapViews(list, s.def.view), nil
}

// Get key 为数字时按 id 查询，否则按 slug
func (s *CatalogService[T, In, V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	e, err := getByKey(ctx, s.def.repo(s.store), key)
	if err != nil {
		return zero, s.notFound(err, key)
	}
	return s.def.view(e), nil
}

func (s *CatalogService[T, In, V]) Create(ctx context.Context, in *In) (V, error) {
	var zero V
	e := new(T)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		repo := s.def.repo(tx)
		s.def.apply(e, in)
		if err := s.assignSlug(ctx, repo, e, ""); err != nil {
			return err
		}
		return repo.Create(ctx, e)
	})
	if err != nil {
		return zero, err
	}
	return s.reload(ctx, s.def.id(e))
}

func (s *CatalogService[T, In, V]) Update(ctx context.Context, id uint64, in *In) (V, error) {
	var zero V
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		repo := s.def.repo(tx)
		e, err := repo.GetByID(ctx, id)
		if err != nil {
			return s.notFound(err, strconv.FormatUint(id, 10))
		}
		oldName := *s.def.name(e)
		s.def.apply(e, in)
		if err := s.assignSlug(ctx, repo, e, oldName); err != nil {
			return err
		}
		return repo.Save(ctx, e)
	})
	if err != nil {
		return zero, err
	}
	return s.reload(ctx, id)
}

func (s *CatalogService[T, In, V]) Delete(ctx context.Context, id uint64) error {
	if err := s.def.repo(s.store).Delete(ctx, id); err != nil {
		return s.notFound(err, strconv.FormatUint(id, 10))
	}
	s.logger.WithFields(logrus.Fields{"entity": s.def.entity, "id": id}).Info("已删除")
	return nil
}

// assignSlug 校验名称；新建或改名时重新生成唯一 slug
func (s *CatalogService[T, In, V]) assignSlug(ctx context.Context, repo repository.EntityRepository[T], e *T, oldName string) error {
	name := *s.def.name(e)
	if name == "" {
		return invalid("name is required")
	}
	if oldName != "" && oldName == name {
		return nil
	}
	generated, err := uniqueSlug(ctx, repo, name, s.def.id(e))
	if err != nil {
		return err
	}
	*s.def.slug(e) = generated
	return nil
}

func (s *CatalogService[T, In, V]) reload(ctx context.Context, id uint64) (V, error) {
	var zero V
	e, err := s.def.repo(s.store).GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	return s.def.view(e), nil
}

func (s *CatalogService[T, In, V]) notFound(err error, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(s.def.entity + " " + key + " not found")
	}
	return err
}

// getByKey 数字走主键，其余走 slug
func getByKey[T any](ctx context.Context, repo repository.EntityRepository[T], key string) (*T, error) {
	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		return repo.GetByID(ctx, id)
	}
	return repo.GetBySlug(ctx, strings.ToLower(key))
}

func uniqueSlug[T any](ctx context.Context, repo repository.EntityRepository[T], name string, selfID uint64) (string, error) {
	return slug.Unique(ctx, slug.Make(name), func(ctx context.Context, candidate string) (bool, error) {
		return repo.SlugExists(ctx, candidate, selfID)
	})
}

// resolveRef 校验外键指向的记录存在；null 时清空
func resolveRef[T any](ctx context.Context, repo repository.EntityRepository[T], o Optional[uint64], field string, dst **uint64) (*T, error) {
	if !o.Set {
		return nil, nil
	}
	if o.Null || o.Value == 0 {
		*dst = nil
		return nil, nil
	}
	e, err := repo.GetByID(ctx, o.Value)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("%s %d does not exist", field, o.Value)
	}
	if err != nil {
		return nil, err
	}
	id := o.Value
	*dst = &id
	return e, nil
}

// resolveMany 批量校验多对多关联 id；有任意一个不存在即报错
func resolveMany[T any](ctx context.Context, repo repository.EntityRepository[T], ids []uint64, field string) ([]*T, error) {
	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	list, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(list) != len(unique) {
		return nil, invalid("%s contains unknown ids", field)
	}
	return list, nil
}
