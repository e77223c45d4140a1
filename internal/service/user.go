package service

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"

	"github.com/sirupsen/logrus"
)

// UserUpdateInput 更新用户；roles 仅管理员可修改
type UserUpdateInput struct {
	Email    Optional[string]   `json:"email"`
	Username Optional[string]   `json:"username"`
	Password Optional[string]   `json:"password"`
	Roles    Optional[[]string] `json:"roles"`
}

// UserService 用户管理：管理员可操作所有用户，普通用户只能操作自己
type UserService struct {
	store      *repository.Store
	bcryptCost int
	logger     *logrus.Logger
}

// NewUserService 创建 UserService
func NewUserService(store *repository.Store, bcryptCost int, logger *logrus.Logger) *UserService {
	return &UserService{store: store, bcryptCost: normalizeCost(bcryptCost), logger: logger}
}

func (s *UserService) List(ctx context.Context, actor *model.User) ([]UserView, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("admin role required")
	}
	list, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapViews(list, newUserView), nil
}

func (s *UserService) Get(ctx context.Context, actor *model.User, id uint64) (UserView, error) {
	if err := canAccess(actor, id); err != nil {
		return UserView{}, err
	}
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return UserView{}, userNotFound(err, id)
	}
	return newUserView(user), nil
}

func (s *UserService) Update(ctx context.Context, actor *model.User, id uint64, in *UserUpdateInput) (UserView, error) {
	if err := canAccess(actor, id); err != nil {
		return UserView{}, err
	}
	if in.Roles.Set && !actor.IsAdmin() {
		return UserView{}, forbidden("only admins can change roles")
	}
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return UserView{}, userNotFound(err, id)
	}
	if err := s.apply(ctx, user, in); err != nil {
		return UserView{}, err
	}
	if err := s.store.Users.Save(ctx, user); err != nil {
		return UserView{}, err
	}
	return newUserView(user), nil
}

// UpdateProfile 当前用户修改自己的资料（不能修改角色）
func (s *UserService) UpdateProfile(ctx context.Context, actor *model.User, in *UserUpdateInput) (UserView, error) {
	if in.Roles.Set {
		return UserView{}, forbidden("roles cannot be changed from the profile")
	}
	return s.Update(ctx, actor, actor.ID, in)
}

func (s *UserService) Delete(ctx context.Context, actor *model.User, id uint64) error {
	if err := canAccess(actor, id); err != nil {
		return err
	}
	if err := s.store.Users.Delete(ctx, id); err != nil {
		return userNotFound(err, id)
	}
	s.logger.WithFields(logrus.Fields{"user_id": id, "actor_id": actor.ID}).Info("用户已删除")
	return nil
}

func (s *UserService) apply(ctx context.Context, user *model.User, in *UserUpdateInput) error {
	if in.Email.Set {
		email := normalizeEmail(in.Email.Value)
		if in.Email.Null || !strings.Contains(email, "@") {
			return invalid("email must be a valid address")
		}
		exists, err := s.store.Users.EmailExists(ctx, email, user.ID)
		if err != nil {
			return err
		}
		if exists {
			return conflict("email already registered")
		}
		user.Email = email
	}
	setString(&user.Username, in.Username)
	if in.Password.Set {
		if in.Password.Null || len(in.Password.Value) < 6 {
			return invalid("password must be at least 6 characters")
		}
		hash, err := hashPassword(in.Password.Value, s.bcryptCost)
		if err != nil {
			return err
		}
		user.Password = hash
	}
	if in.Roles.Set {
		roles := []string{model.RoleUser}
		for _, r := range in.Roles.Value {
			if r != model.RoleUser && r != model.RoleAdmin {
				return invalid("unknown role %q", r)
			}
			if !slices.Contains(roles, r) {
				roles = append(roles, r)
			}
		}
		user.SetRoles(roles)
	}
	return nil
}

func canAccess(actor *model.User, id uint64) error {
	if actor.ID == id || actor.IsAdmin() {
		return nil
	}
	return forbidden("access denied")
}

func userNotFound(err error, id uint64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("user " + strconv.FormatUint(id, 10) + " not found")
	}
	return err
}
