package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput 注册请求
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"omitempty,max=100"`
}

// LoginInput 登录请求
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult 登录/注册返回的 token 与用户信息
type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// AuthService 注册、登录与 token 解析。
// token 为 base64(email:unix时间戳)，不带签名，服务端只解码并按邮箱查找用户
type AuthService struct {
	store      *repository.Store
	bcryptCost int
	logger     *logrus.Logger
	now        func() time.Time
}

// NewAuthService 创建 AuthService；bcryptCost 非法时使用 bcrypt.DefaultCost
func NewAuthService(store *repository.Store, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{store: store, bcryptCost: normalizeCost(bcryptCost), logger: logger, now: time.Now}
}

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	exists, err := s.store.Users.EmailExists(ctx, email, 0)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, conflict("email already registered")
	}

	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return AuthResult{}, err
	}
	user := &model.User{Email: email, Username: strings.TrimSpace(in.Username), Password: hash}
	user.SetRoles([]string{model.RoleUser})
	if err := s.store.Users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	s.logger.WithField("user_id", user.ID).Info("新用户注册")
	return AuthResult{Token: s.IssueToken(user.Email), User: newUserView(user)}, nil
}

func (s *AuthService) Login(ctx context.Context, in *LoginInput) (AuthResult, error) {
	user, err := s.store.Users.GetByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return AuthResult{}, unauthorized("invalid credentials")
	}
	if err != nil {
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return AuthResult{}, unauthorized("invalid credentials")
	}
	return AuthResult{Token: s.IssueToken(user.Email), User: newUserView(user)}, nil
}

// IssueToken 生成 base64(email:timestamp)
func (s *AuthService) IssueToken(email string) string {
	raw := email + ":" + strconv.FormatInt(s.now().Unix(), 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ResolveToken 解码 token 并返回对应用户
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, unauthorized("invalid token")
	}
	idx := strings.LastIndexByte(string(raw), ':')
	if idx <= 0 {
		return nil, unauthorized("invalid token")
	}
	if _, err := strconv.ParseInt(string(raw[idx+1:]), 10, 64); err != nil {
		return nil, unauthorized("invalid token")
	}
	user, err := s.store.Users.GetByEmail(ctx, string(raw[:idx]))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorized("invalid token")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Profile 当前用户信息
func (s *AuthService) Profile(user *model.User) UserView {
	return newUserView(user)
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
