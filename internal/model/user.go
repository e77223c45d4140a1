package model

import (
	"encoding/json"
	"slices"
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User 用户。Password 存 bcrypt 哈希
type User struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Email     string         `gorm:"column:email;type:varchar(180);uniqueIndex;not null;comment:登录邮箱"`
	Username  string         `gorm:"column:username;type:varchar(100);comment:昵称"`
	Password  string         `gorm:"column:password;type:varchar(255);not null"`
	Roles     datatypes.JSON `gorm:"column:roles;not null;comment:角色列表"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// RoleList 解析角色；ROLE_USER 总是包含在内
func (u *User) RoleList() []string {
	var roles []string
	if len(u.Roles) > 0 {
		_ = json.Unmarshal(u.Roles, &roles)
	}
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

// SetRoles 写入角色列表
func (u *User) SetRoles(roles []string) {
	b, _ := json.Marshal(roles)
	u.Roles = datatypes.JSON(b)
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return slices.Contains(u.RoleList(), RoleAdmin)
}

// FavoriteType 可收藏的实体类型
type FavoriteType string

const (
	FavoriteSamourai FavoriteType = "samourai"
	FavoriteClan     FavoriteType = "clan"
	FavoriteBattle   FavoriteType = "battle"
	FavoriteWeapon   FavoriteType = "weapon"
	FavoriteStyle    FavoriteType = "style"
	FavoriteLocation FavoriteType = "location"
)

// Valid 是否为可收藏类型
func (f FavoriteType) Valid() bool {
	switch f {
	case FavoriteSamourai, FavoriteClan, FavoriteBattle, FavoriteWeapon, FavoriteStyle, FavoriteLocation:
		return true
	}
	return false
}

// Favorite 用户收藏
type Favorite struct {
	ID         uint64       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     uint64       `gorm:"column:user_id;not null;uniqueIndex:uq_favorite"`
	EntityType FavoriteType `gorm:"column:entity_type;type:varchar(16);not null;uniqueIndex:uq_favorite"`
	EntityID   uint64       `gorm:"column:entity_id;not null;uniqueIndex:uq_favorite"`
	CreatedAt  time.Time    `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string     { return "users" }
func (Favorite) TableName() string { return "favorites" }
