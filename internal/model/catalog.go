package model

import "time"

// Clan 氏族
type Clan struct {
	ID          uint64      `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name        string      `gorm:"column:name;type:varchar(255);uniqueIndex;not null;comment:氏族名称"`
	Description string      `gorm:"column:description;type:text;comment:简介"`
	Founder     *string     `gorm:"column:founder;type:varchar(255);comment:创始人"`
	Image       *string     `gorm:"column:image;type:text;comment:图片"`
	Slug        string      `gorm:"column:slug;type:varchar(255);uniqueIndex;not null"`
	Samourais   []*Samourai `gorm:"foreignKey:ClanID"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// Location 地点（地图标注用）
type Location struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;comment:地点名称"`
	Region      *string   `gorm:"column:region;type:varchar(255);comment:所属地区"`
	Latitude    *float64  `gorm:"column:latitude;comment:纬度"`
	Longitude   *float64  `gorm:"column:longitude;comment:经度"`
	Description string    `gorm:"column:description;type:text"`
	Image       *string   `gorm:"column:image;type:text"`
	Slug        string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Weapon 武器
type Weapon struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;comment:武器名称"`
	Type        *string   `gorm:"column:type;type:varchar(64);comment:武器类别：katana/yari/yumi..."`
	Description string    `gorm:"column:description;type:text"`
	Image       *string   `gorm:"column:image;type:text"`
	Slug        string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Style 流派（剑术等）
type Style struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;comment:流派名称"`
	Description string    `gorm:"column:description;type:text"`
	Founder     *string   `gorm:"column:founder;type:varchar(255);comment:开创者"`
	Image       *string   `gorm:"column:image;type:text"`
	Slug        string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Clan) TableName() string     { return "clans" }
func (Location) TableName() string { return "locations" }
func (Weapon) TableName() string   { return "weapons" }
func (Style) TableName() string    { return "styles" }
