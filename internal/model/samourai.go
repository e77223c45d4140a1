package model

import "time"

// Samourai 武士。只有 BirthDate 参与时间线派生，DeathDate 不同步
type Samourai struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name        string     `gorm:"column:name;type:varchar(255);not null;comment:姓名"`
	BirthDate   *time.Time `gorm:"column:birth_date;type:date;comment:出生日期"`
	DeathDate   *time.Time `gorm:"column:death_date;type:date;comment:死亡日期"`
	Description string     `gorm:"column:description;type:text"`
	Image       *string    `gorm:"column:image;type:text"`
	ClanID      *uint64    `gorm:"column:clan_id;index"`
	Clan        *Clan      `gorm:"foreignKey:ClanID"`
	Weapons     []*Weapon  `gorm:"many2many:samourai_weapons"`
	Styles      []*Style   `gorm:"many2many:samourai_styles"`
	Battles     []*Battle  `gorm:"many2many:samourai_battles"`
	Slug        string     `gorm:"column:slug;type:varchar(255);uniqueIndex;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Samourai) TableName() string { return "samourais" }
