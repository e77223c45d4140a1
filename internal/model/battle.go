package model

import "time"

// Battle 战役。Date 必填，是战役时间线的唯一来源
type Battle struct {
	ID           uint64      `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name         string      `gorm:"column:name;type:varchar(255);not null;comment:战役名称"`
	Date         time.Time   `gorm:"column:date;type:date;not null;comment:战役日期"`
	Description  string      `gorm:"column:description;type:text"`
	SourceURL    *string     `gorm:"column:source_url;type:varchar(512);comment:资料来源"`
	Image        *string     `gorm:"column:image;type:text"`
	LocationID   *uint64     `gorm:"column:location_id;index"`
	Location     *Location   `gorm:"foreignKey:LocationID"`
	WinnerClanID *uint64     `gorm:"column:winner_clan_id;index"`
	WinnerClan   *Clan       `gorm:"foreignKey:WinnerClanID"`
	Samourais    []*Samourai `gorm:"many2many:samourai_battles"`
	Slug         string      `gorm:"column:slug;type:varchar(255);uniqueIndex;not null"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Battle) TableName() string { return "battles" }
