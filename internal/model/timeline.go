package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimelineType 时间线事件类型（封闭枚举，非法值无法落库）
type TimelineType string

const (
	TimelineBattle    TimelineType = "battle"
	TimelineBirth     TimelineType = "birth"
	TimelinePolitique TimelineType = "politique"
	TimelineDuel      TimelineType = "duel"
)

// Valid 是否为已知类型
func (t TimelineType) Valid() bool {
	switch t {
	case TimelineBattle, TimelineBirth, TimelinePolitique, TimelineDuel:
		return true
	}
	return false
}

// ParseTimelineType 将字符串解析为时间线类型
func ParseTimelineType(s string) (TimelineType, error) {
	t := TimelineType(s)
	if !t.Valid() {
		return "", fmt.Errorf("未知的时间线类型: %q", s)
	}
	return t, nil
}

// Value 实现 driver.Valuer
func (t TimelineType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("未知的时间线类型: %q", string(t))
	}
	return string(t), nil
}

// Scan 实现 sql.Scanner
func (t *TimelineType) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseTimelineType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LinkedEntityType 时间线关联表中的来源实体类型
type LinkedEntityType string

const (
	LinkedBattle   LinkedEntityType = "battle"
	LinkedSamourai LinkedEntityType = "samurai"
)

// Valid 是否为已知类型
func (e LinkedEntityType) Valid() bool {
	return e == LinkedBattle || e == LinkedSamourai
}

// Value 实现 driver.Valuer
func (e LinkedEntityType) Value() (driver.Value, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("未知的关联实体类型: %q", string(e))
	}
	return string(e), nil
}

// Scan 实现 sql.Scanner
func (e *LinkedEntityType) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	v := LinkedEntityType(s)
	if !v.Valid() {
		return fmt.Errorf("未知的关联实体类型: %q", s)
	}
	*e = v
	return nil
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("无法将 %T 解析为字符串", src)
	}
}

// Timeline 时间线条目：由战役、武士出生派生，或来自静态历史事件
// battle 类型必有 BattleID；birth 与历史事件的 BattleID 为空
type Timeline struct {
	ID          uint64       `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Year        int          `gorm:"column:year;not null;index:idx_timeline_title_year,priority:2;comment:年份"`
	Date        time.Time    `gorm:"column:date;type:date;not null;index;comment:日期"`
	Title       string       `gorm:"column:title;type:varchar(255);not null;index:idx_timeline_title_year,priority:1;comment:标题"`
	Type        TimelineType `gorm:"column:type;type:varchar(16);not null;index;comment:类型：battle/birth/politique/duel"`
	Description string       `gorm:"column:description;type:text"`
	BattleID    *uint64      `gorm:"column:battle_id;index;comment:关联战役ID"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// TimelineEntity 时间线与来源实体的映射，仅在创建时间线条目时写入
// (entity_type, entity_id) 唯一：一个实体最多派生一条时间线
type TimelineEntity struct {
	ID         uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	TimelineID uint64           `gorm:"column:timeline_id;not null;index"`
	EntityType LinkedEntityType `gorm:"column:entity_type;type:varchar(16);not null;uniqueIndex:uq_timeline_entity"`
	EntityID   uint64           `gorm:"column:entity_id;not null;uniqueIndex:uq_timeline_entity"`
}

func (Timeline) TableName() string       { return "timeline" }
func (TimelineEntity) TableName() string { return "timeline_entities" }
