package interfaces

import (
	"context"

	"SamuraiArchive/internal/model"
)

// TimelineHooks 战役/武士写操作后需要调用的时间线同步钩子。
// 实现方负责吞掉并记录同步错误，调用方的写操作不受影响。
type TimelineHooks interface {
	// BattleSaved 战役创建或更新之后
	BattleSaved(ctx context.Context, battle *model.Battle)
	// BattleDeleting 战役删除之前
	BattleDeleting(ctx context.Context, battle *model.Battle)
	// SamouraiSaved 武士创建或更新之后；出生日期被清空时删除出生条目
	SamouraiSaved(ctx context.Context, samourai *model.Samourai)
	// SamouraiDeleting 武士删除之前
	SamouraiDeleting(ctx context.Context, samourai *model.Samourai)
}
