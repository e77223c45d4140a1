package service

import (
	"context"
	"errors"
	"strconv"

	"SamuraiArchive/internal/repository"
)

// TimelineService 只读查询；写入只发生在 TimelineGenerator 中
type TimelineService struct {
	store *repository.Store
}

// NewTimelineService 创建 TimelineService
func NewTimelineService(store *repository.Store) *TimelineService {
	return &TimelineService{store: store}
}

// List 按日期升序返回全部条目
func (s *TimelineService) List(ctx context.Context) ([]TimelineView, error) {
	list, err := s.store.Timelines.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapViews(list, newTimelineView), nil
}

func (s *TimelineService) Get(ctx context.Context, id uint64) (TimelineView, error) {
	t, err := s.store.Timelines.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return TimelineView{}, notFound("timeline event " + strconv.FormatUint(id, 10) + " not found")
	}
	if err != nil {
		return TimelineView{}, err
	}
	return newTimelineView(t), nil
}
