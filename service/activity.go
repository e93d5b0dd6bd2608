package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/DarrenRF/rt/model"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ActivityInput describes one event to append to the shared action log.
type ActivityInput struct {
	ActorId     uint
	ActorName   string
	Action      string
	Category    string
	EntityType  string
	EntityId    uint
	EntityLabel string
	Url         string
	Metadata    map[string]interface{}
}

// RecordActivity appends one event to the activity log. Inputs with no actor
// or action are dropped silently, matching the fire-and-forget call sites.
// View events ("*_view") are deduplicated: an actor viewing the same entity
// again does not produce a second row.
func (s *Service) RecordActivity(in ActivityInput) error {
	actorName := strings.TrimSpace(in.ActorName)
	action := strings.TrimSpace(in.Action)
	if in.ActorId == 0 || actorName == "" || action == "" {
		return nil
	}

	category := strings.ToLower(strings.TrimSpace(in.Category))
	entityType := strings.ToLower(strings.TrimSpace(in.EntityType))

	if strings.HasSuffix(action, "_view") && entityType != "" && in.EntityId != 0 {
		var count int64
		err := s.DB.Model(&model.Activity{}).
			Where("actor_id = ? AND action = ? AND entity_type = ? AND entity_id = ?",
				in.ActorId, action, entityType, in.EntityId).
			Count(&count).Error
		if err != nil {
			return errors.Wrap(err, "activity view dedup check")
		}
		if count > 0 {
			return nil
		}
	}

	activity := model.Activity{
		ActorId:       in.ActorId,
		ActorUsername: actorName,
		Action:        action,
		Category:      category,
		EntityType:    entityType,
		EntityId:      in.EntityId,
		EntityLabel:   strings.TrimSpace(in.EntityLabel),
		Url:           strings.TrimSpace(in.Url),
		CreatedAt:     s.now(),
	}
	if len(in.Metadata) > 0 {
		blob, err := json.Marshal(in.Metadata)
		if err != nil {
			return errors.Wrap(err, "marshal activity metadata")
		}
		activity.Metadata = blob
	}

	return errors.Wrap(s.DB.Create(&activity).Error, "insert activity")
}

// RecordActivityOrLog logs and swallows the error: an activity row is side
// information and must never fail the user action that produced it.
func (s *Service) RecordActivityOrLog(in ActivityInput) {
	if err := s.RecordActivity(in); err != nil {
		Log.Error("record activity: ", err)
	}
}

// activeFollowedActorIds is the subquery of actors the viewer currently
// follows. Soft-unfollowed edges are excluded.
func (s *Service) activeFollowedActorIds(viewerId uint) *gorm.DB {
	return s.DB.Model(&model.Follow{}).
		Select("followed_id").
		Where("follower_id = ? AND unfollowed = ?", viewerId, false)
}

// activityFeedQuery builds the shared WHERE clause of ActivityFeed and
// CountActivityFeed: visibility by follow edges, the category tab, the clear
// high-water mark, and per-viewer dismissals.
func (s *Service) activityFeedQuery(viewerId uint, category string) (*gorm.DB, error) {
	category = strings.ToLower(strings.TrimSpace(category))

	q := s.DB.Model(&model.Activity{}).
		Where("actor_id = ? OR actor_id IN (?)", viewerId, s.activeFollowedActorIds(viewerId))

	if category != "" && category != model.ActivityCategoryAll {
		q = q.Where("category = ?", category)
	}

	clearedAt, err := s.activityClearedAt(viewerId, category)
	if err != nil {
		return nil, err
	}
	if !clearedAt.IsZero() {
		q = q.Where("created_at > ?", clearedAt)
	}

	dismissed := s.DB.Model(&model.ActivityDismissal{}).
		Select("activity_id").
		Where("user_id = ?", viewerId)
	q = q.Where("id NOT IN (?)", dismissed)

	return q, nil
}

// ActivityFeed returns the events visible to the viewer, newest first: the
// viewer's own actions plus those of actively followed users, minus dismissed
// rows and rows at or before the applicable clear mark. Callers pass limit+1
// to detect a next page without a count query.
func (s *Service) ActivityFeed(viewerId uint, category string, limit, offset int) ([]model.Activity, error) {
	q, err := s.activityFeedQuery(viewerId, category)
	if err != nil {
		return nil, err
	}

	var items []model.Activity
	err = q.Order("id DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, errors.Wrap(err, "query activity feed")
}

// CountActivityFeed counts with filters identical to ActivityFeed.
func (s *Service) CountActivityFeed(viewerId uint, category string) (int64, error) {
	q, err := s.activityFeedQuery(viewerId, category)
	if err != nil {
		return 0, err
	}

	var count int64
	err = q.Count(&count).Error
	return count, errors.Wrap(err, "count activity feed")
}

// DismissActivity hides one event from the viewer's feed. Idempotent.
func (s *Service) DismissActivity(viewerId, activityId uint) error {
	if viewerId == 0 || activityId == 0 {
		return nil
	}
	dismissal := model.ActivityDismissal{
		UserId:      viewerId,
		ActivityId:  activityId,
		DismissedAt: s.now(),
	}
	err := s.DB.Where(&model.ActivityDismissal{UserId: viewerId, ActivityId: activityId}).
		FirstOrCreate(&dismissal).Error
	return errors.Wrap(err, "dismiss activity")
}

// ClearActivity sets the viewer's high-water mark for a category tab (or
// "all") to now. Everything at or before the mark disappears from that tab.
func (s *Service) ClearActivity(viewerId uint, category string) error {
	if viewerId == 0 {
		return nil
	}
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		key = model.ActivityCategoryAll
	}

	clear := model.ActivityClear{UserId: viewerId, Category: key, ClearedAt: s.now()}
	err := s.DB.Where(&model.ActivityClear{UserId: viewerId, Category: key}).
		Assign(model.ActivityClear{ClearedAt: clear.ClearedAt}).
		FirstOrCreate(&clear).Error
	return errors.Wrap(err, "clear activity")
}

// activityClearedAt resolves the clear mark that applies to a tab: the "all"
// mark always applies, the tab's own mark additionally applies when a specific
// tab is requested, and the newer of the two wins.
func (s *Service) activityClearedAt(viewerId uint, category string) (time.Time, error) {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		key = model.ActivityCategoryAll
	}
	keys := []string{model.ActivityCategoryAll}
	if key != model.ActivityCategoryAll {
		keys = append(keys, key)
	}

	var rows []model.ActivityClear
	err := s.DB.Where("user_id = ? AND category IN ?", viewerId, keys).Find(&rows).Error
	if err != nil {
		return time.Time{}, errors.Wrap(err, "query activity clear marks")
	}

	var cleared time.Time
	for _, row := range rows {
		if row.ClearedAt.After(cleared) {
			cleared = row.ClearedAt
		}
	}
	return cleared, nil
}
