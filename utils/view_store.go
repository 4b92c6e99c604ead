package utils

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// WebtoonViews is the view analytics record of one series.
type WebtoonViews struct {
	WebtoonID  string     `json:"webtoonId"`
	Views      int64      `json:"views"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
}

// ViewStore keeps per-webtoon view counters in Redis.
type ViewStore struct {
	rc  *redis.Client
	now func() time.Time
}

// NewViewStore creates a ViewStore on rc.
func NewViewStore(rc *redis.Client) *ViewStore {
	return &ViewStore{rc: rc, now: time.Now}
}

func viewsKey(id string) string      { return "analytics:webtoon:" + id + ":views" }
func lastUpdateKey(id string) string { return "analytics:webtoon:" + id + ":last_update" }

// Add records one view and returns the updated record.
func (s *ViewStore) Add(ctx context.Context, id string) (*WebtoonViews, error) {
	now := s.now().UTC()
	var incr *redis.IntCmd
	_, err := s.rc.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, viewsKey(id))
		pipe.Set(ctx, lastUpdateKey(id), now.Format(time.RFC3339Nano), 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &WebtoonViews{WebtoonID: id, Views: incr.Val(), LastUpdate: &now}, nil
}

// Get returns the analytics of id; a series never viewed has zero views and no LastUpdate.
func (s *ViewStore) Get(ctx context.Context, id string) (*WebtoonViews, error) {
	vals, err := s.rc.MGet(ctx, viewsKey(id), lastUpdateKey(id)).Result()
	if err != nil {
		return nil, err
	}
	out := &WebtoonViews{WebtoonID: id}
	if raw, ok := vals[0].(string); ok {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New("corrupt view counter for " + id)
		}
		out.Views = n
	}
	if raw, ok := vals[1].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			out.LastUpdate = &ts
		}
	}
	return out, nil
}
