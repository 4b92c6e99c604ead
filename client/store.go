package client

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Arylite/nephtys/models"
)

// RequestStatus is the lifecycle of one cached query.
type RequestStatus string

const (
	StatusIdle      RequestStatus = "idle"
	StatusLoading   RequestStatus = "loading"
	StatusSucceeded RequestStatus = "succeeded"
	StatusFailed    RequestStatus = "failed"
)

const (
	FeaturedLimit = 6
	LatestLimit   = 8

	FeaturedKey = "webtoons?limit=6"
	LatestKey   = "webtoons?limit=8&latest=true"
)

// PageKey is the cache key of a catalog page.
func PageKey(page int) string { return "webtoons?page=" + strconv.Itoa(page) }

// WebtoonKey is the cache key of a single webtoon.
func WebtoonKey(id string) string { return "webtoon/" + id }

// Entry is the cached state of one query. Data keeps the last successful result while a refetch runs or after it failed.
type Entry struct {
	Data      any
	Status    RequestStatus
	Error     string
	UpdatedAt time.Time
}

// Pagination mirrors the list headers of the last successful page fetch.
type Pagination struct {
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// API is the part of Client the store fetches through.
type API interface {
	ListWebtoons(ctx context.Context, p ListParams) (*Page, error)
	GetWebtoon(ctx context.Context, id string) (*models.Webtoon, error)
}

// Store caches catalog queries by signature and keeps local favorites.
type Store struct {
	api API
	now func() time.Time

	mu         sync.RWMutex
	entries    map[string]Entry
	favorites  []string
	selectedID string
	pagination Pagination
	// listKey is the entry of the last page fetched successfully.
	listKey string
}

// NewStore creates an empty store on api.
func NewStore(api API) *Store {
	return &Store{
		api:        api,
		now:        time.Now,
		entries:    map[string]Entry{},
		pagination: Pagination{CurrentPage: 1},
	}
}

// FetchWebtoons loads one catalog page and records its pagination.
func (s *Store) FetchWebtoons(ctx context.Context, page int) ([]models.Webtoon, error) {
	if page < 1 {
		page = 1
	}
	res, err := fetchInto(ctx, s, PageKey(page), func(ctx context.Context) (*Page, error) {
		return s.api.ListWebtoons(ctx, ListParams{Page: page})
	}, func(p *Page) any { return p.Webtoons })
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pagination = Pagination{TotalCount: res.TotalCount, TotalPages: res.TotalPages, CurrentPage: res.CurrentPage}
	s.listKey = PageKey(page)
	s.mu.Unlock()
	return res.Webtoons, nil
}

// FetchFeaturedWebtoons loads the first six catalog entries.
func (s *Store) FetchFeaturedWebtoons(ctx context.Context) ([]models.Webtoon, error) {
	res, err := fetchInto(ctx, s, FeaturedKey, func(ctx context.Context) (*Page, error) {
		return s.api.ListWebtoons(ctx, ListParams{Limit: FeaturedLimit})
	}, func(p *Page) any { return p.Webtoons })
	if err != nil {
		return nil, err
	}
	return res.Webtoons, nil
}

// FetchLatestWebtoons loads the eight most recently created entries.
func (s *Store) FetchLatestWebtoons(ctx context.Context) ([]models.Webtoon, error) {
	res, err := fetchInto(ctx, s, LatestKey, func(ctx context.Context) (*Page, error) {
		return s.api.ListWebtoons(ctx, ListParams{Limit: LatestLimit, Latest: true})
	}, func(p *Page) any { return p.Webtoons })
	if err != nil {
		return nil, err
	}
	return res.Webtoons, nil
}

// FetchWebtoonByID loads one webtoon and makes it the selected one.
func (s *Store) FetchWebtoonByID(ctx context.Context, id string) (*models.Webtoon, error) {
	w, err := fetchInto(ctx, s, WebtoonKey(id), func(ctx context.Context) (*models.Webtoon, error) {
		return s.api.GetWebtoon(ctx, id)
	}, func(w *models.Webtoon) any { return w })
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.selectedID = id
	s.mu.Unlock()
	return w, nil
}

// fetchInto runs call and moves the entry at key through loading to succeeded or failed.
func fetchInto[T any](ctx context.Context, s *Store, key string, call func(context.Context) (T, error), data func(T) any) (T, error) {
	s.update(key, func(e *Entry) {
		e.Status = StatusLoading
		e.Error = ""
	})

	res, err := call(ctx)
	if err != nil {
		s.update(key, func(e *Entry) {
			e.Status = StatusFailed
			e.Error = err.Error()
			e.UpdatedAt = s.now()
		})
		var zero T
		return zero, err
	}

	s.update(key, func(e *Entry) {
		e.Data = data(res)
		e.Status = StatusSucceeded
		e.Error = ""
		e.UpdatedAt = s.now()
	})
	return res, nil
}

func (s *Store) update(key string, fn func(*Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		e = Entry{Status: StatusIdle}
	}
	fn(&e)
	s.entries[key] = e
}

// Entry returns the state of key; unknown keys are idle.
func (s *Store) Entry(key string) Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[key]; ok {
		return e
	}
	return Entry{Status: StatusIdle}
}

// Webtoons returns the entries of the last page fetched successfully.
// SetCurrentPage alone does not change it.
func (s *Store) Webtoons() []models.Webtoon {
	s.mu.RLock()
	key := s.listKey
	s.mu.RUnlock()
	if key == "" {
		return []models.Webtoon{}
	}
	return s.webtoonsAt(key)
}

// Featured returns the cached featured entries.
func (s *Store) Featured() []models.Webtoon { return s.webtoonsAt(FeaturedKey) }

// Latest returns the cached latest entries.
func (s *Store) Latest() []models.Webtoon { return s.webtoonsAt(LatestKey) }

func (s *Store) webtoonsAt(key string) []models.Webtoon {
	items, _ := s.Entry(key).Data.([]models.Webtoon)
	if items == nil {
		return []models.Webtoon{}
	}
	return slices.Clone(items)
}

// Selected returns the last webtoon loaded by id, or nil after ClearSelected.
func (s *Store) Selected() *models.Webtoon {
	s.mu.RLock()
	id := s.selectedID
	s.mu.RUnlock()
	if id == "" {
		return nil
	}
	w, _ := s.Entry(WebtoonKey(id)).Data.(*models.Webtoon)
	if w == nil {
		return nil
	}
	cp := *w
	return &cp
}

// ClearSelected forgets the selected webtoon. Its cache entry stays.
func (s *Store) ClearSelected() {
	s.mu.Lock()
	s.selectedID = ""
	s.mu.Unlock()
}

// Pagination returns the counters of the last page fetch.
func (s *Store) Pagination() Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// SetCurrentPage moves the page cursor without fetching; Webtoons keeps the loaded page.
func (s *Store) SetCurrentPage(page int) {
	s.mu.Lock()
	s.pagination.CurrentPage = page
	s.mu.Unlock()
}

// AddFavorite adds id once; repeated adds are no-ops.
func (s *Store) AddFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.favorites, id) {
		s.favorites = append(s.favorites, id)
	}
}

// RemoveFavorite removes id if present.
func (s *Store) RemoveFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = slices.DeleteFunc(s.favorites, func(v string) bool { return v == id })
}

// IsFavorite reports whether id is a favorite.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.favorites, id)
}

// Favorites returns favorite ids in the order they were added.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favorites)
}
