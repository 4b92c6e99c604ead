package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Arylite/nephtys/models"
)

// ErrNotFound is returned by FindByID when no row matches.
var ErrNotFound = errors.New("webtoon not found")

// GormWebtoonStore implements WebtoonStore on top of gorm.
type GormWebtoonStore struct {
	db *gorm.DB
}

// NewWebtoonStore creates a gorm backed store.
func NewWebtoonStore(db *gorm.DB) *GormWebtoonStore {
	return &GormWebtoonStore{db: db}
}

func (s *GormWebtoonStore) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Webtoon{}).Count(&total).Error
	return total, err
}

func (s *GormWebtoonStore) FindMany(ctx context.Context, opts FindManyOptions) ([]models.Webtoon, error) {
	q := s.db.WithContext(ctx).Model(&models.Webtoon{})
	switch opts.OrderBy {
	case OrderNewest:
		q = q.Order("created_at DESC").Order("id DESC")
	default:
		q = q.Order("created_at ASC").Order("id ASC")
	}
	if opts.Skip > 0 {
		q = q.Offset(opts.Skip)
	}
	if opts.Take > 0 {
		q = q.Limit(opts.Take)
	}

	items := make([]models.Webtoon, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormWebtoonStore) FindByID(ctx context.Context, id string) (*models.Webtoon, error) {
	var w models.Webtoon
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (s *GormWebtoonStore) Create(ctx context.Context, webtoon *models.Webtoon) error {
	return s.db.WithContext(ctx).Create(webtoon).Error
}

// CountByStatus returns a count for every known status, zero when absent.
func (s *GormWebtoonStore) CountByStatus(ctx context.Context) (map[models.Status]int64, error) {
	type row struct {
		Status models.Status
		Total  int64
	}
	var rows []row
	if err := s.db.WithContext(ctx).Model(&models.Webtoon{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.Status]int64, len(models.Statuses))
	for _, st := range models.Statuses {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}
