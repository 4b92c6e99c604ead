package search

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/repository"
	"github.com/Arylite/nephtys/utils"
)

// CachePrefix namespaces cached query results in Redis.
const CachePrefix = "cache:search:"

// ErrNotConfigured is returned when no index credentials were provided.
var ErrNotConfigured = errors.New("search index is not configured")

// Service keeps the hosted index in sync with the store and answers queries.
type Service struct {
	index  Index
	source Source
	cache  *utils.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService builds a Service. index may be nil, every call then fails with ErrNotConfigured.
// cache may be nil to disable result caching.
func NewService(index Index, source Source, cache *utils.Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{index: index, source: source, cache: cache, ttl: ttl, logger: logger}
}

// ReindexAll pushes a full snapshot of the store and drops cached results.
// It returns the number of records pushed.
func (s *Service) ReindexAll(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, fmt.Errorf("%w: %w", utils.ErrUpstreamSearch, ErrNotConfigured)
	}
	rows, err := s.source.FindMany(ctx, repository.FindManyOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: load webtoons: %w", utils.ErrPersistence, err)
	}
	records := make([]Record, 0, len(rows))
	for _, w := range rows {
		records = append(records, NewRecord(w))
	}
	if err := s.index.SaveObjects(ctx, records); err != nil {
		return 0, fmt.Errorf("%w: %w", utils.ErrUpstreamSearch, err)
	}
	s.cache.InvalidateByPrefix(ctx, CachePrefix)
	s.logger.Info("search index synchronized", zap.Int("records", len(records)))
	return len(records), nil
}

// Query returns the normalized hits for text. Blank text yields an empty result without a lookup.
func (s *Service) Query(ctx context.Context, text string) ([]models.Webtoon, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.Webtoon{}, nil
	}
	key := CacheKey(text)
	if b, ok := s.cache.GetBytes(ctx, key); ok {
		resp, err := DecodeResponse(b)
		if err == nil {
			return resp.Webtoons(), nil
		}
		s.logger.Warn("discarding unreadable cached search result", zap.String("key", key), zap.Error(err))
	}
	if s.index == nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrUpstreamSearch, ErrNotConfigured)
	}
	resp, err := s.index.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrUpstreamSearch, err)
	}
	// cached as a bare array
	s.cache.SetJSON(ctx, key, resp.Hits, s.ttl)
	return resp.Webtoons(), nil
}

// CacheKey is the Redis key of the cached hits for text. Case and whitespace runs are ignored.
func CacheKey(text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := blake2b.Sum256([]byte(normalized))
	return CachePrefix + hex.EncodeToString(sum[:16])
}
