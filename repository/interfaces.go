package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/Arylite/nephtys/models"
)

// Order selects the sort applied by FindMany.
type Order int

const (
	// OrderInsertion returns rows in the order they were created.
	OrderInsertion Order = iota
	// OrderNewest returns the most recently created rows first.
	OrderNewest
)

// FindManyOptions mirrors the skip/take/orderBy query of the catalog list. Take <= 0 means no limit.
type FindManyOptions struct {
	Skip    int
	Take    int
	OrderBy Order
}

// WebtoonStore is the persistence contract used by the catalog and search sync.
type WebtoonStore interface {
	Count(ctx context.Context) (int64, error)
	FindMany(ctx context.Context, opts FindManyOptions) ([]models.Webtoon, error)
	FindByID(ctx context.Context, id string) (*models.Webtoon, error)
	Create(ctx context.Context, webtoon *models.Webtoon) error
	CountByStatus(ctx context.Context) (map[models.Status]int64, error)
}
