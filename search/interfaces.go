package search

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/repository"
)

// Index is the hosted search index the catalog is pushed to and queried from.
type Index interface {
	// SaveObjects upserts records by ObjectID and returns once the index task finished.
	SaveObjects(ctx context.Context, records []Record) error
	Search(ctx context.Context, query string) (Response, error)
}

// Source is the part of the webtoon store the reindex job reads.
type Source interface {
	FindMany(ctx context.Context, opts repository.FindManyOptions) ([]models.Webtoon, error)
}
